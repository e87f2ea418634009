package handlers_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUploadPDF(t *testing.T) {
	storage := &fakeStorage{configured: true}
	app, _ := setupApp(t, storage)

	pdf := base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 fake invoice content"))
	status, env := doRequest(t, app, http.MethodPost, "/api/upload-to-cloud", map[string]interface{}{
		"pdfBase64": pdf,
		"fileName":  "facture-F-2026-001.pdf",
		"invoiceData": map[string]interface{}{
			"invoiceNumber": "F-2026-001",
			"clientName":    "Acme",
			"total":         24.0,
		},
	})
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	var data struct {
		FileID        string `json:"fileId"`
		FileName      string `json:"fileName"`
		FileURL       string `json:"fileUrl"`
		Size          int    `json:"size"`
		InvoiceNumber string `json:"invoiceNumber"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "factures/facture-F-2026-001", data.FileID)
	assert.Equal(t, "facture-F-2026-001.pdf", data.FileName)
	assert.NotEmpty(t, data.FileURL)
	assert.Greater(t, data.Size, 0)
	assert.Equal(t, "F-2026-001", data.InvoiceNumber)

	// The temporary local artifact must be gone after the call
	assert.NotEmpty(t, storage.lastPath)
	_, err := os.Stat(storage.lastPath)
	assert.True(t, os.IsNotExist(err))
}

func TestUploadPDFMissingFields(t *testing.T) {
	app, _ := setupApp(t, &fakeStorage{configured: true})

	status, env := doRequest(t, app, http.MethodPost, "/api/upload-to-cloud", map[string]interface{}{
		"fileName": "facture.pdf",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.detailFields(), "pdfBase64")

	status, env = doRequest(t, app, http.MethodPost, "/api/upload-to-cloud", map[string]interface{}{
		"pdfBase64": "aGVsbG8=",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.detailFields(), "fileName")
}

func TestUploadPDFProviderNotConfigured(t *testing.T) {
	app, _ := setupApp(t, &fakeStorage{configured: false})

	status, env := doRequest(t, app, http.MethodPost, "/api/upload-to-cloud", map[string]interface{}{
		"pdfBase64": "aGVsbG8=",
		"fileName":  "facture.pdf",
	})
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.False(t, env.Success)
}

func TestUploadPDFInvalidBase64(t *testing.T) {
	app, _ := setupApp(t, &fakeStorage{configured: true})

	status, env := doRequest(t, app, http.MethodPost, "/api/upload-to-cloud", map[string]interface{}{
		"pdfBase64": "not base64 !!!",
		"fileName":  "facture.pdf",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)
}
