package handlers

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"facturation/pkg/cloudstore"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UploadHandler forwards base64-encoded PDFs to the cloud storage provider.
type UploadHandler struct {
	storage  cloudstore.Storage
	validate *validator.Validate
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(storage cloudstore.Storage) *UploadHandler {
	return &UploadHandler{
		storage:  storage,
		validate: newValidator(),
	}
}

type uploadInvoiceData struct {
	InvoiceNumber string  `json:"invoiceNumber"`
	ClientName    string  `json:"clientName"`
	Total         float64 `json:"total"`
	Date          string  `json:"date"`
}

type uploadRequest struct {
	PDFBase64   string            `json:"pdfBase64" validate:"required"`
	FileName    string            `json:"fileName" validate:"required"`
	InvoiceData uploadInvoiceData `json:"invoiceData"`
}

// HandleUpload accepts a base64 PDF and stores it with the provider. The
// decoded bytes go through a temporary local file which is removed on every
// path once the call finishes.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	var req uploadRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	if !h.storage.Configured() {
		return respondError(c, fiber.StatusServiceUnavailable, "cloud storage not available - check credentials")
	}

	content, err := base64.StdEncoding.DecodeString(req.PDFBase64)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "pdfBase64 is not valid base64 data")
	}

	fileName := filepath.Base(req.FileName)
	tempPath := filepath.Join(os.TempDir(), uuid.New().String()+"_"+fileName)
	if err := os.WriteFile(tempPath, content, 0o600); err != nil {
		log.Printf("Error writing temp upload file: %v", err)
		return respondError(c, fiber.StatusInternalServerError, "server error")
	}
	defer os.Remove(tempPath)

	publicID := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	stored, err := h.storage.StoreFile(c.Context(), tempPath, publicID, uploadDescription(req.InvoiceData))
	if err != nil {
		log.Printf("Error uploading %s: %v", fileName, err)
		return respondError(c, fiber.StatusInternalServerError, "failed to upload PDF")
	}

	return respondData(c, fiber.StatusOK, fiber.Map{
		"fileId":        stored.ID,
		"fileName":      fileName,
		"fileUrl":       stored.URL,
		"size":          stored.Size,
		"createdTime":   time.Now().Format(time.RFC3339),
		"invoiceNumber": req.InvoiceData.InvoiceNumber,
		"clientName":    req.InvoiceData.ClientName,
	})
}

// uploadDescription builds the human-readable description attached to the
// stored file.
func uploadDescription(data uploadInvoiceData) string {
	var parts []string
	if data.InvoiceNumber != "" {
		parts = append(parts, fmt.Sprintf("Invoice: %s", data.InvoiceNumber))
	}
	if data.ClientName != "" {
		parts = append(parts, fmt.Sprintf("Client: %s", data.ClientName))
	}
	if data.Total != 0 {
		parts = append(parts, fmt.Sprintf("Total: %.2f", data.Total))
	}
	if data.Date != "" {
		parts = append(parts, fmt.Sprintf("Date: %s", data.Date))
	}
	if len(parts) == 0 {
		return "Invoice PDF"
	}
	return strings.Join(parts, " - ")
}
