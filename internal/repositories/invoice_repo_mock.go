package repositories

import (
	"sort"
	"sync"
	"time"

	"facturation/internal/models"
)

// MockInvoiceRepository is an in-memory implementation of InvoiceRepository.
type MockInvoiceRepository struct {
	invoices map[string]models.Invoice
	mu       sync.RWMutex
}

// NewMockInvoiceRepository creates a new instance of MockInvoiceRepository.
func NewMockInvoiceRepository() *MockInvoiceRepository {
	return &MockInvoiceRepository{
		invoices: make(map[string]models.Invoice),
	}
}

// GetAll returns all invoices ordered by descending invoice date.
func (r *MockInvoiceRepository) GetAll() ([]models.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	invoiceList := make([]models.Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		invoiceList = append(invoiceList, inv)
	}
	sort.Slice(invoiceList, func(i, j int) bool {
		return invoiceList[i].Date.After(invoiceList[j].Date)
	})
	return invoiceList, nil
}

// GetByID returns an invoice by its business ID.
func (r *MockInvoiceRepository) GetByID(id string) (*models.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	invoice, ok := r.invoices[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &invoice, nil
}

// GetByNumber returns an invoice by its invoice number.
func (r *MockInvoiceRepository) GetByNumber(invoiceNumber string) (*models.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, inv := range r.invoices {
		if inv.InvoiceNumber == invoiceNumber {
			invoice := inv
			return &invoice, nil
		}
	}
	return nil, ErrNotFound
}

// Create adds a new invoice.
func (r *MockInvoiceRepository) Create(invoice *models.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.invoices[invoice.ID]; ok {
		return ErrConflict
	}
	for _, existing := range r.invoices {
		if existing.InvoiceNumber == invoice.InvoiceNumber {
			return ErrConflict
		}
	}
	now := time.Now()
	invoice.CreatedAt = now
	invoice.UpdatedAt = now
	r.invoices[invoice.ID] = *invoice
	return nil
}

// Delete removes an invoice by its business ID.
func (r *MockInvoiceRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.invoices[id]; !ok {
		return ErrNotFound
	}
	delete(r.invoices, id)
	return nil
}

// Stats returns the invoice count and the sum of invoice totals.
func (r *MockInvoiceRepository) Stats() (*models.InvoiceStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := models.InvoiceStats{}
	for _, inv := range r.invoices {
		stats.TotalInvoices++
		stats.TotalRevenue += inv.Total
	}
	return &stats, nil
}
