package services

import (
	"errors"
	"fmt"
	"time"

	"facturation/internal/models"
	"facturation/internal/repositories"
)

// InvoiceService handles business logic related to invoices.
type InvoiceService struct {
	repo repositories.InvoiceRepository
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(repo repositories.InvoiceRepository) *InvoiceService {
	return &InvoiceService{
		repo: repo,
	}
}

// GetAllInvoices retrieves all invoices ordered by descending invoice date.
func (s *InvoiceService) GetAllInvoices() ([]models.Invoice, error) {
	return s.repo.GetAll()
}

// GetInvoiceByID retrieves a single invoice by its business ID.
func (s *InvoiceService) GetInvoiceByID(id string) (*models.Invoice, error) {
	return s.repo.GetByID(id)
}

// CreateInvoice creates a new invoice. The business ID and the invoice
// number are independent uniqueness dimensions; either collision fails the
// whole creation. The subtotal/tva/total figures are stored as supplied,
// without recomputation against the item totals.
func (s *InvoiceService) CreateInvoice(invoice *models.Invoice) error {
	if _, err := s.repo.GetByID(invoice.ID); err == nil {
		return fmt.Errorf("an invoice with this id already exists: %w", repositories.ErrConflict)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	if _, err := s.repo.GetByNumber(invoice.InvoiceNumber); err == nil {
		return fmt.Errorf("an invoice with this number already exists: %w", repositories.ErrConflict)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	if invoice.Date.IsZero() {
		invoice.Date = time.Now()
	}
	return s.repo.Create(invoice)
}

// DeleteInvoice deletes an invoice by its business ID.
func (s *InvoiceService) DeleteInvoice(id string) error {
	return s.repo.Delete(id)
}

// GetStats returns the invoice count and total revenue, reflecting the
// persisted state at call time.
func (s *InvoiceService) GetStats() (*models.InvoiceStats, error) {
	return s.repo.Stats()
}
