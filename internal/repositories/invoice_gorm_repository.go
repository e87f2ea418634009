package repositories

import (
	"errors"
	"fmt"

	"facturation/internal/models"

	"gorm.io/gorm"
)

// GORMInvoiceRepository is a GORM implementation of InvoiceRepository.
type GORMInvoiceRepository struct {
	db *gorm.DB
}

// NewGORMInvoiceRepository creates a new instance of GORMInvoiceRepository.
func NewGORMInvoiceRepository(db *gorm.DB) *GORMInvoiceRepository {
	return &GORMInvoiceRepository{
		db: db,
	}
}

// GetAll retrieves all invoices ordered by descending invoice date.
func (r *GORMInvoiceRepository) GetAll() ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := r.db.Order("date DESC").Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("failed to get all invoices: %w", err)
	}
	return invoices, nil
}

// GetByID retrieves a single invoice by its business ID.
func (r *GORMInvoiceRepository) GetByID(id string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invoice by ID %s: %w", id, err)
	}
	return &invoice, nil
}

// GetByNumber retrieves a single invoice by its invoice number.
func (r *GORMInvoiceRepository) GetByNumber(invoiceNumber string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.First(&invoice, "invoice_number = ?", invoiceNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invoice by number %s: %w", invoiceNumber, err)
	}
	return &invoice, nil
}

// Create persists a new invoice. Uniqueness of the business ID and of the
// invoice number is checked by the service layer before this call; the
// unique index on invoice_number is the final guard.
func (r *GORMInvoiceRepository) Create(invoice *models.Invoice) error {
	if err := r.db.Create(invoice).Error; err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

// Delete removes an invoice by its business ID. Deletion is permanent.
func (r *GORMInvoiceRepository) Delete(id string) error {
	res := r.db.Delete(&models.Invoice{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete invoice %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats returns the invoice count and the sum of invoice totals, computed
// against the current persisted state on every call.
func (r *GORMInvoiceRepository) Stats() (*models.InvoiceStats, error) {
	var stats models.InvoiceStats
	if err := r.db.Model(&models.Invoice{}).Count(&stats.TotalInvoices).Error; err != nil {
		return nil, fmt.Errorf("failed to count invoices: %w", err)
	}
	if err := r.db.Model(&models.Invoice{}).
		Select("COALESCE(SUM(total), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum invoice totals: %w", err)
	}
	return &stats, nil
}
