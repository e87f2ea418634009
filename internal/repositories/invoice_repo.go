package repositories

import (
	"facturation/internal/models"
)

// InvoiceRepository defines the interface for invoice data access.
// Invoices are looked up by business ID or by invoice number, which are
// independent uniqueness dimensions.
type InvoiceRepository interface {
	GetAll() ([]models.Invoice, error)
	GetByID(id string) (*models.Invoice, error)
	GetByNumber(invoiceNumber string) (*models.Invoice, error)
	Create(invoice *models.Invoice) error
	Delete(id string) error
	Stats() (*models.InvoiceStats, error)
}
