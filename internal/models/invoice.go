package models

import "time"

// InvoiceClient is the snapshot of a client embedded in an invoice. It is
// copied from the request at creation time; editing the source Client record
// never changes it.
type InvoiceClient struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// InvoiceItem is a single line on an invoice. Items carry no identity of
// their own and are stored serialized with the invoice.
type InvoiceItem struct {
	ProductID        string  `json:"productId"`
	ProductName      string  `json:"productName"`
	ProductReference string  `json:"productReference"`
	Quantity         int     `json:"quantity"`
	UnitPrice        float64 `json:"unitPrice"`
	Total            float64 `json:"total"`
}

// Invoice represents an issued invoice. InvoiceNumber is unique on its own,
// independently of the business ID.
type Invoice struct {
	ID            string        `json:"id" gorm:"primaryKey;type:varchar(64)"`
	InvoiceNumber string        `json:"invoiceNumber" gorm:"uniqueIndex;type:varchar(100)"`
	Date          time.Time     `json:"date" gorm:"index"`
	Client        InvoiceClient `json:"client" gorm:"embedded;embeddedPrefix:client_"`
	Items         []InvoiceItem `json:"items" gorm:"serializer:json"`
	Subtotal      float64       `json:"subtotal"`
	TVA           float64       `json:"tva"`
	Total         float64       `json:"total"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// InvoiceStats is the read-only aggregate returned by the stats endpoint.
type InvoiceStats struct {
	TotalInvoices int64   `json:"totalInvoices"`
	TotalRevenue  float64 `json:"totalRevenue"`
}
