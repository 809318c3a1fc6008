package models

// Supplier is an address-book entry.
type Supplier struct {
	ID            string `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name          string `gorm:"not null" json:"name"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Category      string `json:"category"`
	Position      int    `gorm:"not null;default:0" json:"-"`
}

// InvoiceItem is one line extracted from a supplier invoice.
type InvoiceItem struct {
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	PricePerUnit float64 `json:"pricePerUnit"`
	TotalPrice   float64 `json:"totalPrice"`
}

// LoggedInvoice summarises the applied lines of one supplier invoice.
type LoggedInvoice struct {
	ID           string  `gorm:"primaryKey;type:varchar(64)" json:"id"`
	SupplierName string  `gorm:"not null;index" json:"supplierName"`
	InvoiceDate  string  `json:"invoiceDate"`
	TotalAmount  float64 `json:"totalAmount"`
	ItemsCount   int     `json:"itemsCount"`
	FileName     string  `json:"fileName"`
	// Position preserves newest-first history order across checkpoints.
	Position int `gorm:"not null;default:0" json:"-"`
}
