package ai

import (
	"context"
	"strings"

	"chaoscatering/models"
)

// InvoiceExtraction is the structured reading of a supplier invoice.
type InvoiceExtraction struct {
	SupplierName string               `json:"supplierName"`
	InvoiceDate  string               `json:"invoiceDate"`
	Items        []models.InvoiceItem `json:"items"`
}

// SupplierCard holds the contact details read off a business card or letterhead.
type SupplierCard struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Category      string `json:"category"`
}

const invoiceSystemPrompt = `You are a high-precision invoice audit tool.
Extract the supplier name, the invoice date and every line item with its name,
quantity, unit, price per unit and line total. Amounts are South African Rand.
Respond with raw JSON only:
{"supplierName": string, "invoiceDate": string,
 "items": [{"name": string, "quantity": number, "unit": string, "pricePerUnit": number, "totalPrice": number}]}`

const supplierCardSystemPrompt = `Extract supplier details from a business card, letterhead or photo.
Category is one of Meat, Produce, Dry Goods, Beverage, General.
Respond with raw JSON only:
{"name": string, "contactPerson": string, "email": string, "phone": string, "category": string}`

// ExtractInvoice reads the supplier, date and line items off an invoice.
func (c *Client) ExtractInvoice(ctx context.Context, doc Attachment) (InvoiceExtraction, error) {
	if strings.TrimSpace(doc.Text) == "" && doc.Image == "" {
		return InvoiceExtraction{}, ErrEmptyDocument
	}

	var raw struct {
		SupplierName string `json:"supplierName"`
		InvoiceDate  string `json:"invoiceDate"`
		Items        []struct {
			Name         string `json:"name"`
			Quantity     any    `json:"quantity"`
			Unit         string `json:"unit"`
			PricePerUnit any    `json:"pricePerUnit"`
			TotalPrice   any    `json:"totalPrice"`
		} `json:"items"`
	}
	err := c.complete(ctx, "invoice", []chatMessage{
		{Role: "system", Content: invoiceSystemPrompt},
		userMessage("Audit this supplier invoice.", doc),
	}, &raw)
	if err != nil {
		return InvoiceExtraction{}, err
	}

	result := InvoiceExtraction{
		SupplierName: normaliseText(raw.SupplierName),
		InvoiceDate:  normaliseValue(raw.InvoiceDate),
		Items:        make([]models.InvoiceItem, 0, len(raw.Items)),
	}
	for _, item := range raw.Items {
		name := normaliseText(item.Name)
		if name == "" {
			continue
		}
		line := models.InvoiceItem{
			Name:         name,
			Quantity:     parseNumeric(item.Quantity),
			Unit:         normaliseValue(item.Unit),
			PricePerUnit: parseNumeric(item.PricePerUnit),
			TotalPrice:   parseNumeric(item.TotalPrice),
		}
		if line.TotalPrice == 0 {
			line.TotalPrice = line.Quantity * line.PricePerUnit
		}
		result.Items = append(result.Items, line)
	}
	return result, nil
}

// ExtractSupplierCard reads supplier contact details from an image or document.
func (c *Client) ExtractSupplierCard(ctx context.Context, doc Attachment) (SupplierCard, error) {
	if strings.TrimSpace(doc.Text) == "" && doc.Image == "" {
		return SupplierCard{}, ErrEmptyDocument
	}

	var raw SupplierCard
	err := c.complete(ctx, "supplier card", []chatMessage{
		{Role: "system", Content: supplierCardSystemPrompt},
		userMessage("Extract the supplier on this card.", doc),
	}, &raw)
	if err != nil {
		return SupplierCard{}, err
	}

	return SupplierCard{
		Name:          normaliseText(raw.Name),
		ContactPerson: normaliseText(raw.ContactPerson),
		Email:         strings.ToLower(normaliseValue(raw.Email)),
		Phone:         normaliseValue(raw.Phone),
		Category:      normaliseValue(raw.Category),
	}, nil
}
