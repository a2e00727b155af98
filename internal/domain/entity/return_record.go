package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnRecord documenta la devolución de un item al proveedor: quién lo
// recibió, con qué nota fiscal y por qué motivo. Append-only.
type ReturnRecord struct {
	ID               string          `json:"id"`
	ItemID           string          `json:"itemId"`
	ItemName         string          `json:"itemName,omitempty"`
	ReturnReason     string          `json:"returnReason"`
	ReturnReasonText string          `json:"returnReasonText,omitempty"`
	ReturnedTo       string          `json:"returnedTo"`
	InvoiceNumber    string          `json:"invoiceNumber"`
	InvoiceDate      string          `json:"invoiceDate"` // AAAA-MM-DD
	EstimatedValue   decimal.Decimal `json:"estimatedValue"`
	Notes            string          `json:"notes,omitempty"`
	Timestamp        time.Time       `json:"timestamp"`
	UserName         string          `json:"userName"`
}
