package dto

import "github.com/shopspring/decimal"

// ReturnItemRequest devolución de un item al proveedor.
type ReturnItemRequest struct {
	ReturnReason     string          `json:"returnReason"`
	ReturnReasonText string          `json:"returnReasonText"`
	ReturnedTo       string          `json:"returnedTo"`
	InvoiceNumber    string          `json:"invoiceNumber"`
	InvoiceDate      string          `json:"invoiceDate"` // AAAA-MM-DD
	EstimatedValue   decimal.Decimal `json:"estimatedValue"`
	Notes            string          `json:"notes"`
}

// ReturnNoteItemRequest línea de una nota de devolución.
type ReturnNoteItemRequest struct {
	Patrimonio string `json:"patrimonio"`
	Modelo     string `json:"modelo"`
	Marca      string `json:"marca"`
}

// CreateReturnNoteRequest alta de nota de devolución.
type CreateReturnNoteRequest struct {
	NumeroNota  string                  `json:"numeroNota"`
	Data        string                  `json:"data"` // AAAA-MM-DD, hoy si vacío
	Itens       []ReturnNoteItemRequest `json:"itens"`
	Observacoes string                  `json:"observacoes"`
	Status      string                  `json:"status"` // pendente si vacío
}
