package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountingEntryResponse línea de asiento contable.
type AccountingEntryResponse struct {
	ID                 string          `json:"id"`
	AccountNumber      string          `json:"account_number"`
	Label              string          `json:"label"`
	Debit              decimal.Decimal `json:"debit"`
	Credit             decimal.Decimal `json:"credit"`
	SourceDocumentType string          `json:"source_document_type"`
	SourceDocumentID   string          `json:"source_document_id"`
	EntryDate          time.Time       `json:"entry_date"`
}

// CashFlowResponse movimiento de tesorería.
type CashFlowResponse struct {
	ID                 string          `json:"id"`
	Type               string          `json:"type"`
	Amount             decimal.Decimal `json:"amount"`
	Label              string          `json:"label"`
	SourceDocumentType string          `json:"source_document_type"`
	SourceDocumentID   string          `json:"source_document_id"`
	Date               time.Time       `json:"date"`
}
