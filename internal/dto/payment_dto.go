package dto

import "github.com/shopspring/decimal"

// ─── Funds ──────────────────────────────────────────────────────────────────

type CreateFundRequest struct {
	Name string `json:"name" validate:"required,max=20"`
}

type FundResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ─── Commissions ────────────────────────────────────────────────────────────

type CreateCommissionRequest struct {
	AuthorID    string          `json:"author_id"  validate:"required,uuid"`
	ArticleID   *string         `json:"article_id" validate:"omitempty,uuid"`
	Description string          `json:"description" validate:"max=30"`
	FundID      *string         `json:"fund_id"    validate:"omitempty,uuid"`
	Amount      decimal.Decimal `json:"amount"     validate:"min=0"`
	Taxable     *bool           `json:"taxable"`
	VATable     *bool           `json:"vatable"`
}

// UpdateCommissionRequest prices and approves an existing commission.
type UpdateCommissionRequest struct {
	Description *string          `json:"description" validate:"omitempty,max=30"`
	FundID      *string          `json:"fund_id"     validate:"omitempty,uuid"`
	Amount      *decimal.Decimal `json:"amount"      validate:"omitempty,min=0"`
	Taxable     *bool            `json:"taxable"`
	VATable     *bool            `json:"vatable"`
}

type CommissionResponse struct {
	ID          string  `json:"id"`
	InvoiceID   *string `json:"invoice_id"`
	AuthorID    *string `json:"author_id"`
	ArticleID   *string `json:"article_id"`
	Article     *string `json:"article,omitempty"`
	Description string  `json:"description"`
	Fund        *string `json:"fund"`

	Amount  decimal.Decimal `json:"amount"`
	Taxable bool            `json:"taxable"`
	VATable bool            `json:"vatable"`

	SysGenerated         bool    `json:"sys_generated"`
	DateGenerated        *string `json:"date_generated"`
	DateApproved         *string `json:"date_approved"`
	DateNotifiedApproved *string `json:"date_notified_approved"`
}

// ─── Invoices ───────────────────────────────────────────────────────────────

type InvoiceFilter struct {
	Status   string `form:"status,default=all"`
	AuthorID string `form:"author_id" validate:"omitempty,uuid"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// UpdateInvoiceStatusRequest drives the approval state machine. Notes is
// optional: absent leaves the stored notes untouched.
type UpdateInvoiceStatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=0 1 2 3 4"`
	Notes  *string `json:"notes"`
}

type InvoiceResponse struct {
	ID         string `json:"id"`
	Reference  string `json:"reference"`
	AuthorID   string `json:"author_id"`
	Author     string `json:"author"`
	InvoiceNum int    `json:"invoice_num"`
	Status     string `json:"status"`
	StatusName string `json:"status_name"`
	Notes      string `json:"notes,omitempty"`

	TaxPercent decimal.Decimal `json:"tax_percent"`
	VATPercent decimal.Decimal `json:"vat_percent"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	TaxPaid    decimal.Decimal `json:"tax_paid"`
	VATPaid    decimal.Decimal `json:"vat_paid"`

	DateTimeReporterApproved *string `json:"date_time_reporter_approved"`
	DateTimeEditorApproved   *string `json:"date_time_editor_approved"`
	DateTimeProcessed        *string `json:"date_time_processed"`
	DateNotifiedPayment      *string `json:"date_notified_payment"`

	Commissions []CommissionResponse `json:"commissions,omitempty"`
}

type InvoiceListResponse struct {
	Data  []InvoiceResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
