package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the approval state of an invoice. Transitions are driven by
// humans through the API; the timestamp/total side effects are applied by
// payment.ApplyTransition on save.
type InvoiceStatus string

const (
	StatusUnpaid           InvoiceStatus = "0"
	StatusQueried          InvoiceStatus = "1" // queried by reporter
	StatusReporterApproved InvoiceStatus = "2"
	StatusEditorApproved   InvoiceStatus = "3"
	StatusPaid             InvoiceStatus = "4"
)

// Display returns the human-readable status name.
func (s InvoiceStatus) Display() string {
	switch s {
	case StatusUnpaid:
		return "Unpaid"
	case StatusQueried:
		return "Queried by reporter"
	case StatusReporterApproved:
		return "Approved by reporter"
	case StatusEditorApproved:
		return "Approved by editor"
	case StatusPaid:
		return "Paid"
	default:
		return "Unknown"
	}
}

// Valid reports whether s is one of the defined statuses.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case StatusUnpaid, StatusQueried, StatusReporterApproved, StatusEditorApproved, StatusPaid:
		return true
	}
	return false
}

// Invoice aggregates one author's approved commissions into a payable batch.
// InvoiceNum is sequential per author, starting at 1 — it is NOT globally
// unique. The banking/tax fields are snapshots of the author at creation time.
type Invoice struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_invoice_author_num"`
	InvoiceNum int       `gorm:"not null;uniqueIndex:idx_invoice_author_num"`

	// Snapshot of the author's banking/tax details at creation.
	Identification    string     `gorm:"type:varchar(20)"`
	DateOfBirth       *time.Time `gorm:"type:date"`
	Address           string
	BankName          string `gorm:"type:varchar(20)"`
	BankAccountNumber string `gorm:"type:varchar(20)"`
	BankAccountType   string `gorm:"type:varchar(20);not null;default:'CURRENT'"`
	BankBranchName    string `gorm:"type:varchar(20)"`
	BankBranchCode    string `gorm:"type:varchar(20)"`
	SwiftCode         string `gorm:"type:varchar(12)"`
	IBAN              string `gorm:"type:varchar(34);column:iban"`
	TaxNumber         string `gorm:"type:varchar(50)"`
	TaxPercent        decimal.Decimal `gorm:"type:decimal(5,2);not null;default:25"`
	VATPercent        decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0;column:vat_percent"`

	Status InvoiceStatus `gorm:"type:varchar(2);not null;default:'0';index"`
	Notes  string

	// Derived sums over approved commissions; recomputed whenever the invoice
	// is saved in status Paid. Not independently editable once paid.
	AmountPaid decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TaxPaid    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	VATPaid    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0;column:vat_paid"`

	// One-way latches stamped on status transitions; never cleared.
	DateTimeReporterApproved *time.Time
	DateTimeEditorApproved   *time.Time
	DateTimeProcessed        *time.Time
	// DateNotifiedPayment is the idempotence guard for the payment email.
	DateNotifiedPayment *time.Time

	OurReference   string `gorm:"type:varchar(20)"`
	TheirReference string `gorm:"type:varchar(20)"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Author      *Author      `gorm:"foreignKey:AuthorID"`
	Commissions []Commission `gorm:"foreignKey:InvoiceID"`
}

// Reference is the short display form "pk-invoiceNum" used in emails and PDFs.
func (inv *Invoice) Reference() string {
	return fmt.Sprintf("%s-%d", inv.ID.String()[:8], inv.InvoiceNum)
}
