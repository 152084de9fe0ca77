package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Author is a contributor. Freelancers are paid through the commission
// pipeline; staff authors are bylined but never commissioned.
type Author struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FirstNames string    `gorm:"uniqueIndex:idx_author_full_name"`
	LastName   string    `gorm:"uniqueIndex:idx_author_full_name;not null"`
	Title      string    `gorm:"type:varchar(20)"`
	Description    string
	Website        string
	Twitter        string
	Facebook       string
	Email          string `gorm:"index"`
	EmailIsPrivate bool   `gorm:"not null;default:true"`
	Freelancer     bool   `gorm:"not null;default:false"`
	Telephone      string
	Cell           string

	// Defaults snapshotted onto every new invoice for this author.
	// Editing these never alters invoices that already exist.
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
	// TaxPercent is the PAYE deduction unless the author holds a tax directive.
	TaxPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:25"`
	// VATPercent is non-zero only for VAT-registered authors.
	VATPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0;column:vat_percent"`

	PasswordChanged bool `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FullName is the display name: "[title] [first names] [last name]".
func (a *Author) FullName() string {
	return strings.TrimSpace(strings.Join([]string{a.Title, a.FirstNames, a.LastName}, " "))
}
