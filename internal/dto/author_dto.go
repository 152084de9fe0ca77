package dto

import "github.com/shopspring/decimal"

type CreateAuthorRequest struct {
	FirstNames string `json:"first_names" validate:"max=200"`
	LastName   string `json:"last_name"   validate:"required,max=200"`
	Title      string `json:"title"       validate:"max=20"`
	Email      string `json:"email"       validate:"omitempty,email"`
	Freelancer bool   `json:"freelancer"`
	Telephone  string `json:"telephone"   validate:"max=200"`
	Cell       string `json:"cell"        validate:"max=200"`

	Identification    string `json:"identification"      validate:"max=20"`
	DateOfBirth       string `json:"date_of_birth"       validate:"omitempty,datetime=2006-01-02"`
	Address           string `json:"address"`
	BankName          string `json:"bank_name"           validate:"max=20"`
	BankAccountNumber string `json:"bank_account_number" validate:"max=20"`
	BankAccountType   string `json:"bank_account_type"   validate:"max=20"`
	BankBranchName    string `json:"bank_branch_name"    validate:"max=20"`
	BankBranchCode    string `json:"bank_branch_code"    validate:"max=20"`
	SwiftCode         string `json:"swift_code"          validate:"max=12"`
	IBAN              string `json:"iban"                validate:"max=34"`
	TaxNumber         string `json:"tax_number"          validate:"max=50"`

	TaxPercent *decimal.Decimal `json:"tax_percent" validate:"omitempty,min=0,max=100"`
	VATPercent *decimal.Decimal `json:"vat_percent" validate:"omitempty,min=0,max=100"`
}

type UpdateAuthorRequest = CreateAuthorRequest

type AuthorResponse struct {
	ID         string `json:"id"`
	FirstNames string `json:"first_names"`
	LastName   string `json:"last_name"`
	FullName   string `json:"full_name"`
	Email      string `json:"email,omitempty"`
	Freelancer bool   `json:"freelancer"`

	TaxPercent decimal.Decimal `json:"tax_percent"`
	VATPercent decimal.Decimal `json:"vat_percent"`
}
