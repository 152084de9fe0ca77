package payment

import (
	"time"

	"github.com/google/uuid"

	"github.com/sjwaight/gu/internal/model"
)

// NewInvoice builds invoice number num for the author, snapshotting the
// author's current banking and tax details. The snapshot is deliberate: later
// edits to the author must not rewrite historical invoices.
//
// Allocation of num is the caller's problem — see
// repository.InvoiceRepository.CreateForAuthor, which serializes the max+1
// computation per author.
func NewInvoice(author *model.Author, num int) *model.Invoice {
	var dob *time.Time
	if author.DateOfBirth != nil {
		d := *author.DateOfBirth
		dob = &d
	}
	return &model.Invoice{
		ID:                uuid.New(),
		AuthorID:          author.ID,
		InvoiceNum:        num,
		Identification:    author.Identification,
		DateOfBirth:       dob,
		Address:           author.Address,
		BankName:          author.BankName,
		BankAccountNumber: author.BankAccountNumber,
		BankAccountType:   author.BankAccountType,
		BankBranchName:    author.BankBranchName,
		BankBranchCode:    author.BankBranchCode,
		SwiftCode:         author.SwiftCode,
		IBAN:              author.IBAN,
		TaxNumber:         author.TaxNumber,
		TaxPercent:        author.TaxPercent,
		VATPercent:        author.VATPercent,
		Status:            model.StatusUnpaid,
	}
}

// ApproveCommission latches DateApproved the first time a fund is attached.
func ApproveCommission(c *model.Commission, now time.Time) {
	if c.FundID != nil && c.DateApproved == nil {
		t := now
		c.DateApproved = &t
	}
}
