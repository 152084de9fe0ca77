package payment

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/sjwaight/gu/internal/model"
)

func TestNewInvoiceSnapshotsAuthorDetails(t *testing.T) {
	author := &model.Author{
		ID:                uuid.New(),
		FirstNames:        "Thandi",
		LastName:          "Mbeki",
		BankName:          "FNB",
		BankAccountNumber: "62001234567",
		BankAccountType:   "CURRENT",
		BankBranchCode:    "250655",
		TaxNumber:         "TX-9981",
		TaxPercent:        d("25"),
		VATPercent:        d("15"),
	}

	inv := NewInvoice(author, 3)

	assert.Equal(t, author.ID, inv.AuthorID)
	assert.Equal(t, 3, inv.InvoiceNum)
	assert.Equal(t, model.StatusUnpaid, inv.Status)
	assert.Equal(t, "FNB", inv.BankName)
	assert.Equal(t, "62001234567", inv.BankAccountNumber)
	assert.Equal(t, "250655", inv.BankBranchCode)
	assert.Equal(t, "TX-9981", inv.TaxNumber)
	assert.True(t, d("25").Equal(inv.TaxPercent))
	assert.True(t, d("15").Equal(inv.VATPercent))

	// Later author edits must not leak into the snapshot.
	author.BankAccountNumber = "changed"
	author.TaxPercent = d("0")
	assert.Equal(t, "62001234567", inv.BankAccountNumber)
	assert.True(t, d("25").Equal(inv.TaxPercent))
}
