package payment

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sjwaight/gu/internal/model"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalcCommissionTaxable(t *testing.T) {
	b := CalcCommission(d("900.00"), true, false, d("25"), d("0"))

	assert.True(t, d("225").Equal(b.Tax), "tax = %s", b.Tax)
	assert.True(t, d("0").Equal(b.VAT))
	assert.True(t, d("675").Equal(b.Due), "due = %s", b.Due)
	assert.True(t, d("900").Equal(b.Gross))
}

func TestCalcCommissionNotTaxable(t *testing.T) {
	b := CalcCommission(d("900.00"), false, false, d("25"), d("0"))

	assert.True(t, b.Tax.IsZero())
	assert.True(t, d("900").Equal(b.Due))
}

func TestCalcCommissionVATable(t *testing.T) {
	// VAT is charged on top of the gross and uses the invoice's VAT rate.
	b := CalcCommission(d("1000.00"), true, true, d("25"), d("15"))

	assert.True(t, d("250").Equal(b.Tax))
	assert.True(t, d("150").Equal(b.VAT))
	// 1000 - 250 + 150
	assert.True(t, d("900").Equal(b.Due), "due = %s", b.Due)
}

func TestCalcCommissionZeroRates(t *testing.T) {
	b := CalcCommission(d("450.50"), true, true, d("0"), d("0"))

	assert.True(t, b.Tax.IsZero())
	assert.True(t, b.VAT.IsZero())
	assert.True(t, d("450.50").Equal(b.Due))
}

func TestAggregateSumsApprovedCommissions(t *testing.T) {
	fundID := uuid.New()
	inv := &model.Invoice{TaxPercent: d("25"), VATPercent: d("0")}

	commissions := []model.Commission{
		{FundID: &fundID, CommissionDue: d("900.00"), Taxable: true},
		{FundID: &fundID, CommissionDue: d("100.00"), Taxable: false},
	}

	Aggregate(inv, commissions)

	// 675 + 100
	assert.True(t, d("775").Equal(inv.AmountPaid), "amount = %s", inv.AmountPaid)
	assert.True(t, d("225").Equal(inv.TaxPaid))
	assert.True(t, inv.VATPaid.IsZero())
}

func TestAggregateExcludesUnapprovedAndZero(t *testing.T) {
	fundID := uuid.New()
	inv := &model.Invoice{TaxPercent: d("25"), VATPercent: d("0")}

	commissions := []model.Commission{
		// no fund: pending approval
		{FundID: nil, CommissionDue: d("500.00"), Taxable: true},
		// zero amount: not yet priced
		{FundID: &fundID, CommissionDue: d("0"), Taxable: true},
		{FundID: &fundID, CommissionDue: d("200.00"), Taxable: true},
	}

	Aggregate(inv, commissions)

	assert.True(t, d("150").Equal(inv.AmountPaid), "amount = %s", inv.AmountPaid)
	assert.True(t, d("50").Equal(inv.TaxPaid))
}

func TestAggregateEmptyResetsTotals(t *testing.T) {
	inv := &model.Invoice{
		TaxPercent: d("25"),
		AmountPaid: d("999"),
		TaxPaid:    d("111"),
		VATPaid:    d("11"),
	}

	Aggregate(inv, nil)

	assert.True(t, inv.AmountPaid.IsZero())
	assert.True(t, inv.TaxPaid.IsZero())
	assert.True(t, inv.VATPaid.IsZero())
}
