// Package payment holds the commission/invoice money logic: the tax/VAT
// calculator, the invoice aggregator, the per-author invoice snapshot, and the
// status-transition side effects. Everything here is pure — persistence and
// email live in the repositories and the batch processor.
package payment

import (
	"github.com/shopspring/decimal"

	"github.com/sjwaight/gu/internal/model"
)

var hundred = decimal.NewFromInt(100)

// Breakdown is the result of pricing a single commission.
type Breakdown struct {
	// Due is what the author receives: gross - tax + vat.
	Due decimal.Decimal
	VAT decimal.Decimal
	Tax decimal.Decimal
	// Gross is the commission amount before any deduction.
	Gross decimal.Decimal
}

// CalcCommission prices one commission against the tax/VAT percentages
// snapshotted on its invoice:
//
//	tax = taxable ? gross * taxPercent/100 : 0
//	vat = vatable ? gross * vatPercent/100 : 0
//	due = gross - tax + vat
func CalcCommission(gross decimal.Decimal, taxable, vatable bool, taxPercent, vatPercent decimal.Decimal) Breakdown {
	tax := decimal.Zero
	vat := decimal.Zero
	if taxable {
		tax = gross.Mul(taxPercent).Div(hundred)
	}
	if vatable {
		vat = gross.Mul(vatPercent).Div(hundred)
	}
	return Breakdown{
		Due:   gross.Sub(tax).Add(vat),
		VAT:   vat,
		Tax:   tax,
		Gross: gross,
	}
}

// Aggregate recomputes inv.AmountPaid / TaxPaid / VATPaid from the given
// commissions. Commissions without a fund or with a non-positive amount are
// excluded: they are not approved for payment.
func Aggregate(inv *model.Invoice, commissions []model.Commission) {
	total := decimal.Zero
	totalTax := decimal.Zero
	totalVAT := decimal.Zero
	for i := range commissions {
		c := &commissions[i]
		if c.FundID == nil || !c.CommissionDue.IsPositive() {
			continue
		}
		b := CalcCommission(c.CommissionDue, c.Taxable, c.VATable, inv.TaxPercent, inv.VATPercent)
		total = total.Add(b.Due)
		totalTax = totalTax.Add(b.Tax)
		totalVAT = totalVAT.Add(b.VAT)
	}
	inv.AmountPaid = total
	inv.TaxPaid = totalTax
	inv.VATPaid = totalVAT
}
