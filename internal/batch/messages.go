package batch

import (
	"fmt"
	"strings"

	"github.com/sjwaight/gu/internal/model"
)

func approvalBody(siteName string, author *model.Author, c *model.Commission) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", author.FullName())
	if c.Article != nil {
		fmt.Fprintf(&b, "Payment of %s has been approved for your article %q.\n",
			c.CommissionDue.StringFixed(2), c.Article.Title)
	} else {
		fmt.Fprintf(&b, "Payment of %s has been approved for: %s.\n",
			c.CommissionDue.StringFixed(2), c.Description)
	}
	b.WriteString("\nIt will be included in your next invoice. Tax and VAT are " +
		"calculated when the invoice is processed.\n")
	fmt.Fprintf(&b, "\nThe %s team\n", siteName)
	return b.String()
}

func paymentBody(siteName string, inv *model.Invoice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", inv.Author.FullName())
	fmt.Fprintf(&b, "Invoice %s has been paid into your account ending %s.\n\n",
		inv.Reference(), lastDigits(inv.BankAccountNumber, 4))
	fmt.Fprintf(&b, "Amount paid: %s\n", inv.AmountPaid.StringFixed(2))
	fmt.Fprintf(&b, "Tax deducted: %s\n", inv.TaxPaid.StringFixed(2))
	fmt.Fprintf(&b, "VAT: %s\n", inv.VATPaid.StringFixed(2))
	fmt.Fprintf(&b, "\nThe %s team\n", siteName)
	return b.String()
}

func lastDigits(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
