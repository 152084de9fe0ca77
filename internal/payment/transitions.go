package payment

import (
	"time"

	"github.com/sjwaight/gu/internal/model"
)

// statusChange keys the transition table on (old status, new status).
type statusChange struct {
	From model.InvoiceStatus
	To   model.InvoiceStatus
}

// sideEffect describes what entering a status does to the invoice.
type sideEffect struct {
	stamp       func(inv *model.Invoice, now time.Time)
	recalculate bool
}

// stampOnce sets *field to now only if it is still nil. The latches are
// one-way: a timestamp, once set, survives every later save.
func stampOnce(field **time.Time, now time.Time) {
	if *field == nil {
		t := now
		*field = &t
	}
}

var entryEffects = map[model.InvoiceStatus]sideEffect{
	model.StatusReporterApproved: {
		stamp: func(inv *model.Invoice, now time.Time) {
			stampOnce(&inv.DateTimeReporterApproved, now)
		},
	},
	model.StatusEditorApproved: {
		stamp: func(inv *model.Invoice, now time.Time) {
			stampOnce(&inv.DateTimeEditorApproved, now)
		},
	},
	model.StatusPaid: {
		stamp: func(inv *model.Invoice, now time.Time) {
			stampOnce(&inv.DateTimeProcessed, now)
		},
		recalculate: true,
	},
}

// transitions is the explicit (from, to) table: a side effect fires only when
// the status actually changes into a state that carries one.
var transitions = func() map[statusChange]sideEffect {
	all := []model.InvoiceStatus{
		model.StatusUnpaid, model.StatusQueried, model.StatusReporterApproved,
		model.StatusEditorApproved, model.StatusPaid,
	}
	t := make(map[statusChange]sideEffect)
	for _, from := range all {
		for to, eff := range entryEffects {
			if from != to {
				t[statusChange{From: from, To: to}] = eff
			}
		}
	}
	return t
}()

// ApplyTransition moves inv from its current status to the requested one and
// applies the entry side effects. It returns true when the caller must
// recompute the payment totals before persisting.
//
// Saving an invoice that is already Paid also requires a recompute: the totals
// are a derived projection, not an editable field, once paid.
func ApplyTransition(inv *model.Invoice, to model.InvoiceStatus, now time.Time) (recalculate bool) {
	from := inv.Status
	inv.Status = to
	if eff, ok := transitions[statusChange{From: from, To: to}]; ok {
		eff.stamp(inv, now)
		recalculate = eff.recalculate
	}
	if to == model.StatusPaid {
		recalculate = true
	}
	return recalculate
}
