package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjwaight/gu/internal/dto"
	"github.com/sjwaight/gu/internal/model"
	"github.com/sjwaight/gu/internal/repository"
)

// ── Minimal repo stubs for status updates ────────────────────────────────────

type fakeInvoiceRepo struct {
	invoices map[uuid.UUID]*model.Invoice
}

var _ repository.InvoiceRepository = (*fakeInvoiceRepo)(nil)

func (r *fakeInvoiceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	cloned := *inv
	return &cloned, nil
}

func (r *fakeInvoiceRepo) Update(_ context.Context, inv *model.Invoice) error {
	cloned := *inv
	r.invoices[inv.ID] = &cloned
	return nil
}

func (r *fakeInvoiceRepo) List(context.Context, dto.InvoiceFilter) ([]model.Invoice, int64, error) {
	return nil, 0, errors.New("not used")
}

func (r *fakeInvoiceRepo) FindOpenByAuthor(context.Context, uuid.UUID) (*model.Invoice, error) {
	return nil, errors.New("not used")
}

func (r *fakeInvoiceRepo) CreateForAuthor(context.Context, *model.Author) (*model.Invoice, error) {
	return nil, errors.New("not used")
}

func (r *fakeInvoiceRepo) ListPaidUnnotified(context.Context) ([]model.Invoice, error) {
	return nil, errors.New("not used")
}

type fakeCommissionRepo struct {
	byInvoice map[uuid.UUID][]model.Commission
}

var _ repository.CommissionRepository = (*fakeCommissionRepo)(nil)

func (r *fakeCommissionRepo) Create(context.Context, *model.Commission) error {
	return errors.New("not used")
}

func (r *fakeCommissionRepo) FindByID(context.Context, uuid.UUID) (*model.Commission, error) {
	return nil, errors.New("not used")
}

func (r *fakeCommissionRepo) Update(context.Context, *model.Commission) error {
	return errors.New("not used")
}

func (r *fakeCommissionRepo) List(context.Context) ([]model.Commission, error) {
	return nil, errors.New("not used")
}

func (r *fakeCommissionRepo) ListByInvoice(_ context.Context, invoiceID uuid.UUID) ([]model.Commission, error) {
	return r.byInvoice[invoiceID], nil
}

func (r *fakeCommissionRepo) ListApprovedUnbilled(context.Context) ([]model.Commission, error) {
	return nil, errors.New("not used")
}

func (r *fakeCommissionRepo) ListUnnotifiedApproved(context.Context) ([]model.Commission, error) {
	return nil, errors.New("not used")
}

func (r *fakeCommissionRepo) ExistsForArticle(context.Context, uuid.UUID) (bool, error) {
	return false, errors.New("not used")
}

func newInvoiceServiceFixture(inv *model.Invoice) (InvoiceService, *fakeInvoiceRepo) {
	invoices := &fakeInvoiceRepo{invoices: map[uuid.UUID]*model.Invoice{inv.ID: inv}}
	commissions := &fakeCommissionRepo{byInvoice: map[uuid.UUID][]model.Commission{}}
	return NewInvoiceService(invoices, commissions, nil), invoices
}

func strPtr(s string) *string { return &s }

// ── Tests ────────────────────────────────────────────────────────────────────

func TestUpdateStatusKeepsNotesWhenOmitted(t *testing.T) {
	inv := &model.Invoice{
		ID:     uuid.New(),
		Status: model.StatusUnpaid,
		Notes:  "bank details confirmed by phone",
	}
	svc, invoices := newInvoiceServiceFixture(inv)

	resp, err := svc.UpdateStatus(context.Background(), inv.ID, dto.UpdateInvoiceStatusRequest{
		Status: string(model.StatusQueried),
	})
	require.NoError(t, err)

	assert.Equal(t, "bank details confirmed by phone", resp.Notes)
	assert.Equal(t, "bank details confirmed by phone", invoices.invoices[inv.ID].Notes)
}

func TestUpdateStatusAppliesNotesWhenPresent(t *testing.T) {
	inv := &model.Invoice{
		ID:     uuid.New(),
		Status: model.StatusUnpaid,
		Notes:  "old note",
	}
	svc, invoices := newInvoiceServiceFixture(inv)

	resp, err := svc.UpdateStatus(context.Background(), inv.ID, dto.UpdateInvoiceStatusRequest{
		Status: string(model.StatusQueried),
		Notes:  strPtr("rate queried by reporter"),
	})
	require.NoError(t, err)
	assert.Equal(t, "rate queried by reporter", resp.Notes)

	// An explicit empty string still clears them.
	_, err = svc.UpdateStatus(context.Background(), inv.ID, dto.UpdateInvoiceStatusRequest{
		Status: string(model.StatusUnpaid),
		Notes:  strPtr(""),
	})
	require.NoError(t, err)
	assert.Empty(t, invoices.invoices[inv.ID].Notes)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	inv := &model.Invoice{ID: uuid.New(), Status: model.StatusUnpaid}
	svc, _ := newInvoiceServiceFixture(inv)

	_, err := svc.UpdateStatus(context.Background(), inv.ID, dto.UpdateInvoiceStatusRequest{Status: "9"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown status")
}

func TestUpdateStatusToPaidRecomputesTotals(t *testing.T) {
	inv := &model.Invoice{
		ID:         uuid.New(),
		Status:     model.StatusEditorApproved,
		TaxPercent: decimal.RequireFromString("25"),
	}
	fundID := uuid.New()
	invoices := &fakeInvoiceRepo{invoices: map[uuid.UUID]*model.Invoice{inv.ID: inv}}
	commissions := &fakeCommissionRepo{byInvoice: map[uuid.UUID][]model.Commission{
		inv.ID: {{
			ID:            uuid.New(),
			FundID:        &fundID,
			CommissionDue: decimal.RequireFromString("900.00"),
			Taxable:       true,
		}},
	}}
	svc := NewInvoiceService(invoices, commissions, nil)

	resp, err := svc.UpdateStatus(context.Background(), inv.ID, dto.UpdateInvoiceStatusRequest{
		Status: string(model.StatusPaid),
	})
	require.NoError(t, err)

	assert.Equal(t, string(model.StatusPaid), resp.Status)
	stored := invoices.invoices[inv.ID]
	assert.True(t, decimal.RequireFromString("675").Equal(stored.AmountPaid))
	assert.True(t, decimal.RequireFromString("225").Equal(stored.TaxPaid))
	require.NotNil(t, stored.DateTimeProcessed)
}
