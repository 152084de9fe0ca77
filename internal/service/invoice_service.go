package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sjwaight/gu/internal/dto"
	"github.com/sjwaight/gu/internal/model"
	"github.com/sjwaight/gu/internal/payment"
	"github.com/sjwaight/gu/internal/repository"
)

type InvoiceService interface {
	Get(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error)
	List(ctx context.Context, filter dto.InvoiceFilter) (*dto.InvoiceListResponse, error)
	// UpdateStatus drives the approval state machine and applies its side
	// effects: one-way timestamp latches and, on Paid, the totals recompute.
	UpdateStatus(ctx context.Context, id uuid.UUID, req dto.UpdateInvoiceStatusRequest) (*dto.InvoiceResponse, error)
	// RenderPDF writes the remittance advice to disk and returns its path.
	RenderPDF(ctx context.Context, id uuid.UUID) (string, error)
}

// PDFWriter renders an invoice with its commissions to a file.
type PDFWriter func(inv *model.Invoice, commissions []model.Commission) (string, error)

type invoiceService struct {
	invoices    repository.InvoiceRepository
	commissions repository.CommissionRepository
	renderPDF   PDFWriter
}

func NewInvoiceService(invoices repository.InvoiceRepository, commissions repository.CommissionRepository, renderPDF PDFWriter) InvoiceService {
	return &invoiceService{invoices: invoices, commissions: commissions, renderPDF: renderPDF}
}

func (s *invoiceService) Get(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error) {
	inv, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("invoice not found: %w", err)
	}
	return invoiceToResponse(inv, true), nil
}

func (s *invoiceService) List(ctx context.Context, filter dto.InvoiceFilter) (*dto.InvoiceListResponse, error) {
	invoices, total, err := s.invoices.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.InvoiceListResponse{
		Data:  make([]dto.InvoiceResponse, 0, len(invoices)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range invoices {
		resp.Data = append(resp.Data, *invoiceToResponse(&invoices[i], false))
	}
	return resp, nil
}

func (s *invoiceService) UpdateStatus(ctx context.Context, id uuid.UUID, req dto.UpdateInvoiceStatusRequest) (*dto.InvoiceResponse, error) {
	inv, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("invoice not found: %w", err)
	}

	to := model.InvoiceStatus(req.Status)
	if !to.Valid() {
		return nil, fmt.Errorf("unknown status %q", req.Status)
	}

	from := inv.Status
	recalculate := payment.ApplyTransition(inv, to, time.Now())
	if req.Notes != nil {
		inv.Notes = *req.Notes
	}

	if recalculate {
		commissions, err := s.commissions.ListByInvoice(ctx, inv.ID)
		if err != nil {
			return nil, fmt.Errorf("load commissions for totals: %w", err)
		}
		payment.Aggregate(inv, commissions)
	}

	if err := s.invoices.Update(ctx, inv); err != nil {
		return nil, fmt.Errorf("update invoice: %w", err)
	}

	log.Info().
		Str("invoice", inv.Reference()).
		Str("from", string(from)).
		Str("to", string(to)).
		Bool("recalculated", recalculate).
		Msg("invoice status changed")

	return invoiceToResponse(inv, true), nil
}

func (s *invoiceService) RenderPDF(ctx context.Context, id uuid.UUID) (string, error) {
	inv, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("invoice not found: %w", err)
	}
	commissions, err := s.commissions.ListByInvoice(ctx, inv.ID)
	if err != nil {
		return "", fmt.Errorf("load commissions: %w", err)
	}
	path, err := s.renderPDF(inv, commissions)
	if err != nil {
		return "", fmt.Errorf("render invoice pdf: %w", err)
	}
	return path, nil
}

func invoiceToResponse(inv *model.Invoice, withCommissions bool) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:         inv.ID.String(),
		Reference:  inv.Reference(),
		AuthorID:   inv.AuthorID.String(),
		InvoiceNum: inv.InvoiceNum,
		Status:     string(inv.Status),
		StatusName: inv.Status.Display(),
		Notes:      inv.Notes,

		TaxPercent: inv.TaxPercent,
		VATPercent: inv.VATPercent,
		AmountPaid: inv.AmountPaid,
		TaxPaid:    inv.TaxPaid,
		VATPaid:    inv.VATPaid,

		DateTimeReporterApproved: formatTime(inv.DateTimeReporterApproved),
		DateTimeEditorApproved:   formatTime(inv.DateTimeEditorApproved),
		DateTimeProcessed:        formatTime(inv.DateTimeProcessed),
		DateNotifiedPayment:      formatTime(inv.DateNotifiedPayment),
	}
	if inv.Author != nil {
		resp.Author = inv.Author.FullName()
	}
	if withCommissions {
		for i := range inv.Commissions {
			resp.Commissions = append(resp.Commissions, *commissionToResponse(&inv.Commissions[i]))
		}
	}
	return resp
}
