package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sjwaight/gu/internal/dto"
	"github.com/sjwaight/gu/internal/model"
	"github.com/sjwaight/gu/internal/payment"
	"github.com/sjwaight/gu/internal/repository"
)

// ErrInvoicePaid is returned when a write touches a commission whose invoice
// has already been paid.
var ErrInvoicePaid = errors.New("invoice already paid, commission is immutable")

type CommissionService interface {
	Create(ctx context.Context, req dto.CreateCommissionRequest) (*dto.CommissionResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCommissionRequest) (*dto.CommissionResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CommissionResponse, error)
	List(ctx context.Context) ([]dto.CommissionResponse, error)
}

type commissionService struct {
	commissions repository.CommissionRepository
	authors     repository.AuthorRepository
	funds       repository.FundRepository
}

func NewCommissionService(commissions repository.CommissionRepository, authors repository.AuthorRepository, funds repository.FundRepository) CommissionService {
	return &commissionService{commissions: commissions, authors: authors, funds: funds}
}

func (s *commissionService) Create(ctx context.Context, req dto.CreateCommissionRequest) (*dto.CommissionResponse, error) {
	authorID, err := uuid.Parse(req.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("bad author id: %w", err)
	}
	if _, err := s.authors.FindByID(ctx, authorID); err != nil {
		return nil, fmt.Errorf("author not found: %w", err)
	}

	now := time.Now()
	c := &model.Commission{
		ID:            uuid.New(),
		AuthorID:      &authorID,
		CommissionDue: req.Amount,
		DateGenerated: &now,
	}
	if req.Description != "" {
		c.Description = req.Description
	} else {
		c.Description = "Article author"
	}
	if req.Taxable != nil {
		c.Taxable = *req.Taxable
	} else {
		c.Taxable = true
	}
	if req.VATable != nil {
		c.VATable = *req.VATable
	}
	if req.ArticleID != nil {
		articleID, err := uuid.Parse(*req.ArticleID)
		if err != nil {
			return nil, fmt.Errorf("bad article id: %w", err)
		}
		c.ArticleID = &articleID
	}
	if req.FundID != nil {
		fundID, err := s.resolveFund(ctx, *req.FundID)
		if err != nil {
			return nil, err
		}
		c.FundID = fundID
		payment.ApproveCommission(c, now)
	}

	if err := s.commissions.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create commission: %w", err)
	}
	return commissionToResponse(c), nil
}

func (s *commissionService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCommissionRequest) (*dto.CommissionResponse, error) {
	c, err := s.commissions.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("commission not found: %w", err)
	}
	if c.Invoice != nil && c.Invoice.Status == model.StatusPaid {
		return nil, ErrInvoicePaid
	}

	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Amount != nil {
		c.CommissionDue = *req.Amount
	}
	if req.Taxable != nil {
		c.Taxable = *req.Taxable
	}
	if req.VATable != nil {
		c.VATable = *req.VATable
	}
	if req.FundID != nil {
		fundID, err := s.resolveFund(ctx, *req.FundID)
		if err != nil {
			return nil, err
		}
		c.FundID = fundID
		payment.ApproveCommission(c, time.Now())
	}

	if err := s.commissions.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update commission: %w", err)
	}
	return commissionToResponse(c), nil
}

func (s *commissionService) Get(ctx context.Context, id uuid.UUID) (*dto.CommissionResponse, error) {
	c, err := s.commissions.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("commission not found: %w", err)
	}
	return commissionToResponse(c), nil
}

func (s *commissionService) List(ctx context.Context) ([]dto.CommissionResponse, error) {
	commissions, err := s.commissions.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CommissionResponse, 0, len(commissions))
	for i := range commissions {
		out = append(out, *commissionToResponse(&commissions[i]))
	}
	return out, nil
}

// resolveFund accepts a fund id and verifies it exists.
func (s *commissionService) resolveFund(ctx context.Context, raw string) (*uuid.UUID, error) {
	fundID, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("bad fund id: %w", err)
	}
	if _, err := s.funds.FindByID(ctx, fundID); err != nil {
		return nil, fmt.Errorf("fund not found: %w", err)
	}
	return &fundID, nil
}

func commissionToResponse(c *model.Commission) *dto.CommissionResponse {
	resp := &dto.CommissionResponse{
		ID:          c.ID.String(),
		Description: c.Description,
		Amount:      c.CommissionDue,
		Taxable:     c.Taxable,
		VATable:     c.VATable,

		SysGenerated:         c.SysGenerated,
		DateGenerated:        formatTime(c.DateGenerated),
		DateApproved:         formatTime(c.DateApproved),
		DateNotifiedApproved: formatTime(c.DateNotifiedApproved),
	}
	if c.InvoiceID != nil {
		s := c.InvoiceID.String()
		resp.InvoiceID = &s
	}
	if c.AuthorID != nil {
		s := c.AuthorID.String()
		resp.AuthorID = &s
	}
	if c.ArticleID != nil {
		s := c.ArticleID.String()
		resp.ArticleID = &s
	}
	if c.Article != nil {
		resp.Article = &c.Article.Title
	}
	if c.Fund != nil {
		resp.Fund = &c.Fund.Name
	}
	return resp
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
