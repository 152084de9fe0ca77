package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sjwaight/gu/internal/dto"
	"github.com/sjwaight/gu/internal/model"
	"github.com/sjwaight/gu/internal/repository"
	"github.com/sjwaight/gu/internal/worker"
)

type AuthorService interface {
	Create(ctx context.Context, req dto.CreateAuthorRequest) (*dto.AuthorResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateAuthorRequest) (*dto.AuthorResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.AuthorResponse, error)
	List(ctx context.Context, freelancersOnly bool) ([]dto.AuthorResponse, error)
}

type authorService struct {
	authors    repository.AuthorRepository
	dispatcher *worker.Dispatcher
	siteName   string
}

func NewAuthorService(authors repository.AuthorRepository, dispatcher *worker.Dispatcher, siteName string) AuthorService {
	return &authorService{authors: authors, dispatcher: dispatcher, siteName: siteName}
}

func (s *authorService) Create(ctx context.Context, req dto.CreateAuthorRequest) (*dto.AuthorResponse, error) {
	a := &model.Author{ID: uuid.New()}
	if err := applyAuthor(a, req); err != nil {
		return nil, err
	}
	if err := s.authors.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}

	if a.Email != "" && s.dispatcher != nil {
		payload := worker.EmailJobPayload{
			To:      []string{a.Email},
			Subject: fmt.Sprintf("Welcome to %s", s.siteName),
			Body: fmt.Sprintf("Dear %s,\n\nA contributor account has been created for you at %s.\n",
				a.FullName(), s.siteName),
		}
		if err := s.dispatcher.EnqueueEmail(ctx, payload); err != nil {
			log.Error().Err(err).Str("author_id", a.ID.String()).Msg("failed to enqueue welcome email")
		}
	}

	return authorToResponse(a), nil
}

func (s *authorService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateAuthorRequest) (*dto.AuthorResponse, error) {
	a, err := s.authors.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("author not found: %w", err)
	}
	if err := applyAuthor(a, req); err != nil {
		return nil, err
	}
	if err := s.authors.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("update author: %w", err)
	}
	return authorToResponse(a), nil
}

func (s *authorService) Get(ctx context.Context, id uuid.UUID) (*dto.AuthorResponse, error) {
	a, err := s.authors.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("author not found: %w", err)
	}
	return authorToResponse(a), nil
}

func (s *authorService) List(ctx context.Context, freelancersOnly bool) ([]dto.AuthorResponse, error) {
	authors, err := s.authors.List(ctx, freelancersOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AuthorResponse, 0, len(authors))
	for i := range authors {
		out = append(out, *authorToResponse(&authors[i]))
	}
	return out, nil
}

func applyAuthor(a *model.Author, req dto.CreateAuthorRequest) error {
	a.FirstNames = req.FirstNames
	a.LastName = req.LastName
	a.Title = req.Title
	a.Email = req.Email
	a.Freelancer = req.Freelancer
	a.Telephone = req.Telephone
	a.Cell = req.Cell

	a.Identification = req.Identification
	a.Address = req.Address
	a.BankName = req.BankName
	a.BankAccountNumber = req.BankAccountNumber
	if req.BankAccountType != "" {
		a.BankAccountType = req.BankAccountType
	}
	a.BankBranchName = req.BankBranchName
	a.BankBranchCode = req.BankBranchCode
	a.SwiftCode = req.SwiftCode
	a.IBAN = req.IBAN
	a.TaxNumber = req.TaxNumber

	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return fmt.Errorf("bad date of birth: %w", err)
		}
		a.DateOfBirth = &dob
	}
	if req.TaxPercent != nil {
		a.TaxPercent = *req.TaxPercent
	}
	if req.VATPercent != nil {
		a.VATPercent = *req.VATPercent
	}
	return nil
}

func authorToResponse(a *model.Author) *dto.AuthorResponse {
	resp := &dto.AuthorResponse{
		ID:         a.ID.String(),
		FirstNames: a.FirstNames,
		LastName:   a.LastName,
		FullName:   a.FullName(),
		Freelancer: a.Freelancer,
		TaxPercent: a.TaxPercent,
		VATPercent: a.VATPercent,
	}
	if !a.EmailIsPrivate {
		resp.Email = a.Email
	}
	return resp
}
