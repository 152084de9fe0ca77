package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sjwaight/gu/internal/dto"
	"github.com/sjwaight/gu/internal/model"
	"github.com/sjwaight/gu/internal/repository"
)

// TaxonomyService covers the small name+slug lookups articles hang off:
// topics, categories and regions, plus the payment funds.
type TaxonomyService interface {
	CreateTopic(ctx context.Context, req dto.CreateTaxonomyRequest) (*dto.TaxonomyResponse, error)
	ListTopics(ctx context.Context) ([]dto.TaxonomyResponse, error)
	CreateCategory(ctx context.Context, req dto.CreateTaxonomyRequest) (*dto.TaxonomyResponse, error)
	ListCategories(ctx context.Context) ([]dto.TaxonomyResponse, error)
	CreateRegion(ctx context.Context, req dto.CreateTaxonomyRequest) (*dto.TaxonomyResponse, error)
	ListRegions(ctx context.Context) ([]dto.TaxonomyResponse, error)
	CreateFund(ctx context.Context, req dto.CreateFundRequest) (*dto.FundResponse, error)
	ListFunds(ctx context.Context) ([]dto.FundResponse, error)
}

type taxonomyService struct {
	topics     repository.TopicRepository
	categories repository.CategoryRepository
	regions    repository.RegionRepository
	funds      repository.FundRepository
}

func NewTaxonomyService(
	topics repository.TopicRepository,
	categories repository.CategoryRepository,
	regions repository.RegionRepository,
	funds repository.FundRepository,
) TaxonomyService {
	return &taxonomyService{topics: topics, categories: categories, regions: regions, funds: funds}
}

func (s *taxonomyService) CreateTopic(ctx context.Context, req dto.CreateTaxonomyRequest) (*dto.TaxonomyResponse, error) {
	t := &model.Topic{ID: uuid.New(), Name: req.Name, Slug: req.Slug, Introduction: req.Introduction}
	if err := s.topics.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create topic: %w", err)
	}
	return &dto.TaxonomyResponse{ID: t.ID.String(), Name: t.Name, Slug: t.Slug, Introduction: t.Introduction}, nil
}

func (s *taxonomyService) ListTopics(ctx context.Context) ([]dto.TaxonomyResponse, error) {
	topics, err := s.topics.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaxonomyResponse, len(topics))
	for i, t := range topics {
		out[i] = dto.TaxonomyResponse{ID: t.ID.String(), Name: t.Name, Slug: t.Slug, Introduction: t.Introduction}
	}
	return out, nil
}

func (s *taxonomyService) CreateCategory(ctx context.Context, req dto.CreateTaxonomyRequest) (*dto.TaxonomyResponse, error) {
	c := &model.Category{ID: uuid.New(), Name: req.Name, Slug: req.Slug}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &dto.TaxonomyResponse{ID: c.ID.String(), Name: c.Name, Slug: c.Slug}, nil
}

func (s *taxonomyService) ListCategories(ctx context.Context) ([]dto.TaxonomyResponse, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaxonomyResponse, len(categories))
	for i, c := range categories {
		out[i] = dto.TaxonomyResponse{ID: c.ID.String(), Name: c.Name, Slug: c.Slug}
	}
	return out, nil
}

func (s *taxonomyService) CreateRegion(ctx context.Context, req dto.CreateTaxonomyRequest) (*dto.TaxonomyResponse, error) {
	r := &model.Region{ID: uuid.New(), Name: req.Name, Slug: req.Slug}
	if err := s.regions.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("create region: %w", err)
	}
	return &dto.TaxonomyResponse{ID: r.ID.String(), Name: r.Name, Slug: r.Slug}, nil
}

func (s *taxonomyService) ListRegions(ctx context.Context) ([]dto.TaxonomyResponse, error) {
	regions, err := s.regions.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaxonomyResponse, len(regions))
	for i, r := range regions {
		out[i] = dto.TaxonomyResponse{ID: r.ID.String(), Name: r.Name, Slug: r.Slug}
	}
	return out, nil
}

func (s *taxonomyService) CreateFund(ctx context.Context, req dto.CreateFundRequest) (*dto.FundResponse, error) {
	f := &model.Fund{ID: uuid.New(), Name: req.Name}
	if err := s.funds.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("create fund: %w", err)
	}
	return &dto.FundResponse{ID: f.ID.String(), Name: f.Name}, nil
}

func (s *taxonomyService) ListFunds(ctx context.Context) ([]dto.FundResponse, error) {
	funds, err := s.funds.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FundResponse, len(funds))
	for i, f := range funds {
		out[i] = dto.FundResponse{ID: f.ID.String(), Name: f.Name}
	}
	return out, nil
}
