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
)

type ArticleService interface {
	Create(ctx context.Context, req dto.CreateArticleRequest) (*dto.ArticleResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateArticleRequest) (*dto.ArticleResponse, error)
	GetBySlug(ctx context.Context, slug string) (*dto.ArticleResponse, error)
	List(ctx context.Context, filter dto.ArticleFilter) (*dto.ArticleListResponse, error)
	PublishNow(ctx context.Context, id uuid.UUID) (*dto.ArticleResponse, error)
	MakeTopStory(ctx context.Context, id uuid.UUID) error
}

type articleService struct {
	articles repository.ArticleRepository
	authors  repository.AuthorRepository
}

func NewArticleService(articles repository.ArticleRepository, authors repository.AuthorRepository) ArticleService {
	return &articleService{articles: articles, authors: authors}
}

func (s *articleService) Create(ctx context.Context, req dto.CreateArticleRequest) (*dto.ArticleResponse, error) {
	a := &model.Article{
		ID:                  uuid.New(),
		OverrideCommissions: model.OverrideCommissionsNo,
	}
	if err := s.apply(ctx, a, req); err != nil {
		return nil, err
	}
	if err := s.articles.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return articleToResponse(a), nil
}

func (s *articleService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateArticleRequest) (*dto.ArticleResponse, error) {
	a, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("article not found: %w", err)
	}
	if err := s.apply(ctx, a, req); err != nil {
		return nil, err
	}
	if err := s.articles.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	return articleToResponse(a), nil
}

// apply copies the request onto the model, loads the author slots and
// recomputes the derived fields. Every write path funnels through here so the
// cached projections can never go stale.
func (s *articleService) apply(ctx context.Context, a *model.Article, req dto.CreateArticleRequest) error {
	a.Title = req.Title
	a.Subtitle = req.Subtitle
	a.Slug = req.Slug
	a.SummaryText = req.SummaryText
	a.Body = req.Body
	a.Byline = req.Byline
	a.AuthorPayment = req.AuthorPayment
	if req.OverrideCommissions != "" {
		a.OverrideCommissions = req.OverrideCommissions
	}
	if req.IncludeInRSS != nil {
		a.IncludeInRSS = *req.IncludeInRSS
	}
	if req.ExcludeFromListViews != nil {
		a.ExcludeFromListViews = *req.ExcludeFromListViews
	}
	if req.Recommended != nil {
		a.Recommended = *req.Recommended
	}
	a.FacebookWaitTime = req.FacebookWaitTime
	a.FacebookImage = req.FacebookImage
	a.FacebookImageCaption = req.FacebookImageCaption
	a.FacebookDescription = req.FacebookDescription
	a.FacebookMessage = req.FacebookMessage

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return fmt.Errorf("bad category id: %w", err)
	}
	a.CategoryID = categoryID
	if req.RegionID != nil {
		regionID, err := uuid.Parse(*req.RegionID)
		if err != nil {
			return fmt.Errorf("bad region id: %w", err)
		}
		a.RegionID = &regionID
	} else {
		a.RegionID = nil
	}
	if req.MainTopicID != nil {
		topicID, err := uuid.Parse(*req.MainTopicID)
		if err != nil {
			return fmt.Errorf("bad main topic id: %w", err)
		}
		a.MainTopicID = &topicID
	} else {
		a.MainTopicID = nil
	}

	a.Topics = a.Topics[:0]
	for _, raw := range req.TopicIDs {
		topicID, err := uuid.Parse(raw)
		if err != nil {
			return fmt.Errorf("bad topic id %q: %w", raw, err)
		}
		a.Topics = append(a.Topics, model.Topic{ID: topicID})
	}

	if err := s.fillAuthorSlots(ctx, a, req.AuthorIDs); err != nil {
		return err
	}

	s.recomputeDerived(a)
	a.Version++
	return nil
}

func (s *articleService) fillAuthorSlots(ctx context.Context, a *model.Article, authorIDs []string) error {
	slotIDs := []**uuid.UUID{&a.Author01ID, &a.Author02ID, &a.Author03ID, &a.Author04ID, &a.Author05ID}
	slots := []**model.Author{&a.Author01, &a.Author02, &a.Author03, &a.Author04, &a.Author05}
	for i := range slotIDs {
		*slotIDs[i] = nil
		*slots[i] = nil
	}
	if len(authorIDs) > len(slotIDs) {
		return fmt.Errorf("at most %d authors per article", len(slotIDs))
	}
	for i, raw := range authorIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fmt.Errorf("bad author id %q: %w", raw, err)
		}
		author, err := s.authors.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("author %s: %w", id, err)
		}
		*slotIDs[i] = &author.ID
		*slots[i] = author
	}
	return nil
}

// recomputeDerived refreshes the cached projections. A failure in any single
// projection defaults that field to empty rather than failing the save.
func (s *articleService) recomputeDerived(a *model.Article) {
	a.CachedByline = safeProjection(func() string { return calcByline(a, true) })
	a.CachedBylineNoLinks = safeProjection(func() string { return calcByline(a, false) })
	a.CachedSummaryText = safeProjection(func() string { return calcSummaryText(a) })
}

func safeProjection(f func() string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("panic", r).Msg("derived field computation failed, defaulting to empty")
			out = ""
		}
	}()
	return f()
}

func (s *articleService) GetBySlug(ctx context.Context, slug string) (*dto.ArticleResponse, error) {
	a, err := s.articles.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("article %q not found", slug)
	}
	return articleToResponse(a), nil
}

func (s *articleService) List(ctx context.Context, filter dto.ArticleFilter) (*dto.ArticleListResponse, error) {
	articles, total, err := s.articles.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.ArticleListResponse{
		Data:  make([]dto.ArticleResponse, 0, len(articles)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range articles {
		resp.Data = append(resp.Data, *articleToResponse(&articles[i]))
	}
	return resp, nil
}

func (s *articleService) PublishNow(ctx context.Context, id uuid.UUID) (*dto.ArticleResponse, error) {
	a, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("article not found: %w", err)
	}
	now := time.Now()
	if !a.IsPublished(now) {
		a.Published = &now
		s.recomputeDerived(a)
		a.Version++
		if err := s.articles.Update(ctx, a); err != nil {
			return nil, fmt.Errorf("publish article: %w", err)
		}
	}
	return articleToResponse(a), nil
}

// MakeTopStory pins one article to the top of list views by resetting every
// other sticky article.
func (s *articleService) MakeTopStory(ctx context.Context, id uuid.UUID) error {
	a, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("article not found: %w", err)
	}
	if err := s.articles.ClearStickiness(ctx); err != nil {
		return err
	}
	a.Stickiness = 1
	return s.articles.Update(ctx, a)
}

// ── helpers ──────────────────────────────────────────────────────────────────

func articleToResponse(a *model.Article) *dto.ArticleResponse {
	resp := &dto.ArticleResponse{
		ID:                   a.ID.String(),
		Title:                a.Title,
		Subtitle:             a.Subtitle,
		Slug:                 a.Slug,
		Byline:               a.Byline,
		CachedByline:         a.CachedByline,
		CachedBylineNoLinks:  a.CachedBylineNoLinks,
		SummaryText:          a.SummaryText,
		CachedSummaryText:    a.CachedSummaryText,
		Body:                 a.Body,
		Stickiness:           a.Stickiness,
		Version:              a.Version,
		AuthorPayment:        a.AuthorPayment,
		OverrideCommissions:  a.OverrideCommissions,
		CommissionsProcessed: a.CommissionsProcessed,
	}
	if a.Published != nil {
		s := a.Published.Format(time.RFC3339)
		resp.Published = &s
	}
	if a.Category != nil {
		resp.Category = a.Category.Name
	}
	if a.Region != nil {
		resp.Region = &a.Region.Name
	}
	for _, t := range a.Topics {
		resp.Topics = append(resp.Topics, t.Name)
	}
	for _, au := range a.AuthorSlots() {
		resp.Authors = append(resp.Authors, au.FullName())
	}
	return resp
}
