package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sjwaight/gu/internal/dto"
	"github.com/sjwaight/gu/internal/model"
)

type ArticleRepository interface {
	Create(ctx context.Context, a *model.Article) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Article, error)
	FindBySlug(ctx context.Context, slug string) (*model.Article, error)
	Update(ctx context.Context, a *model.Article) error
	List(ctx context.Context, filter dto.ArticleFilter) ([]model.Article, int64, error)
	// ListAwaitingCommissions returns published articles whose commissions
	// have not been generated yet, with author slots preloaded.
	ListAwaitingCommissions(ctx context.Context, now time.Time) ([]model.Article, error)
	MarkCommissionsProcessed(ctx context.Context, id uuid.UUID) error
	ClearStickiness(ctx context.Context) error
}

type articleRepo struct{ db *gorm.DB }

func NewArticleRepository(db *gorm.DB) ArticleRepository { return &articleRepo{db: db} }

func (r *articleRepo) preload(q *gorm.DB) *gorm.DB {
	return q.Preload("Author01").Preload("Author02").Preload("Author03").
		Preload("Author04").Preload("Author05").
		Preload("Category").Preload("Region").Preload("Topics")
}

func (r *articleRepo) Create(ctx context.Context, a *model.Article) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(a).Association("Topics").Replace(a.Topics)
}

func (r *articleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	var a model.Article
	err := r.preload(r.db.WithContext(ctx)).First(&a, id).Error
	return &a, err
}

func (r *articleRepo) FindBySlug(ctx context.Context, slug string) (*model.Article, error) {
	var a model.Article
	err := r.preload(r.db.WithContext(ctx)).Where("slug = ?", slug).First(&a).Error
	return &a, err
}

func (r *articleRepo) Update(ctx context.Context, a *model.Article) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(a).Error
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(a).Association("Topics").Replace(a.Topics)
}

func (r *articleRepo) List(ctx context.Context, filter dto.ArticleFilter) ([]model.Article, int64, error) {
	var articles []model.Article
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Article{})
	if filter.PublishedOnly {
		q = q.Where("published IS NOT NULL AND published <= ?", time.Now())
	}
	if !filter.IncludeExcluded {
		q = q.Where("exclude_from_list_views = false")
	}
	if filter.CategorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = articles.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.preload(q).
		Order("stickiness DESC, published DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&articles).Error
	return articles, total, err
}

func (r *articleRepo) ListAwaitingCommissions(ctx context.Context, now time.Time) ([]model.Article, error) {
	var articles []model.Article
	err := r.db.WithContext(ctx).
		Preload("Author01").Preload("Author02").Preload("Author03").
		Preload("Author04").Preload("Author05").
		Where("published IS NOT NULL AND published <= ?", now).
		Where("commissions_processed = false").
		Order("published").
		Find(&articles).Error
	return articles, err
}

func (r *articleRepo) MarkCommissionsProcessed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Article{}).
		Where("id = ?", id).
		Update("commissions_processed", true).Error
}

// ClearStickiness resets every sticky article; used before promoting a new
// top story.
func (r *articleRepo) ClearStickiness(ctx context.Context) error {
	return r.db.WithContext(ctx).Model(&model.Article{}).
		Where("stickiness > 0").
		Update("stickiness", 0).Error
}
