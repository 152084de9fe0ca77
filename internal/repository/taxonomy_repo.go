package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sjwaight/gu/internal/model"
)

// Topic, Category and Region are plain name+slug lookups; they share the same
// small CRUD shape.

type TopicRepository interface {
	Create(ctx context.Context, t *model.Topic) error
	FindBySlug(ctx context.Context, slug string) (*model.Topic, error)
	List(ctx context.Context) ([]model.Topic, error)
	Update(ctx context.Context, t *model.Topic) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type topicRepo struct{ db *gorm.DB }

func NewTopicRepository(db *gorm.DB) TopicRepository { return &topicRepo{db: db} }

func (r *topicRepo) Create(ctx context.Context, t *model.Topic) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *topicRepo) FindBySlug(ctx context.Context, slug string) (*model.Topic, error) {
	var t model.Topic
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&t).Error
	return &t, err
}

func (r *topicRepo) List(ctx context.Context) ([]model.Topic, error) {
	var topics []model.Topic
	err := r.db.WithContext(ctx).Order("name").Find(&topics).Error
	return topics, err
}

func (r *topicRepo) Update(ctx context.Context, t *model.Topic) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *topicRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Topic{}, id).Error
}

type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
	FindByName(ctx context.Context, name string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, c *model.Category) error
}

type categoryRepo struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) CategoryRepository { return &categoryRepo{db: db} }

func (r *categoryRepo) Create(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepo) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error
	return &c, err
}

func (r *categoryRepo) FindByName(ctx context.Context, name string) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&c).Error
	return &c, err
}

func (r *categoryRepo) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).Order("name").Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) Update(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Save(c).Error
}

type RegionRepository interface {
	Create(ctx context.Context, reg *model.Region) error
	List(ctx context.Context) ([]model.Region, error)
	// Descendants returns regions named "<parent>/..." under the given region.
	Descendants(ctx context.Context, name string) ([]model.Region, error)
	Update(ctx context.Context, reg *model.Region) error
}

type regionRepo struct{ db *gorm.DB }

func NewRegionRepository(db *gorm.DB) RegionRepository { return &regionRepo{db: db} }

func (r *regionRepo) Create(ctx context.Context, reg *model.Region) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *regionRepo) List(ctx context.Context) ([]model.Region, error) {
	var regions []model.Region
	err := r.db.WithContext(ctx).Order("name").Find(&regions).Error
	return regions, err
}

func (r *regionRepo) Descendants(ctx context.Context, name string) ([]model.Region, error) {
	var regions []model.Region
	err := r.db.WithContext(ctx).
		Where("name LIKE ?", name+"/%").
		Order("name").Find(&regions).Error
	return regions, err
}

func (r *regionRepo) Update(ctx context.Context, reg *model.Region) error {
	return r.db.WithContext(ctx).Save(reg).Error
}
