package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sjwaight/gu/internal/model"
)

type AuthorRepository interface {
	Create(ctx context.Context, a *model.Author) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	FindByName(ctx context.Context, firstNames, lastName string) (*model.Author, error)
	List(ctx context.Context, freelancersOnly bool) ([]model.Author, error)
	Update(ctx context.Context, a *model.Author) error
}

type authorRepo struct{ db *gorm.DB }

func NewAuthorRepository(db *gorm.DB) AuthorRepository { return &authorRepo{db: db} }

func (r *authorRepo) Create(ctx context.Context, a *model.Author) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *authorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	var a model.Author
	err := r.db.WithContext(ctx).First(&a, id).Error
	return &a, err
}

func (r *authorRepo) FindByName(ctx context.Context, firstNames, lastName string) (*model.Author, error) {
	var a model.Author
	err := r.db.WithContext(ctx).
		Where("first_names = ? AND last_name = ?", firstNames, lastName).
		First(&a).Error
	return &a, err
}

func (r *authorRepo) List(ctx context.Context, freelancersOnly bool) ([]model.Author, error) {
	var authors []model.Author
	q := r.db.WithContext(ctx).Order("last_name, first_names")
	if freelancersOnly {
		q = q.Where("freelancer = true")
	}
	err := q.Find(&authors).Error
	return authors, err
}

func (r *authorRepo) Update(ctx context.Context, a *model.Author) error {
	return r.db.WithContext(ctx).Save(a).Error
}
