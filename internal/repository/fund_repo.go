package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sjwaight/gu/internal/model"
)

type FundRepository interface {
	Create(ctx context.Context, f *model.Fund) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Fund, error)
	FindByName(ctx context.Context, name string) (*model.Fund, error)
	List(ctx context.Context) ([]model.Fund, error)
}

type fundRepo struct{ db *gorm.DB }

func NewFundRepository(db *gorm.DB) FundRepository { return &fundRepo{db: db} }

func (r *fundRepo) Create(ctx context.Context, f *model.Fund) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *fundRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Fund, error) {
	var f model.Fund
	err := r.db.WithContext(ctx).First(&f, id).Error
	return &f, err
}

func (r *fundRepo) FindByName(ctx context.Context, name string) (*model.Fund, error) {
	var f model.Fund
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&f).Error
	return &f, err
}

func (r *fundRepo) List(ctx context.Context) ([]model.Fund, error) {
	var funds []model.Fund
	err := r.db.WithContext(ctx).Order("name").Find(&funds).Error
	return funds, err
}
