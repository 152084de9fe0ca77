package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sjwaight/gu/internal/model"
)

type CommissionRepository interface {
	Create(ctx context.Context, c *model.Commission) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Commission, error)
	Update(ctx context.Context, c *model.Commission) error
	List(ctx context.Context) ([]model.Commission, error)
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]model.Commission, error)
	// ListApprovedUnbilled returns fund-approved commissions not yet attached
	// to an invoice, author preloaded.
	ListApprovedUnbilled(ctx context.Context) ([]model.Commission, error)
	// ListUnnotifiedApproved returns fund-approved commissions whose author
	// has not been emailed yet, author and article preloaded.
	ListUnnotifiedApproved(ctx context.Context) ([]model.Commission, error)
	ExistsForArticle(ctx context.Context, articleID uuid.UUID) (bool, error)
}

type commissionRepo struct{ db *gorm.DB }

func NewCommissionRepository(db *gorm.DB) CommissionRepository { return &commissionRepo{db: db} }

func (r *commissionRepo) Create(ctx context.Context, c *model.Commission) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *commissionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Commission, error) {
	var c model.Commission
	err := r.db.WithContext(ctx).
		Preload("Author").Preload("Article").Preload("Fund").Preload("Invoice").
		First(&c, id).Error
	return &c, err
}

func (r *commissionRepo) Update(ctx context.Context, c *model.Commission) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error
}

func (r *commissionRepo) List(ctx context.Context) ([]model.Commission, error) {
	var commissions []model.Commission
	err := r.db.WithContext(ctx).
		Preload("Author").Preload("Article").Preload("Fund").
		Order("created_at").
		Find(&commissions).Error
	return commissions, err
}

func (r *commissionRepo) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]model.Commission, error) {
	var commissions []model.Commission
	err := r.db.WithContext(ctx).
		Preload("Article").Preload("Fund").
		Where("invoice_id = ?", invoiceID).
		Order("created_at").
		Find(&commissions).Error
	return commissions, err
}

func (r *commissionRepo) ListApprovedUnbilled(ctx context.Context) ([]model.Commission, error) {
	var commissions []model.Commission
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("fund_id IS NOT NULL AND invoice_id IS NULL").
		Order("created_at").
		Find(&commissions).Error
	return commissions, err
}

func (r *commissionRepo) ListUnnotifiedApproved(ctx context.Context) ([]model.Commission, error) {
	var commissions []model.Commission
	err := r.db.WithContext(ctx).
		Preload("Author").Preload("Article").Preload("Invoice.Author").
		Where("fund_id IS NOT NULL AND date_notified_approved IS NULL").
		Order("created_at").
		Find(&commissions).Error
	return commissions, err
}

func (r *commissionRepo) ExistsForArticle(ctx context.Context, articleID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Commission{}).
		Where("article_id = ?", articleID).
		Count(&count).Error
	return count > 0, err
}
