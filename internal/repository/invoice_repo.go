package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sjwaight/gu/internal/dto"
	"github.com/sjwaight/gu/internal/model"
	"github.com/sjwaight/gu/internal/payment"
)

type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	Update(ctx context.Context, inv *model.Invoice) error
	List(ctx context.Context, filter dto.InvoiceFilter) ([]model.Invoice, int64, error)
	// FindOpenByAuthor returns the author's Unpaid invoice still accepting
	// commissions, or gorm.ErrRecordNotFound.
	FindOpenByAuthor(ctx context.Context, authorID uuid.UUID) (*model.Invoice, error)
	// CreateForAuthor allocates the author's next invoice number and persists
	// a new invoice snapshotting the author's banking/tax details.
	CreateForAuthor(ctx context.Context, author *model.Author) (*model.Invoice, error)
	// ListPaidUnnotified returns Paid invoices whose author has not received
	// the payment email, author preloaded.
	ListPaidUnnotified(ctx context.Context) ([]model.Invoice, error)
}

type invoiceRepo struct{ db *gorm.DB }

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository { return &invoiceRepo{db: db} }

func (r *invoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.db.WithContext(ctx).
		Preload("Author").Preload("Commissions").
		First(&inv, id).Error
	return &inv, err
}

func (r *invoiceRepo) Update(ctx context.Context, inv *model.Invoice) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(inv).Error
}

func (r *invoiceRepo) List(ctx context.Context, filter dto.InvoiceFilter) ([]model.Invoice, int64, error) {
	var invoices []model.Invoice
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Invoice{})
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.AuthorID != "" {
		q = q.Where("author_id = ?", filter.AuthorID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Author").
		Order("status DESC, updated_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&invoices).Error
	return invoices, total, err
}

func (r *invoiceRepo) FindOpenByAuthor(ctx context.Context, authorID uuid.UUID) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.db.WithContext(ctx).
		Where("author_id = ? AND status = ?", authorID, model.StatusUnpaid).
		Order("invoice_num DESC").
		First(&inv).Error
	return &inv, err
}

// CreateForAuthor computes max(invoice_num)+1 for the author and inserts the
// snapshot. The read-then-write is serialized by locking the author row for
// the duration of the transaction; the composite unique index on
// (author_id, invoice_num) turns any remaining race into a constraint error
// rather than a duplicate number.
func (r *invoiceRepo) CreateForAuthor(ctx context.Context, author *model.Author) (*model.Invoice, error) {
	var created *model.Invoice
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lockID uuid.UUID
		if err := tx.Raw("SELECT id FROM authors WHERE id = ? FOR UPDATE", author.ID).
			Scan(&lockID).Error; err != nil {
			return err
		}
		if lockID == uuid.Nil {
			return errors.New("author not found")
		}

		var maxNum int
		if err := tx.Raw(
			"SELECT COALESCE(MAX(invoice_num), 0) FROM invoices WHERE author_id = ?",
			author.ID).Scan(&maxNum).Error; err != nil {
			return err
		}

		created = payment.NewInvoice(author, maxNum+1)
		return tx.Create(created).Error
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *invoiceRepo) ListPaidUnnotified(ctx context.Context) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("status = ? AND date_notified_payment IS NULL", model.StatusPaid).
		Order("updated_at").
		Find(&invoices).Error
	return invoices, err
}
