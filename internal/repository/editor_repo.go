package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sjwaight/gu/internal/model"
)

type EditorRepository interface {
	Create(ctx context.Context, e *model.Editor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Editor, error)
	FindByUsername(ctx context.Context, username string) (*model.Editor, error)
	List(ctx context.Context, includeInactive bool) ([]model.Editor, error)
	Update(ctx context.Context, e *model.Editor) error
}

type editorRepo struct{ db *gorm.DB }

func NewEditorRepository(db *gorm.DB) EditorRepository { return &editorRepo{db: db} }

func (r *editorRepo) Create(ctx context.Context, e *model.Editor) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *editorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Editor, error) {
	var e model.Editor
	err := r.db.WithContext(ctx).First(&e, id).Error
	return &e, err
}

func (r *editorRepo) FindByUsername(ctx context.Context, username string) (*model.Editor, error) {
	var e model.Editor
	err := r.db.WithContext(ctx).Where("username = ? AND active = true", username).First(&e).Error
	return &e, err
}

func (r *editorRepo) List(ctx context.Context, includeInactive bool) ([]model.Editor, error) {
	var editors []model.Editor
	q := r.db.WithContext(ctx).Order("username")
	if !includeInactive {
		q = q.Where("active = true")
	}
	err := q.Find(&editors).Error
	return editors, err
}

func (r *editorRepo) Update(ctx context.Context, e *model.Editor) error {
	return r.db.WithContext(ctx).Save(e).Error
}
