package leave

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindByFilter(ctx context.Context, f Filter) ([]Leave, error)
	FindByID(ctx context.Context, id string) (*Leave, error)
	Update(ctx context.Context, l *Leave) error
	Delete(ctx context.Context, id string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	db := r.db.Session(&gorm.Session{NewDB: true})
	db.Statement.ConnPool = tx
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByFilter(ctx context.Context, f Filter) ([]Leave, error) {
	q := r.db.WithContext(ctx).Model(&Leave{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.EmployeeID != "" {
		q = q.Where("employee_id = ?", f.EmployeeID)
	}

	var leaves []Leave
	err := q.Order("applied_date DESC").Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Leave{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
