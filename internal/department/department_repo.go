package department

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, d *Department) error
	FindAll(ctx context.Context) ([]Department, error)
	FindByID(ctx context.Context, id string) (*Department, error)
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

func (r *repository) Create(ctx context.Context, d *Department) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Department, error) {
	var depts []Department
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&depts).Error
	return depts, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Department, error) {
	var d Department
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	return &d, err
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Department{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
