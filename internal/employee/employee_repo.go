package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	Search(ctx context.Context, query string, offset, limit int) ([]Employee, int64, error)
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByNameFold(ctx context.Context, name string) (*Employee, error)
	CountByDepartmentName(ctx context.Context, name string) (int64, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, id string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository onto an already-open transaction so
// writes join the caller's unit of work.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	db := r.db.Session(&gorm.Session{NewDB: true})
	db.Statement.ConnPool = tx
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

// Search is a case-insensitive substring match over name, email and
// department (OR semantics). Results are returned in creation order.
func (r *repository) Search(ctx context.Context, query string, offset, limit int) ([]Employee, int64, error) {
	q := r.db.WithContext(ctx).Model(&Employee{})
	if query != "" {
		pattern := "%" + query + "%"
		q = q.Where(
			"name ILIKE ? OR email ILIKE ? OR department ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var empls []Employee
	err := q.Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&empls).Error
	return empls, total, err
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) FindByNameFold(ctx context.Context, name string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Where("LOWER(TRIM(name)) = LOWER(TRIM(?))", name).
		First(&empl).Error
	return &empl, err
}

func (r *repository) CountByDepartmentName(ctx context.Context, name string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("LOWER(TRIM(department)) = LOWER(TRIM(?))", name).
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
