package employee

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"hr-platform/internal/shared/apperror"
	"hr-platform/internal/shared/response"

	employeeerrors "hr-platform/internal/employee/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn                func(tx *sql.Tx) Repository
	createFn                func(ctx context.Context, empl *Employee) error
	searchFn                func(ctx context.Context, query string, offset, limit int) ([]Employee, int64, error)
	findAllFn               func(ctx context.Context) ([]Employee, error)
	findByIDFn              func(ctx context.Context, id string) (*Employee, error)
	findByNameFoldFn        func(ctx context.Context, name string) (*Employee, error)
	countByDepartmentNameFn func(ctx context.Context, name string) (int64, error)
	updateFn                func(ctx context.Context, empl *Employee) error
	deleteFn                func(ctx context.Context, id string) (int64, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}
func (f *fakeRepo) Create(ctx context.Context, empl *Employee) error { return f.createFn(ctx, empl) }
func (f *fakeRepo) Search(ctx context.Context, query string, offset, limit int) ([]Employee, int64, error) {
	return f.searchFn(ctx, query, offset, limit)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]Employee, error) { return f.findAllFn(ctx) }
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Employee, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindByNameFold(ctx context.Context, name string) (*Employee, error) {
	return f.findByNameFoldFn(ctx, name)
}
func (f *fakeRepo) CountByDepartmentName(ctx context.Context, name string) (int64, error) {
	return f.countByDepartmentNameFn(ctx, name)
}
func (f *fakeRepo) Update(ctx context.Context, empl *Employee) error { return f.updateFn(ctx, empl) }
func (f *fakeRepo) Delete(ctx context.Context, id string) (int64, error) {
	return f.deleteFn(ctx, id)
}

func validCreateRequest() CreateEmployeeRequest {
	return CreateEmployeeRequest{
		Name:       "Jane Smith",
		Email:      "jane.smith@example.com",
		Phone:      "+62 812 3456 789",
		Department: "Engineering",
		Salary:     "75000",
	}
}

func TestService_Create_DefaultsStatusActive(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	var saved Employee
	repo := &fakeRepo{
		createFn: func(ctx context.Context, empl *Employee) error {
			saved = *empl
			return nil
		},
	}

	svc := NewService(db, repo, nil, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Create(ctx, validCreateRequest())
	assert.NoError(t, err)
	assert.Equal(t, StatusActive, resp.Status)
	assert.Equal(t, StatusActive, saved.Status)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_CollectsAllViolations(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		createFn: func(ctx context.Context, empl *Employee) error {
			t.Fatal("create must not reach the repository on validation failure")
			return nil
		},
	}
	svc := NewService(db, repo, nil, nil)

	_, err := svc.Create(context.Background(), CreateEmployeeRequest{
		Name:   "J",
		Email:  "not-an-email",
		Phone:  "abc",
		Salary: "-1",
	})

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	fields, ok := appErr.Details.([]apperror.FieldError)
	assert.True(t, ok)
	// name, email, phone, department dan salary semuanya dilaporkan sekaligus
	assert.Len(t, fields, 5)
}

func TestValidateCreateRequest_OptionalFields(t *testing.T) {
	// phone dan salary opsional: kosong bukan pelanggaran
	fields := validateCreateRequest(CreateEmployeeRequest{
		Name:       "Jane Smith",
		Email:      "jane.smith@example.com",
		Department: "Engineering",
	})
	assert.Empty(t, fields)

	// tapi kalau diisi, tetap divalidasi
	fields = validateCreateRequest(CreateEmployeeRequest{
		Name:       "Jane Smith",
		Email:      "jane.smith@example.com",
		Department: "Engineering",
		Salary:     "-1",
	})
	assert.Len(t, fields, 1)
	assert.Equal(t, "salary", fields[0].Field)
}

func TestService_Create_DuplicateEmail(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		createFn: func(ctx context.Context, empl *Employee) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_email"}
		},
	}
	svc := NewService(db, repo, nil, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func seedEmployees(n int) []Employee {
	empls := make([]Employee, n)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range empls {
		empls[i] = Employee{
			ID:        uuid.New(),
			Name:      "Employee",
			Status:    StatusActive,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
	}
	return empls
}

func TestService_List_Pagination(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	all := seedEmployees(12)
	repo := &fakeRepo{
		searchFn: func(ctx context.Context, query string, offset, limit int) ([]Employee, int64, error) {
			if offset >= len(all) {
				return nil, int64(len(all)), nil
			}
			end := offset + limit
			if end > len(all) {
				end = len(all)
			}
			return all[offset:end], int64(len(all)), nil
		},
	}
	svc := NewService(db, repo, nil, nil)
	ctx := context.Background()

	page1, err := svc.List(ctx, ListEmployeesParams{Page: 1, PageSize: 5})
	assert.NoError(t, err)
	assert.Len(t, page1.Items, 5)

	page3, err := svc.List(ctx, ListEmployeesParams{Page: 3, PageSize: 5})
	assert.NoError(t, err)
	assert.Len(t, page3.Items, 2)

	// halaman melewati akhir data bukan error
	page4, err := svc.List(ctx, ListEmployeesParams{Page: 4, PageSize: 5})
	assert.NoError(t, err)
	assert.Empty(t, page4.Items)

	meta := response.NewPaginationMeta(page1.Total, 1, 5)
	assert.Equal(t, 3, meta.TotalPages)
}

func TestService_List_RejectsInvalidPage(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, nil, nil)

	_, err := svc.List(context.Background(), ListEmployeesParams{Page: 0, PageSize: 10})
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidPage)

	_, err = svc.List(context.Background(), ListEmployeesParams{Page: 1, PageSize: 0})
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidPageSize)
}

func TestService_Update_PartialKeepsServerFields(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	id := uuid.New()
	createdAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	existing := Employee{
		ID:         id,
		Name:       "Jane Smith",
		Email:      "jane.smith@example.com",
		Department: "Engineering",
		Salary:     "75000",
		Status:     StatusActive,
		CreatedAt:  createdAt,
	}

	var saved Employee
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, lookup string) (*Employee, error) {
			copy := existing
			return &copy, nil
		},
		updateFn: func(ctx context.Context, empl *Employee) error {
			saved = *empl
			return nil
		},
	}
	svc := NewService(db, repo, nil, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	newDept := "Platform"
	resp, err := svc.Update(context.Background(), id.String(), UpdateEmployeeRequest{Department: &newDept})
	assert.NoError(t, err)
	assert.Equal(t, "Platform", resp.Department)
	assert.Equal(t, "Jane Smith", saved.Name)
	assert.Equal(t, id, saved.ID)
	assert.Equal(t, createdAt, saved.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Delete_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		deleteFn: func(ctx context.Context, id string) (int64, error) { return 0, nil },
	}
	svc := NewService(db, repo, nil, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := svc.Delete(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Resolve(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	known := Employee{ID: uuid.New(), Name: "John Doe", Status: StatusActive}

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Employee, error) {
			if id == known.ID.String() {
				copy := known
				return &copy, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		findByNameFoldFn: func(ctx context.Context, name string) (*Employee, error) {
			if name == "john doe" || name == "John Doe" {
				copy := known
				return &copy, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(db, repo, nil, nil)
	ctx := context.Background()

	t.Run("by id", func(t *testing.T) {
		resolved, err := svc.Resolve(ctx, known.ID.String())
		assert.NoError(t, err)
		assert.NotNil(t, resolved)
		assert.Equal(t, known.ID.String(), resolved.ID)
	})

	t.Run("by folded name", func(t *testing.T) {
		resolved, err := svc.Resolve(ctx, "john doe")
		assert.NoError(t, err)
		assert.NotNil(t, resolved)
		assert.Equal(t, "John Doe", resolved.Name)
	})

	t.Run("no match is not an error", func(t *testing.T) {
		resolved, err := svc.Resolve(ctx, "nobody here")
		assert.NoError(t, err)
		assert.Nil(t, resolved)
	})

	t.Run("storage failure propagates", func(t *testing.T) {
		broken := &fakeRepo{
			findByNameFoldFn: func(ctx context.Context, name string) (*Employee, error) {
				return nil, errors.New("connection reset")
			},
		}
		svcBroken := NewService(db, broken, nil, nil)
		_, err := svcBroken.Resolve(ctx, "anyone")
		assert.Error(t, err)
	})
}
