package leave

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"hr-platform/internal/employee"
	"hr-platform/internal/shared/apperror"

	leaveerrors "hr-platform/internal/leave/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn       func(ctx context.Context, l *Leave) error
	findByFilterFn func(ctx context.Context, f Filter) ([]Leave, error)
	findByIDFn     func(ctx context.Context, id string) (*Leave, error)
	updateFn       func(ctx context.Context, l *Leave) error
	deleteFn       func(ctx context.Context, id string) (int64, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, l *Leave) error {
	return f.createFn(ctx, l)
}
func (f *fakeRepo) FindByFilter(ctx context.Context, filter Filter) ([]Leave, error) {
	return f.findByFilterFn(ctx, filter)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Leave, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) Update(ctx context.Context, l *Leave) error { return f.updateFn(ctx, l) }
func (f *fakeRepo) Delete(ctx context.Context, id string) (int64, error) {
	return f.deleteFn(ctx, id)
}

type fakeEmployeeService struct {
	resolveFn   func(ctx context.Context, ref string) (*employee.EmployeeResponse, error)
	setStatusFn func(ctx context.Context, id, status string) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	panic("not used")
}
func (f *fakeEmployeeService) List(ctx context.Context, params employee.ListEmployeesParams) (employee.ListResult, error) {
	panic("not used")
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	panic("not used")
}
func (f *fakeEmployeeService) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	panic("not used")
}
func (f *fakeEmployeeService) Delete(ctx context.Context, id string) error { panic("not used") }
func (f *fakeEmployeeService) SetStatus(ctx context.Context, id, status string) error {
	return f.setStatusFn(ctx, id, status)
}
func (f *fakeEmployeeService) Resolve(ctx context.Context, ref string) (*employee.EmployeeResponse, error) {
	return f.resolveFn(ctx, ref)
}

func noResolve(ctx context.Context, ref string) (*employee.EmployeeResponse, error) {
	return nil, nil
}

func validApplyRequest() ApplyLeaveRequest {
	return ApplyLeaveRequest{
		EmployeeID: "John Doe",
		LeaveType:  TypeAnnual,
		StartDate:  "2024-01-01",
		EndDate:    "2024-01-05",
		Reason:     "Family trip",
	}
}

func TestService_Apply_ComputesInclusiveDays(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved Leave
	repo := &fakeRepo{
		createFn: func(ctx context.Context, l *Leave) error { saved = *l; return nil },
	}
	empls := &fakeEmployeeService{resolveFn: noResolve}
	svc := NewService(db, repo, empls, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Apply(context.Background(), validApplyRequest())
	assert.NoError(t, err)
	assert.Equal(t, 5, resp.Days)
	assert.Equal(t, StatusPending, saved.Status)
	assert.Nil(t, saved.EmployeeRef)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Apply_CollectsAllViolations(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		createFn: func(ctx context.Context, l *Leave) error {
			t.Fatal("apply must not persist on validation failure")
			return nil
		},
	}
	svc := NewService(db, repo, &fakeEmployeeService{resolveFn: noResolve}, nil)

	_, err := svc.Apply(context.Background(), ApplyLeaveRequest{
		LeaveType: "sabbatical",
		StartDate: "2024-01-10",
		EndDate:   "2024-01-05",
	})

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	fields, ok := appErr.Details.([]apperror.FieldError)
	assert.True(t, ok)
	// employeeId, leaveType, endDate sebelum startDate, reason
	assert.Len(t, fields, 4)
}

func TestService_Apply_StoresResolvedReference(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	knownID := uuid.New()
	var saved Leave
	repo := &fakeRepo{
		createFn: func(ctx context.Context, l *Leave) error { saved = *l; return nil },
	}
	empls := &fakeEmployeeService{
		resolveFn: func(ctx context.Context, ref string) (*employee.EmployeeResponse, error) {
			assert.Equal(t, "John Doe", ref)
			return &employee.EmployeeResponse{ID: knownID.String(), Name: "John Doe"}, nil
		},
	}
	svc := NewService(db, repo, empls, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err := svc.Apply(context.Background(), validApplyRequest())
	assert.NoError(t, err)
	assert.NotNil(t, saved.EmployeeRef)
	assert.Equal(t, knownID, *saved.EmployeeRef)
}

func TestService_SetStatus_ApprovalMarksEmployeeOnLeave(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	ref := uuid.New()
	stored := Leave{
		ID:          uuid.New(),
		EmployeeID:  "John Doe",
		EmployeeRef: &ref,
		LeaveType:   TypeAnnual,
		Status:      StatusPending,
		AppliedDate: time.Now().UTC(),
	}

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Leave, error) {
			l := stored
			return &l, nil
		},
		updateFn: func(ctx context.Context, l *Leave) error { return nil },
	}

	var statusCalls []string
	empls := &fakeEmployeeService{
		resolveFn: noResolve,
		setStatusFn: func(ctx context.Context, id, status string) error {
			statusCalls = append(statusCalls, id+":"+status)
			return nil
		},
	}
	svc := NewService(db, repo, empls, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.SetStatus(context.Background(), stored.ID.String(), UpdateLeaveStatusRequest{
		Status:     StatusApproved,
		ApprovedBy: "HR Admin",
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, resp.Status)
	assert.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, "HR Admin", *resp.ApprovedBy)
	assert.NotNil(t, resp.ApprovedDate)
	assert.Equal(t, []string{ref.String() + ":" + employee.StatusOnLeave}, statusCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_SetStatus_UnresolvedReferenceIsNoOp(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	stored := Leave{
		ID:          uuid.New(),
		EmployeeID:  "someone unknown",
		Status:      StatusPending,
		AppliedDate: time.Now().UTC(),
	}

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Leave, error) {
			l := stored
			return &l, nil
		},
		updateFn: func(ctx context.Context, l *Leave) error { return nil },
	}
	empls := &fakeEmployeeService{
		resolveFn: noResolve,
		setStatusFn: func(ctx context.Context, id, status string) error {
			t.Fatal("no employee mutation expected without a stored reference")
			return nil
		},
	}
	svc := NewService(db, repo, empls, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.SetStatus(context.Background(), stored.ID.String(), UpdateLeaveStatusRequest{Status: StatusApproved})
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, resp.Status)
	// approvedBy tidak dikirim: tetap null, tanggalnya tetap tercatat
	assert.Nil(t, resp.ApprovedBy)
	assert.NotNil(t, resp.ApprovedDate)
}

func TestService_SetStatus_Rejections(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	approved := Leave{ID: uuid.New(), Status: StatusApproved, AppliedDate: time.Now().UTC()}
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Leave, error) {
			if id == approved.ID.String() {
				l := approved
				return &l, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		updateFn: func(ctx context.Context, l *Leave) error { return nil },
	}
	svc := NewService(db, repo, &fakeEmployeeService{resolveFn: noResolve}, nil)
	ctx := context.Background()

	t.Run("invalid target status", func(t *testing.T) {
		_, err := svc.SetStatus(ctx, approved.ID.String(), UpdateLeaveStatusRequest{Status: "pending"})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
	})

	t.Run("already resolved", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.SetStatus(ctx, approved.ID.String(), UpdateLeaveStatusRequest{Status: StatusRejected})
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveAlreadyResolved)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.SetStatus(ctx, uuid.NewString(), UpdateLeaveStatusRequest{Status: StatusApproved})
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Delete_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		deleteFn: func(ctx context.Context, id string) (int64, error) { return 0, nil },
	}
	svc := NewService(db, repo, &fakeEmployeeService{resolveFn: noResolve}, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := svc.Delete(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, daysBetween(start, start))
	assert.Equal(t, 5, daysBetween(start, start.AddDate(0, 0, 4)))
	assert.Equal(t, 31, daysBetween(start, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)))
}
