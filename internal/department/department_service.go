package department

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hr-platform/internal/events"
	"hr-platform/internal/messaging/kafka"
	"hr-platform/internal/shared/apperror"
	"hr-platform/internal/shared/cache"
	"hr-platform/internal/shared/contextutil"

	departmenterrors "hr-platform/internal/department/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeCounter is the one slice of the employee module this package
// needs: live head counts matched case-insensitively against a
// department name.
type EmployeeCounter interface {
	CountByDepartmentName(ctx context.Context, name string) (int64, error)
}

type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	List(ctx context.Context) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (DepartmentStatsResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	counters EmployeeCounter
	outbox   kafka.OutboxRepository
	inval    *cache.Invalidator
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counters EmployeeCounter, inval *cache.Invalidator, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counters, nil, inval, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counters EmployeeCounter,
	outboxRepo kafka.OutboxRepository,
	inval *cache.Invalidator,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		counters: counters,
		outbox:   outboxRepo,
		inval:    inval,
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create department requested",
		zap.String("request_id", rid),
		zap.String("name", req.Name),
	)

	var fields []apperror.FieldError
	if strings.TrimSpace(req.Name) == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "Department name is required"})
	}
	if strings.TrimSpace(req.Manager) == "" {
		fields = append(fields, apperror.FieldError{Field: "manager", Message: "Manager is required"})
	}
	if len(fields) > 0 {
		s.logger.Warn("create department validation failed",
			zap.String("request_id", rid),
			zap.Int("violations", len(fields)),
		)
		return DepartmentResponse{}, apperror.NewValidation(fields)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create department begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept := &Department{
		ID:          uuid.New(),
		Name:        req.Name,
		Manager:     req.Manager,
		Budget:      req.Budget,
		Description: req.Description,
	}

	if err := qtx.Create(ctx, dept); err != nil {
		s.logger.Error("create department persist failed", zap.Error(err))
		return DepartmentResponse{}, err
	}

	if s.outbox != nil {
		event := events.DepartmentCreatedEvent{
			EventType:    "department_created",
			RequestID:    rid,
			DepartmentID: dept.ID.String(),
			Name:         dept.Name,
			Manager:      dept.Manager,
			OccurredAt:   time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return DepartmentResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "department",
			AggregateID:   dept.ID.String(),
			EventType:     event.EventType,
			Topic:         events.DepartmentLifecycleTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create department outbox persist failed",
				zap.String("department_id", dept.ID.String()),
				zap.Error(err),
			)
			return DepartmentResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create department commit failed", zap.String("request_id", rid), zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.inval.InvalidateStats(ctx)

	s.logger.Info("create department success",
		zap.String("request_id", rid),
		zap.String("department_id", dept.ID.String()),
	)

	return s.mapToResponse(ctx, *dept), nil
}

func (s *service) List(ctx context.Context) ([]DepartmentResponse, error) {
	depts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = s.mapToResponse(ctx, d)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
		}
		return DepartmentResponse{}, err
	}
	return s.mapToResponse(ctx, *dept), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("delete department requested", zap.String("department_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete department begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rows, err := qtx.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete department failed", zap.Error(err))
		return err
	}
	if rows == 0 {
		return departmenterrors.ErrDepartmentNotFound
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete department commit failed", zap.Error(err))
		return err
	}

	s.inval.InvalidateStats(ctx)

	s.logger.Info("delete department success", zap.String("department_id", id))
	return nil
}

// Stats recomputes head counts on every call. Counts live on the
// employee rows, never on the department row, so a stale snapshot can
// never be served here.
func (s *service) Stats(ctx context.Context) (DepartmentStatsResponse, error) {
	depts, err := s.repo.FindAll(ctx)
	if err != nil {
		return DepartmentStatsResponse{}, err
	}

	var totalEmployees int64
	var totalBudget float64
	for _, d := range depts {
		count, err := s.counters.CountByDepartmentName(ctx, d.Name)
		if err != nil {
			return DepartmentStatsResponse{}, err
		}
		totalEmployees += count
		totalBudget += parseBudget(d.Budget)
	}

	return DepartmentStatsResponse{
		TotalDepartments: len(depts),
		TotalEmployees:   totalEmployees,
		TotalBudget:      formatBudgetMillions(totalBudget),
	}, nil
}

// parseBudget tolerates currency-formatted input: "$1,200,000" and
// "800000" both parse. Anything unparseable counts as zero.
func parseBudget(raw string) float64 {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(raw)
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

func formatBudgetMillions(total float64) string {
	return fmt.Sprintf("$%.2fM", total/1_000_000)
}

func (s *service) mapToResponse(ctx context.Context, d Department) DepartmentResponse {
	count, err := s.counters.CountByDepartmentName(ctx, d.Name)
	if err != nil {
		// Head count gagal dihitung bukan alasan menyembunyikan departemennya
		s.logger.Warn("count employees for department failed",
			zap.String("department", d.Name),
			zap.Error(err),
		)
		count = 0
	}

	return DepartmentResponse{
		ID:          d.ID.String(),
		Name:        d.Name,
		Manager:     d.Manager,
		Budget:      d.Budget,
		Description: d.Description,
		Employees:   count,
		CreatedAt:   d.CreatedAt.UTC().Format(time.RFC3339),
	}
}
