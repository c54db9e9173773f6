package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hr-platform/internal/events"
	"hr-platform/internal/messaging/kafka"
	"hr-platform/internal/shared/apperror"
	"hr-platform/internal/shared/cache"
	"hr-platform/internal/shared/contextutil"

	employeeerrors "hr-platform/internal/employee/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const listCacheTTL = 2 * time.Minute

func listCacheKey(params ListEmployeesParams) string {
	return fmt.Sprintf("%s%s:%d:%d", cache.EmployeeListPrefix, params.Search, params.Page, params.PageSize)
}

type ListResult struct {
	Items []EmployeeResponse
	Total int64
}

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	List(ctx context.Context, params ListEmployeesParams) (ListResult, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error

	// SetStatus is the cross-service hook used by leave approval.
	SetStatus(ctx context.Context, id, status string) error

	// Resolve matches a free-text reference against an employee id or a
	// case-insensitively folded name. Returns (nil, nil) when nothing
	// matches: an unresolved reference is not an error.
	Resolve(ctx context.Context, ref string) (*EmployeeResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	inval  *cache.Invalidator
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, inval *cache.Invalidator, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb, inval, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	inval *cache.Invalidator,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		inval:  inval,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("department", req.Department),
	)

	// Semua pelanggaran field dikumpulkan dulu, baru ditolak sekaligus
	if fields := validateCreateRequest(req); len(fields) > 0 {
		s.logger.Warn("create employee validation failed",
			zap.String("request_id", rid),
			zap.Int("violations", len(fields)),
		)
		return EmployeeResponse{}, apperror.NewValidation(fields)
	}

	status := req.Status
	if status == "" {
		status = StatusActive
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl := &Employee{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Department:   req.Department,
		Salary:       req.Salary,
		Status:       status,
		ProfileImage: req.ProfileImage,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:  "employee_created",
			RequestID:  rid,
			EmployeeID: empl.ID.String(),
			Name:       empl.Name,
			Department: empl.Department,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   empl.ID.String(),
			EventType:     event.EventType,
			Topic:         events.EmployeeLifecycleTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.inval.InvalidateStats(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)

	return mapToResponse(*empl), nil
}

func (s *service) List(ctx context.Context, params ListEmployeesParams) (ListResult, error) {
	if params.Page < 1 {
		return ListResult{}, employeeerrors.ErrInvalidPage
	}
	if params.PageSize < 1 {
		return ListResult{}, employeeerrors.ErrInvalidPageSize
	}

	cacheKey := listCacheKey(params)

	// 1. Cek Redis
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var res ListResult
			if json.Unmarshal([]byte(cached), &res) == nil {
				return res, nil
			}
		}
	}

	// 2. Singleflight agar query identik tidak menumpuk ke database
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		offset := (params.Page - 1) * params.PageSize
		empls, total, err := s.repo.Search(ctx, params.Search, offset, params.PageSize)
		if err != nil {
			return ListResult{}, mapRepositoryError(err)
		}

		res := ListResult{Items: mapToListResponse(empls), Total: total}

		// 3. Simpan ke Redis
		if s.rdb != nil {
			if jsonData, err := json.Marshal(res); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, listCacheTTL)
			}
		}

		return res, nil
	})

	if err != nil {
		return ListResult{}, err
	}

	return v.(ListResult), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.String("employee_id", id))

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.String("employee_id", id))

	if fields := validateUpdateRequest(req); len(fields) > 0 {
		s.logger.Warn("update employee validation failed",
			zap.String("employee_id", id),
			zap.Int("violations", len(fields)),
		)
		return EmployeeResponse{}, apperror.NewValidation(fields)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("update employee fetch existing failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	// ID dan CreatedAt tidak pernah ditimpa
	if req.Name != nil {
		empl.Name = *req.Name
	}
	if req.Email != nil {
		empl.Email = *req.Email
	}
	if req.Phone != nil {
		empl.Phone = *req.Phone
	}
	if req.Department != nil {
		empl.Department = *req.Department
	}
	if req.Salary != nil {
		empl.Salary = *req.Salary
	}
	if req.Status != nil {
		empl.Status = *req.Status
	}
	if req.ProfileImage != nil {
		empl.ProfileImage = *req.ProfileImage
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.inval.InvalidateStats(ctx)

	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("delete employee requested", zap.String("employee_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rows, err := qtx.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	if rows == 0 {
		// Repeated delete of the same id is an error, not a no-op
		return employeeerrors.ErrEmployeeNotFound
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.inval.InvalidateStats(ctx)

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) SetStatus(ctx context.Context, id, status string) error {
	s.logger.Debug("set employee status requested",
		zap.String("employee_id", id),
		zap.String("status", status),
	)

	if !ValidStatus(status) {
		return apperror.NewValidation([]apperror.FieldError{
			{Field: "status", Message: "Status must be one of active, inactive, on-leave"},
		})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	empl.Status = status
	if err := qtx.Update(ctx, empl); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.inval.InvalidateStats(ctx)

	s.logger.Info("set employee status success",
		zap.String("employee_id", id),
		zap.String("status", status),
	)
	return nil
}

func (s *service) Resolve(ctx context.Context, ref string) (*EmployeeResponse, error) {
	if _, err := uuid.Parse(ref); err == nil {
		empl, err := s.repo.FindByID(ctx, ref)
		if err == nil {
			resp := mapToResponse(*empl)
			return &resp, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// fall through: id tidak ketemu, coba cocokkan sebagai nama
	}

	empl, err := s.repo.FindByNameFold(ctx, ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	resp := mapToResponse(*empl)
	return &resp, nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           empl.ID.String(),
		Name:         empl.Name,
		Email:        empl.Email,
		Phone:        empl.Phone,
		Department:   empl.Department,
		Salary:       empl.Salary,
		Status:       empl.Status,
		ProfileImage: empl.ProfileImage,
		CreatedAt:    empl.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
