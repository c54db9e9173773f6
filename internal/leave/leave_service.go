package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"hr-platform/internal/employee"
	"hr-platform/internal/events"
	"hr-platform/internal/messaging/kafka"
	"hr-platform/internal/shared/apperror"
	"hr-platform/internal/shared/cache"
	"hr-platform/internal/shared/contextutil"

	leaveerrors "hr-platform/internal/leave/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Service interface {
	Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveResponse, error)
	ListByFilter(ctx context.Context, f Filter) ([]LeaveResponse, error)
	SetStatus(ctx context.Context, id string, req UpdateLeaveStatusRequest) (LeaveResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Service
	outbox    kafka.OutboxRepository
	inval     *cache.Invalidator
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, employees employee.Service, inval *cache.Invalidator, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, employees, nil, inval, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	employees employee.Service,
	outboxRepo kafka.OutboxRepository,
	inval *cache.Invalidator,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		outbox:    outboxRepo,
		inval:     inval,
		logger:    l,
	}
}

func (s *service) Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("apply leave requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	startDate, endDate, fields := validateApplyRequest(req)
	if len(fields) > 0 {
		s.logger.Warn("apply leave validation failed",
			zap.String("request_id", rid),
			zap.Int("violations", len(fields)),
		)
		return LeaveResponse{}, apperror.NewValidation(fields)
	}

	// Referensi employee dicocokkan sekali di sini, bukan saat approval
	var ref *uuid.UUID
	resolved, err := s.employees.Resolve(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Error("apply leave resolve employee failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if resolved != nil {
		id, err := uuid.Parse(resolved.ID)
		if err == nil {
			ref = &id
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("apply leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l := &Leave{
		ID:          uuid.New(),
		EmployeeID:  req.EmployeeID,
		EmployeeRef: ref,
		LeaveType:   req.LeaveType,
		StartDate:   startDate,
		EndDate:     endDate,
		Days:        daysBetween(startDate, endDate),
		Reason:      req.Reason,
		Status:      StatusPending,
		AppliedDate: time.Now().UTC(),
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("apply leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if s.outbox != nil {
		event := events.LeaveAppliedEvent{
			EventType:  "leave_applied",
			RequestID:  rid,
			LeaveID:    l.ID.String(),
			EmployeeID: l.EmployeeID,
			LeaveType:  l.LeaveType,
			Days:       l.Days,
			OccurredAt: time.Now().UTC(),
		}
		if err := s.queueOutboxEvent(ctx, tx, rid, l.ID.String(), event.EventType, event); err != nil {
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("apply leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.inval.InvalidateStats(ctx)

	s.logger.Info("apply leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.Int("days", l.Days),
	)

	return mapToResponse(*l), nil
}

func (s *service) ListByFilter(ctx context.Context, f Filter) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindByFilter(ctx, f)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) SetStatus(ctx context.Context, id string, req UpdateLeaveStatusRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("set leave status requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("target_status", req.Status),
	)

	if req.Status != StatusApproved && req.Status != StatusRejected {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("set leave status begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	// pending adalah satu-satunya status awal yang sah
	if l.Status != StatusPending {
		s.logger.Warn("set leave status on resolved leave",
			zap.String("leave_id", id),
			zap.String("current_status", l.Status),
			zap.String("target_status", req.Status),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveAlreadyResolved
	}

	l.Status = req.Status
	if req.Status == StatusApproved {
		now := time.Now().UTC()
		l.ApprovedDate = &now
		// approvedBy opsional: kosong tetap null, bukan ""
		if req.ApprovedBy != "" {
			approvedBy := req.ApprovedBy
			l.ApprovedBy = &approvedBy
		}
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("set leave status persist failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if s.outbox != nil {
		event := events.LeaveStatusChangedEvent{
			EventType:  "leave_status_changed",
			RequestID:  rid,
			LeaveID:    l.ID.String(),
			EmployeeID: l.EmployeeID,
			Status:     l.Status,
			OccurredAt: time.Now().UTC(),
		}
		if err := s.queueOutboxEvent(ctx, tx, rid, l.ID.String(), event.EventType, event); err != nil {
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("set leave status commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	// Side effect setelah commit: approval tetap sukses walau mutasi
	// employee gagal atau referensinya sudah tidak ada.
	if req.Status == StatusApproved && l.EmployeeRef != nil {
		if err := s.employees.SetStatus(ctx, l.EmployeeRef.String(), employee.StatusOnLeave); err != nil {
			s.logger.Warn("set employee on-leave after approval failed",
				zap.String("leave_id", id),
				zap.String("employee_id", l.EmployeeRef.String()),
				zap.Error(err),
			)
		}
	}

	s.inval.InvalidateStats(ctx)

	s.logger.Info("set leave status success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("status", l.Status),
	)

	return mapToResponse(*l), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	rows, err := qtx.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return leaveerrors.ErrLeaveNotFound
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.inval.InvalidateStats(ctx)
	return nil
}

func (s *service) queueOutboxEvent(ctx context.Context, tx *sql.Tx, rid, leaveID, eventType string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	outboxRepo := s.outbox.WithTx(tx)
	if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "leave",
		AggregateID:   leaveID,
		EventType:     eventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("leave outbox persist failed",
			zap.String("leave_id", leaveID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// daysBetween is inclusive of both endpoints: a leave from Monday through
// Friday is 5 days.
func daysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func validateApplyRequest(req ApplyLeaveRequest) (time.Time, time.Time, []apperror.FieldError) {
	var fields []apperror.FieldError

	if strings.TrimSpace(req.EmployeeID) == "" {
		fields = append(fields, apperror.FieldError{Field: "employeeId", Message: "Employee is required"})
	}

	if req.LeaveType == "" {
		fields = append(fields, apperror.FieldError{Field: "leaveType", Message: "Leave type is required"})
	} else if !ValidLeaveType(req.LeaveType) {
		fields = append(fields, apperror.FieldError{Field: "leaveType", Message: "Leave type must be one of annual, sick, maternity, emergency"})
	}

	var startDate, endDate time.Time
	var err error

	if req.StartDate == "" {
		fields = append(fields, apperror.FieldError{Field: "startDate", Message: "Start date is required"})
	} else if startDate, err = time.Parse(dateLayout, req.StartDate); err != nil {
		fields = append(fields, apperror.FieldError{Field: "startDate", Message: "Start date must be YYYY-MM-DD"})
	}

	if req.EndDate == "" {
		fields = append(fields, apperror.FieldError{Field: "endDate", Message: "End date is required"})
	} else if endDate, err = time.Parse(dateLayout, req.EndDate); err != nil {
		fields = append(fields, apperror.FieldError{Field: "endDate", Message: "End date must be YYYY-MM-DD"})
	}

	if !startDate.IsZero() && !endDate.IsZero() && endDate.Before(startDate) {
		fields = append(fields, apperror.FieldError{Field: "endDate", Message: "End date must be on or after start date"})
	}

	if strings.TrimSpace(req.Reason) == "" {
		fields = append(fields, apperror.FieldError{Field: "reason", Message: "Reason is required"})
	}

	return startDate, endDate, fields
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:          l.ID.String(),
		EmployeeID:  l.EmployeeID,
		LeaveType:   l.LeaveType,
		StartDate:   l.StartDate.Format(dateLayout),
		EndDate:     l.EndDate.Format(dateLayout),
		Days:        l.Days,
		Reason:      l.Reason,
		Status:      l.Status,
		AppliedDate: l.AppliedDate.UTC().Format(time.RFC3339),
	}
	resp.ApprovedBy = l.ApprovedBy
	if l.ApprovedDate != nil {
		v := l.ApprovedDate.UTC().Format(time.RFC3339)
		resp.ApprovedDate = &v
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
