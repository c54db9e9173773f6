package leave

import (
	"net/http"

	"hr-platform/internal/shared/apperror"
	"hr-platform/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Apply(c *gin.Context) {
	var req ApplyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http apply leave bad payload", zap.Error(err))
		mapped := apperror.ToHTTP(apperror.MapBindingError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, mapped.Details)
		return
	}

	resp, err := h.service.Apply(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	f := Filter{
		Status:     c.Query("status"),
		EmployeeID: c.Query("employeeId"),
	}

	resp, err := h.service.ListByFilter(c.Request.Context(), f)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SetStatus(c *gin.Context) {
	id := c.Param("id")

	var req UpdateLeaveStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http set leave status bad payload", zap.Error(err))
		mapped := apperror.ToHTTP(apperror.MapBindingError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, mapped.Details)
		return
	}

	resp, err := h.service.SetStatus(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
