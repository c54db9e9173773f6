package employee

import (
	"net/http"
	"strconv"

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
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create employee bad payload", zap.Error(err))
		mapped := apperror.ToHTTP(apperror.MapBindingError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, mapped.Details)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		h.writeServiceError(c, apperror.New(apperror.CodeInvalidInput, "page must be a positive integer", http.StatusBadRequest))
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil {
		h.writeServiceError(c, apperror.New(apperror.CodeInvalidInput, "pageSize must be a positive integer", http.StatusBadRequest))
		return
	}

	params := ListEmployeesParams{
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	}

	res, err := h.service.List(ctx, params)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(res.Total, params.Page, params.PageSize)
	response.Success(c, http.StatusOK, res.Items, &meta)
}

func (h *Handler) GetById(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	h.logger.Debug("http get employee by id", zap.String("employee_id", id))

	resp, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update employee bad payload", zap.Error(err))
		mapped := apperror.ToHTTP(apperror.MapBindingError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, mapped.Details)
		return
	}

	resp, err := h.service.Update(ctx, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if err := h.service.Delete(ctx, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
