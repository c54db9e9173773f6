package employee_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hr-platform/internal/employee"

	employeeerrors "hr-platform/internal/employee/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	createFn    func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	listFn      func(ctx context.Context, params employee.ListEmployeesParams) (employee.ListResult, error)
	getByIDFn   func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	updateFn    func(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	deleteFn    func(ctx context.Context, id string) error
	setStatusFn func(ctx context.Context, id, status string) error
	resolveFn   func(ctx context.Context, ref string) (*employee.EmployeeResponse, error)
}

func (f *fakeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.createFn(ctx, req)
}
func (f *fakeService) List(ctx context.Context, params employee.ListEmployeesParams) (employee.ListResult, error) {
	return f.listFn(ctx, params)
}
func (f *fakeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeService) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.updateFn(ctx, id, req)
}
func (f *fakeService) Delete(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }
func (f *fakeService) SetStatus(ctx context.Context, id, status string) error {
	return f.setStatusFn(ctx, id, status)
}
func (f *fakeService) Resolve(ctx context.Context, ref string) (*employee.EmployeeResponse, error) {
	return f.resolveFn(ctx, ref)
}

func TestHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
			assert.Equal(t, "Jane Smith", req.Name)
			return employee.EmployeeResponse{ID: uuid.NewString(), Name: req.Name, Status: "active"}, nil
		},
	}
	h := employee.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"name":"Jane Smith","email":"jane@example.com","department":"Engineering","salary":"75000"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "\"ok\":true")
	assert.Contains(t, w.Body.String(), "Jane Smith")
}

func TestHandler_List_MetaAndDefaults(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		listFn: func(ctx context.Context, params employee.ListEmployeesParams) (employee.ListResult, error) {
			assert.Equal(t, 1, params.Page)
			assert.Equal(t, 10, params.PageSize)
			assert.Equal(t, "jane", params.Search)
			return employee.ListResult{
				Items: []employee.EmployeeResponse{{ID: uuid.NewString()}},
				Total: 12,
			}, nil
		},
	}
	h := employee.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/employees?search=jane", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"totalEmployees\":12")
	assert.Contains(t, w.Body.String(), "\"totalPages\":2")
}

func TestHandler_List_RejectsNonNumericPage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := employee.NewHandler(&fakeService{
		listFn: func(ctx context.Context, params employee.ListEmployeesParams) (employee.ListResult, error) {
			t.Fatal("service must not be called")
			return employee.ListResult{}, nil
		},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/employees?page=abc", nil)

	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_INPUT")
}

func TestHandler_Delete_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := employee.NewHandler(&fakeService{
		deleteFn: func(ctx context.Context, id string) error {
			return employeeerrors.ErrEmployeeNotFound
		},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}
	c.Request = httptest.NewRequest(http.MethodDelete, "/employees/x", nil)

	h.Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}
