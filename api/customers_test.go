package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Domenick1991/flightbook/internal/domain"
	"github.com/Domenick1991/flightbook/internal/service/customers"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCustomerUseCase is a mock implementation of customers.CustomerUseCase
type MockCustomerUseCase struct {
	mock.Mock
}

func (m *MockCustomerUseCase) List(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerUseCase) GetByID(ctx context.Context, id int) (*customers.CustomerDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customers.CustomerDetails), args.Error(1)
}

func (m *MockCustomerUseCase) Add(ctx context.Context, input customers.AddCustomerInput) (*domain.Customer, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerUseCase) Deactivate(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func TestCustomerHandler_create(t *testing.T) {
	mockService := &MockCustomerUseCase{}
	handler := NewCustomerHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"id":1,"name":"alice","phone":"0123","email":"alice@example.com"}`
	c.Request = httptest.NewRequest("POST", "/customers", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	created := &domain.Customer{ID: 1, Name: "alice", Phone: "0123",
		Email: "alice@example.com", Status: domain.StatusActive}
	mockService.On("Add", c.Request.Context(), customers.AddCustomerInput{
		ID: 1, Name: "alice", Phone: "0123", Email: "alice@example.com",
	}).Return(created, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestCustomerHandler_create_DuplicateID(t *testing.T) {
	mockService := &MockCustomerUseCase{}
	handler := NewCustomerHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"id":1,"name":"bob","phone":"0456","email":"bob@example.com"}`
	c.Request = httptest.NewRequest("POST", "/customers", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Add", c.Request.Context(), mock.Anything).
		Return(nil, fmt.Errorf("customer 1: %w", domain.ErrDuplicateIdentity))

	handler.create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockService.AssertExpectations(t)
}

func TestCustomerHandler_get(t *testing.T) {
	mockService := &MockCustomerUseCase{}
	handler := NewCustomerHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("GET", "/customers/1", nil)

	details := &customers.CustomerDetails{
		Customer: domain.Customer{ID: 1, Name: "alice", Phone: "0123",
			Email: "alice@example.com", Status: domain.StatusActive},
		Bookings: []domain.Booking{
			{ID: 1, CustomerID: 1, FlightID: 1, BookingDate: testDate("2025-05-01"), Status: domain.StatusActive},
		},
	}
	mockService.On("GetByID", c.Request.Context(), 1).Return(details, nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
	assert.Contains(t, w.Body.String(), `"bookings"`)
	mockService.AssertExpectations(t)
}

func TestCustomerHandler_deactivate(t *testing.T) {
	mockService := &MockCustomerUseCase{}
	handler := NewCustomerHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("DELETE", "/customers/1", nil)

	mockService.On("Deactivate", c.Request.Context(), 1).Return(true, nil)

	handler.deactivate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"changed":true`)
	mockService.AssertExpectations(t)
}

func TestCustomerHandler_deactivate_AlreadyRetired(t *testing.T) {
	mockService := &MockCustomerUseCase{}
	handler := NewCustomerHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("DELETE", "/customers/1", nil)

	mockService.On("Deactivate", c.Request.Context(), 1).Return(false, nil)

	handler.deactivate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"changed":false`)
	mockService.AssertExpectations(t)
}
