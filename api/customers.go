package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/flightbook/internal/domain"
	"github.com/Domenick1991/flightbook/internal/service/customers"
	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	service customers.CustomerUseCase
}

func NewCustomerHandler(service customers.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{service: service}
}

func (h *CustomerHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.POST("/", h.create)
	router.DELETE("/:id", h.deactivate)
}

type customerResponse struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

type customerDetailsResponse struct {
	customerResponse
	Bookings []bookingResponse `json:"bookings"`
}

func (h *CustomerHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]customerResponse, 0, len(list))
	for _, cust := range list {
		out = append(out, toCustomerResponse(cust))
	}
	c.JSON(http.StatusOK, out)
}

func (h *CustomerHandler) get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	details, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := customerDetailsResponse{
		customerResponse: toCustomerResponse(details.Customer),
		Bookings:         make([]bookingResponse, 0, len(details.Bookings)),
	}
	for _, b := range details.Bookings {
		resp.Bookings = append(resp.Bookings, toBookingResponse(b))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CustomerHandler) create(c *gin.Context) {
	var req customers.AddCustomerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.service.Add(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCustomerResponse(*customer))
}

// deactivate soft-deletes; the record and its booking history remain.
// "changed" distinguishes an actual retirement from the already-retired
// no-op.
func (h *CustomerHandler) deactivate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	changed, err := h.service.Deactivate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  string(domain.StatusRetired),
		"changed": changed,
	})
}

func toCustomerResponse(cust domain.Customer) customerResponse {
	return customerResponse{
		ID:     cust.ID,
		Name:   cust.Name,
		Phone:  cust.Phone,
		Email:  cust.Email,
		Status: string(cust.Status),
	}
}
