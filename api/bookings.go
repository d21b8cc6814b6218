package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/flightbook/internal/domain"
	"github.com/Domenick1991/flightbook/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.DELETE("/:customerID/:flightID", h.cancel)
	router.PUT("/:customerID", h.rebook)
}

type createBookingRequest struct {
	CustomerID  int    `json:"customer_id"`
	FlightID    int    `json:"flight_id"`
	BookingDate string `json:"booking_date"`
}

type rebookRequest struct {
	NewFlightID int `json:"new_flight_id"`
}

type bookingResponse struct {
	ID          int    `json:"id"`
	CustomerID  int    `json:"customer_id"`
	FlightID    int    `json:"flight_id"`
	BookingDate string `json:"booking_date"`
	Status      string `json:"status"`
}

func (h *BookingHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]bookingResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBookingResponse(b))
	}
	c.JSON(http.StatusOK, out)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	bookingDate, err := time.ParseInLocation(dateLayout, req.BookingDate, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking_date, want YYYY-MM-DD"})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		CustomerID:  req.CustomerID,
		FlightID:    req.FlightID,
		BookingDate: bookingDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(*created))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	customerID, err := strconv.Atoi(c.Param("customerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}
	flightID, err := strconv.Atoi(c.Param("flightID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight id"})
		return
	}

	cancelled, err := h.service.CancelBooking(c.Request.Context(), customerID, flightID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(*cancelled))
}

func (h *BookingHandler) rebook(c *gin.Context) {
	customerID, err := strconv.Atoi(c.Param("customerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}
	var req rebookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rebooked, err := h.service.Rebook(c.Request.Context(), customerID, req.NewFlightID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(*rebooked))
}

func toBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		ID:          b.ID,
		CustomerID:  b.CustomerID,
		FlightID:    b.FlightID,
		BookingDate: b.BookingDate.Format(dateLayout),
		Status:      string(b.Status),
	}
}
