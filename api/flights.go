package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/flightbook/internal/domain"
	"github.com/Domenick1991/flightbook/internal/service/flights"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.POST("/", h.create)
	router.DELETE("/:id", h.remove)
	router.PUT("/:id/retire", h.retire)
	router.GET("/:id/quote", h.quote)
}

type createFlightRequest struct {
	FlightNumber    string  `json:"flight_number"`
	Origin          string  `json:"origin"`
	Destination     string  `json:"destination"`
	DepartureDate   string  `json:"departure_date"`
	Capacity        int     `json:"capacity"`
	BasePrice       float64 `json:"base_price"`
	CancellationFee float64 `json:"cancellation_fee"`
}

type flightResponse struct {
	ID              int     `json:"id"`
	FlightNumber    string  `json:"flight_number"`
	Origin          string  `json:"origin"`
	Destination     string  `json:"destination"`
	DepartureDate   string  `json:"departure_date"`
	Capacity        int     `json:"capacity"`
	BasePrice       float64 `json:"base_price"`
	CancellationFee float64 `json:"cancellation_fee"`
	Status          string  `json:"status"`
}

type flightDetailsResponse struct {
	flightResponse
	AvailableSeats int                 `json:"available_seats"`
	Passengers     []passengerResponse `json:"passengers"`
}

type passengerResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (h *FlightHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]flightResponse, 0, len(list))
	for _, f := range list {
		out = append(out, toFlightResponse(f))
	}
	c.JSON(http.StatusOK, out)
}

func (h *FlightHandler) get(c *gin.Context) {
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

	resp := flightDetailsResponse{
		flightResponse: toFlightResponse(details.Flight),
		AvailableSeats: details.AvailableSeats,
		Passengers:     make([]passengerResponse, 0, len(details.Passengers)),
	}
	for _, p := range details.Passengers {
		resp.Passengers = append(resp.Passengers, passengerResponse{ID: p.ID, Name: p.Name})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FlightHandler) create(c *gin.Context) {
	var req createFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	departure, err := time.ParseInLocation(dateLayout, req.DepartureDate, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid departure_date, want YYYY-MM-DD"})
		return
	}

	flight, err := h.service.Add(c.Request.Context(), flights.AddFlightInput{
		FlightNumber:    req.FlightNumber,
		Origin:          req.Origin,
		Destination:     req.Destination,
		DepartureDate:   departure,
		Capacity:        req.Capacity,
		BasePrice:       req.BasePrice,
		CancellationFee: req.CancellationFee,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFlightResponse(*flight))
}

func (h *FlightHandler) remove(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FlightHandler) retire(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(domain.StatusRetired)})
}

func (h *FlightHandler) quote(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	refDate := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		refDate, err = time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want YYYY-MM-DD"})
			return
		}
	}

	price, err := h.service.Quote(c.Request.Context(), id, refDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"flight_id":      id,
		"reference_date": refDate.Format(dateLayout),
		"price":          price,
	})
}

func toFlightResponse(f domain.Flight) flightResponse {
	return flightResponse{
		ID:              f.ID,
		FlightNumber:    f.FlightNumber,
		Origin:          f.Origin,
		Destination:     f.Destination,
		DepartureDate:   f.DepartureDate.Format(dateLayout),
		Capacity:        f.Capacity,
		BasePrice:       f.BasePrice,
		CancellationFee: f.CancellationFee,
		Status:          string(f.Status),
	}
}
