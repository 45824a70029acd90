package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Abhijith12371/InfosysProject/internal/repository"
	"github.com/Abhijith12371/InfosysProject/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.search)
	router.GET("/:id", h.get)
	router.GET("/:id/seats", h.seats)
	router.GET("/:id/price", h.price)
	router.GET("/:id/price-history", h.priceHistory)
}

func (h *FlightHandler) search(c *gin.Context) {
	filter := repository.SearchFilter{
		Source:      c.Query("source"),
		Destination: c.Query("destination"),
	}
	if date := c.Query("departure_date"); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "departure_date must be YYYY-MM-DD"})
			return
		}
		filter.DepartureDate = parsed
	}
	if v := c.Query("min_price_cents"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_price_cents"})
			return
		}
		filter.MinPriceCents = n
	}
	if v := c.Query("max_price_cents"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_price_cents"})
			return
		}
		filter.MaxPriceCents = n
	}

	list, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flights": list, "total_count": len(list)})
}

func (h *FlightHandler) get(c *gin.Context) {
	details, err := h.service.GetDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *FlightHandler) seats(c *gin.Context) {
	avail, err := h.service.Availability(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, avail)
}

func (h *FlightHandler) price(c *gin.Context) {
	breakdown, err := h.service.PricingBreakdown(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

func (h *FlightHandler) priceHistory(c *gin.Context) {
	history, err := h.service.FareHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flight_id": c.Param("id"), "history": history})
}
