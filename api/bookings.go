package api

import (
	"net/http"
	"time"

	"github.com/Abhijith12371/InfosysProject/internal/domain"
	"github.com/Abhijith12371/InfosysProject/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/select-seat", h.selectSeat)
	router.POST("/:id/passenger", h.addPassenger)
	router.POST("/:id/payment", h.processPayment)
	router.DELETE("/:id", h.cancel)
	router.GET("/pnr/:pnr", h.lookupByPNR)
	router.GET("/:id", h.get)
	router.GET("", h.history)
}

type selectSeatRequest struct {
	FlightID string `json:"flight_id" binding:"required"`
	SeatNo   string `json:"seat_no" binding:"required"`
}

type passengerRequest struct {
	PassengerName  string `json:"passenger_name" binding:"required"`
	PassengerEmail string `json:"passenger_email" binding:"required,email"`
}

type paymentRequest struct {
	CardNumber  string `json:"card_number" binding:"required"`
	ExpiryMonth int    `json:"expiry_month" binding:"required"`
	ExpiryYear  int    `json:"expiry_year" binding:"required"`
	CVV         string `json:"cvv" binding:"required"`
}

type bookingResponse struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	FlightID        string `json:"flight_id"`
	SeatNo          string `json:"seat_no"`
	Status          string `json:"status"`
	PassengerName   string `json:"passenger_name,omitempty"`
	PassengerEmail  string `json:"passenger_email,omitempty"`
	FinalPriceCents int64  `json:"final_price_cents"`
	PNR             string `json:"pnr,omitempty"`
	CreatedAt       string `json:"created_at"`
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		FlightID:        b.FlightID,
		SeatNo:          b.SeatNo,
		Status:          string(b.Status),
		PassengerName:   b.PassengerName,
		PassengerEmail:  b.PassengerEmail,
		FinalPriceCents: b.FinalPriceCents,
		PNR:             b.PNR,
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
	}
}

func (h *BookingHandler) selectSeat(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req selectSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.SelectSeat(c.Request.Context(), booking.SelectSeatInput{
		UserID:   userID,
		FlightID: req.FlightID,
		SeatNo:   req.SeatNo,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) addPassenger(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req passengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.AddPassengerInfo(c.Request.Context(), c.Param("id"), userID, req.PassengerName, req.PassengerEmail)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(updated))
}

func (h *BookingHandler) processPayment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.ProcessPayment(c.Request.Context(), c.Param("id"), userID, booking.PaymentCard{
		CardNumber:  req.CardNumber,
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
		CVV:         req.CVV,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"payment_status": string(result.Status),
		"booking":        toBookingResponse(result.Booking),
	})
}

func (h *BookingHandler) cancel(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.service.Cancel(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"booking":      toBookingResponse(result.Booking),
		"refund_cents": result.RefundCents,
	})
}

func (h *BookingHandler) lookupByPNR(c *gin.Context) {
	found, err := h.service.LookupByPNR(c.Request.Context(), c.Param("pnr"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(found))
}

func (h *BookingHandler) get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	found, err := h.service.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(found))
}

func (h *BookingHandler) history(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	bookings, err := h.service.History(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	responses := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, gin.H{"bookings": responses, "total_count": len(responses)})
}
