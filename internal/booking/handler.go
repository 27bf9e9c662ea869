package booking

import (
	"errors"
	"net/http"
	"strconv"

	"parkease/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// CreateBooking godoc
// @Summary      Book a parking spot
// @Tags         booking
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateBookingRequest  true  "Booking data"
// @Success      201      {object}  Booking
// @Failure      400      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Router       /bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	driverID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.svc.CreateBooking(c.Request.Context(), driverID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrSpotNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "spot not found"})
		case errors.Is(err, ErrSpotOccupied):
			c.JSON(http.StatusConflict, gin.H{"error": "spot is already booked for this period"})
		case errors.Is(err, ErrSpotInactive), errors.Is(err, ErrPastStartTime), errors.Is(err, ErrInvalidPeriod):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking"})
		}
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// CancelBooking godoc
// @Summary      Cancel own booking
// @Tags         booking
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path  int  true  "Booking ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      403  {object}  gin.H
// @Failure      404  {object}  gin.H
// @Router       /bookings/{bookingID}/cancel [post]
func (h *Handler) CancelBooking(c *gin.Context) {
	driverID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	if err := h.svc.CancelBooking(c.Request.Context(), driverID, bookingID); err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		case errors.Is(err, ErrNotOwnBooking):
			c.JSON(http.StatusForbidden, gin.H{"error": "can only cancel own bookings"})
		case errors.Is(err, ErrInvalidStatusTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "booking cannot be cancelled"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel booking"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}

// CompleteBooking godoc
// @Summary      Complete a booking and credit owner earnings
// @Tags         booking
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path  int  true  "Booking ID"
// @Success      200  {object}  finance.CreditResult
// @Failure      403  {object}  gin.H
// @Failure      409  {object}  gin.H
// @Router       /bookings/{bookingID}/complete [post]
func (h *Handler) CompleteBooking(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	role, _ := auth.GetUserRole(c)

	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	result, err := h.svc.CompleteBooking(c.Request.Context(), userID, role, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		case errors.Is(err, ErrNotSpotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "only the location owner can complete this booking"})
		case errors.Is(err, ErrInvalidStatusTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "booking is not in a completable state"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete booking"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// RefundBooking godoc
// @Summary      Refund a booking and deduct owner wallet
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        bookingID  path      int            true  "Booking ID"
// @Param        request    body      RefundRequest  true  "Refund amount"
// @Success      200  {object}  api.MessageResponse
// @Failure      404  {object}  gin.H
// @Failure      409  {object}  gin.H
// @Router       /admin/bookings/{bookingID}/refund [post]
func (h *Handler) RefundBooking(c *gin.Context) {
	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.RefundBooking(c.Request.Context(), bookingID, decimal.NewFromFloat(req.Amount)); err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		case errors.Is(err, ErrInvalidStatusTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "booking is not refundable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to refund booking"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "refund recorded"})
}

// ListMyBookings godoc
// @Summary      List own bookings
// @Tags         booking
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Booking
// @Router       /bookings [get]
func (h *Handler) ListMyBookings(c *gin.Context) {
	driverID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bookings, err := h.svc.GetDriverBookings(c.Request.Context(), driverID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// ListBookingsByLocation godoc
// @Summary      List bookings for a location
// @Tags         owner
// @Security     BearerAuth
// @Produce      json
// @Param        locationID  path  int  true  "Location ID"
// @Success      200  {array}  BookingWithDetails
// @Router       /owner/locations/{locationID}/bookings [get]
func (h *Handler) ListBookingsByLocation(c *gin.Context) {
	locationID, err := strconv.Atoi(c.Param("locationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid location id"})
		return
	}

	bookings, err := h.svc.GetBookingsByLocation(c.Request.Context(), locationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}
