package finance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// ListRules godoc
// @Summary      List commission rules
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  CommissionRule
// @Router       /admin/commission-rules [get]
func (h *Handler) ListRules(c *gin.Context) {
	rules, err := h.svc.ListRules(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load commission rules"})
		return
	}

	c.JSON(http.StatusOK, rules)
}

// CreateRule godoc
// @Summary      Create a commission rule
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateRuleRequest  true  "Rule data"
// @Success      201      {object}  CommissionRule
// @Failure      400      {object}  gin.H
// @Router       /admin/commission-rules [post]
func (h *Handler) CreateRule(c *gin.Context) {
	var req CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule, err := h.svc.CreateRule(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create commission rule"})
		return
	}

	c.JSON(http.StatusCreated, rule)
}

// UpdateRule godoc
// @Summary      Update a commission rule
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        ruleID   path      int                true  "Rule ID"
// @Param        request  body      CreateRuleRequest  true  "Rule data"
// @Success      200      {object}  CommissionRule
// @Failure      404      {object}  gin.H
// @Router       /admin/commission-rules/{ruleID} [put]
func (h *Handler) UpdateRule(c *gin.Context) {
	ruleID, err := strconv.Atoi(c.Param("ruleID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule id"})
		return
	}

	var req CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule, err := h.svc.UpdateRule(c.Request.Context(), ruleID, req)
	if err != nil {
		if errors.Is(err, ErrRuleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "commission rule not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update commission rule"})
		return
	}

	c.JSON(http.StatusOK, rule)
}

// DeleteRule godoc
// @Summary      Delete a commission rule
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        ruleID  path  int  true  "Rule ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      404  {object}  gin.H
// @Router       /admin/commission-rules/{ruleID} [delete]
func (h *Handler) DeleteRule(c *gin.Context) {
	ruleID, err := strconv.Atoi(c.Param("ruleID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule id"})
		return
	}

	if err := h.svc.DeleteRule(c.Request.Context(), ruleID); err != nil {
		if errors.Is(err, ErrRuleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "commission rule not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete commission rule"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "commission rule deleted"})
}

// PreviewCommission godoc
// @Summary      Preview commission for a booking
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path  int  true  "Booking ID"
// @Success      200  {object}  gin.H
// @Failure      404  {object}  gin.H
// @Router       /admin/bookings/{bookingID}/commission [get]
func (h *Handler) PreviewCommission(c *gin.Context) {
	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	commission, err := h.svc.CalculateCommission(c.Request.Context(), bookingID)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to calculate commission"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking_id": bookingID, "commission": commission})
}
