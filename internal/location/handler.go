package location

import (
	"errors"
	"net/http"
	"strconv"

	"parkease/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Onboard godoc
// @Summary      Create owner payout profile
// @Tags         owner
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      OnboardRequest  true  "Owner profile data"
// @Success      201      {object}  Owner
// @Failure      400      {object}  gin.H
// @Router       /owner/onboard [post]
func (h *Handler) Onboard(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req OnboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	owner, err := h.svc.Onboard(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create owner profile"})
		return
	}

	c.JSON(http.StatusCreated, owner)
}

// CreateLocation godoc
// @Summary      Create a parking location
// @Tags         owner
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateLocationRequest  true  "Location data"
// @Success      201      {object}  Location
// @Failure      400      {object}  gin.H
// @Router       /owner/locations [post]
func (h *Handler) CreateLocation(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loc, err := h.svc.CreateLocation(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrOwnerNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "owner profile required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create location"})
		return
	}

	c.JSON(http.StatusCreated, loc)
}

// ListOwnLocations godoc
// @Summary      List own locations
// @Tags         owner
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Location
// @Router       /owner/locations [get]
func (h *Handler) ListOwnLocations(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	locations, err := h.svc.ListOwnLocations(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrOwnerNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "owner profile required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load locations"})
		return
	}

	c.JSON(http.StatusOK, locations)
}

// ListLocations godoc
// @Summary      List locations
// @Description  Public catalogue of parking locations, optionally filtered by city.
// @Tags         location
// @Produce      json
// @Param        city  query  string  false  "City filter"
// @Success      200  {array}  Location
// @Router       /locations [get]
func (h *Handler) ListLocations(c *gin.Context) {
	locations, err := h.svc.ListLocations(c.Request.Context(), c.Query("city"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load locations"})
		return
	}

	c.JSON(http.StatusOK, locations)
}

// CreateSpot godoc
// @Summary      Add a spot to a location
// @Tags         owner
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        locationID  path  int  true  "Location ID"
// @Param        request  body      CreateSpotRequest  true  "Spot data"
// @Success      201      {object}  Spot
// @Failure      403      {object}  gin.H
// @Router       /owner/locations/{locationID}/spots [post]
func (h *Handler) CreateSpot(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	locationID, err := strconv.Atoi(c.Param("locationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid location id"})
		return
	}

	var req CreateSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	spot, err := h.svc.CreateSpot(c.Request.Context(), userID, locationID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrLocationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
		case errors.Is(err, ErrOwnerNotFound), errors.Is(err, ErrNotLocationOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "not the owner of this location"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create spot"})
		}
		return
	}

	c.JSON(http.StatusCreated, spot)
}

// ListSpots godoc
// @Summary      List spots for a location
// @Tags         location
// @Produce      json
// @Param        locationID  path  int  true  "Location ID"
// @Success      200  {array}  Spot
// @Router       /locations/{locationID}/spots [get]
func (h *Handler) ListSpots(c *gin.Context) {
	locationID, err := strconv.Atoi(c.Param("locationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid location id"})
		return
	}

	spots, err := h.svc.ListSpots(c.Request.Context(), locationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load spots"})
		return
	}

	c.JSON(http.StatusOK, spots)
}

// SetSpotActive godoc
// @Summary      Activate or deactivate a spot
// @Tags         owner
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        spotID  path  int  true  "Spot ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      403  {object}  gin.H
// @Router       /owner/spots/{spotID}/active [patch]
func (h *Handler) SetSpotActive(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	spotID, err := strconv.Atoi(c.Param("spotID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid spot id"})
		return
	}

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "active is required"})
		return
	}

	if err := h.svc.SetSpotActive(c.Request.Context(), userID, spotID, *req.Active); err != nil {
		switch {
		case errors.Is(err, ErrSpotNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "spot not found"})
		case errors.Is(err, ErrOwnerNotFound), errors.Is(err, ErrNotLocationOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "not the owner of this spot"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update spot"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "spot updated"})
}
