package wallet

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"parkease/internal/auth"
	"parkease/internal/location"

	"github.com/gin-gonic/gin"
)

// OwnerResolver maps an authenticated user to their owner profile.
type OwnerResolver interface {
	GetOwnerByUserID(ctx context.Context, userID int) (*location.Owner, error)
}

type Handler struct {
	repo   Repository
	owners OwnerResolver
}

func NewHandler(repo Repository, owners OwnerResolver) *Handler {
	return &Handler{repo: repo, owners: owners}
}

// GetBalance godoc
// @Summary      Get owner wallet
// @Tags         wallet
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Wallet
// @Failure      403  {object}  gin.H
// @Router       /owner/wallet [get]
func (h *Handler) GetBalance(c *gin.Context) {
	owner, ok := h.resolveOwner(c)
	if !ok {
		return
	}

	w, err := h.repo.GetByOwnerID(c.Request.Context(), owner.ID)
	if err != nil {
		if errors.Is(err, ErrWalletNotFound) {
			// No earnings yet; report an empty wallet rather than 404.
			c.JSON(http.StatusOK, gin.H{"owner_id": owner.ID, "balance": "0", "currency": "USD"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wallet"})
		return
	}

	c.JSON(http.StatusOK, w)
}

// ListTransactions godoc
// @Summary      List wallet ledger entries
// @Tags         wallet
// @Security     BearerAuth
// @Produce      json
// @Param        limit   query  int  false  "Page size"
// @Param        offset  query  int  false  "Page offset"
// @Success      200  {array}  Transaction
// @Router       /owner/wallet/transactions [get]
func (h *Handler) ListTransactions(c *gin.Context) {
	owner, ok := h.resolveOwner(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	txs, err := h.repo.ListTransactions(c.Request.Context(), owner.ID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load transactions"})
		return
	}

	c.JSON(http.StatusOK, txs)
}

func (h *Handler) resolveOwner(c *gin.Context) (*location.Owner, bool) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return nil, false
	}

	owner, err := h.owners.GetOwnerByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "owner profile required"})
		return nil, false
	}

	return owner, true
}
