package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domain "github.com/renanbmello/api-ecommerce/internal/entity"
	"github.com/renanbmello/api-ecommerce/internal/usecase"
)

type DiscountHandler struct {
	discounts *usecase.Discounts
}

func NewDiscountHandler(discounts *usecase.Discounts) *DiscountHandler {
	return &DiscountHandler{discounts: discounts}
}

type createDiscountReq struct {
	Code       string           `json:"code" binding:"required"`
	Type       string           `json:"type" binding:"required"`
	Value      decimal.Decimal  `json:"value" binding:"required"`
	MinValue   *decimal.Decimal `json:"minValue"`
	MaxUses    *int             `json:"maxUses"`
	ValidFrom  time.Time        `json:"validFrom" binding:"required"`
	ValidUntil time.Time        `json:"validUntil" binding:"required"`
}

// POST /discounts
func (h *DiscountHandler) Create(c *gin.Context) {
	var req createDiscountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	d, err := h.discounts.Create(c.Request.Context(), usecase.CreateDiscountInput{
		Code:       req.Code,
		Type:       domain.DiscountType(req.Type),
		Value:      req.Value,
		MinValue:   req.MinValue,
		MaxUses:    req.MaxUses,
		ValidFrom:  req.ValidFrom,
		ValidUntil: req.ValidUntil,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         d.ID,
		"code":       d.Code,
		"type":       d.Type,
		"value":      d.Value,
		"minValue":   d.MinValue,
		"maxUses":    d.MaxUses,
		"usedCount":  d.UsedCount,
		"validFrom":  d.ValidFrom,
		"validUntil": d.ValidUntil,
		"active":     d.Active,
	})
}
