package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BarberProductHandler struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewBarberProductHandler(db *gorm.DB, logger *zap.Logger) *BarberProductHandler {
	return &BarberProductHandler{db: db, logger: logger}
}

// --------- Requests ---------

type CreateBarberProductRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	DurationMin int              `json:"duration_min" binding:"required,min=1"`
	Price       decimal.Decimal  `json:"price"`
	PromoPrice  *decimal.Decimal `json:"promo_price"`
	Category    string           `json:"category"`
}

type UpdateBarberProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	DurationMin *int             `json:"duration_min,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	PromoPrice  *decimal.Decimal `json:"promo_price,omitempty"`
	ClearPromo  bool             `json:"clear_promo,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// validPricing requires a positive price and, when set, a promotional
// price that is not negative and does not exceed it.
func validPricing(price decimal.Decimal, promo decimal.NullDecimal) bool {
	if !price.IsPositive() {
		return false
	}
	if promo.Valid {
		return !promo.Decimal.IsNegative() && promo.Decimal.LessThanOrEqual(price)
	}
	return true
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

// --------- Handlers ---------
func (h *BarberProductHandler) List(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	activeStr := strings.TrimSpace(c.Query("active")) // "true", "false" ou vazio
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).Where("barbershop_id = ?", barbershopID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	switch activeStr {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var products []models.BarberProduct
	if err := q.
		Order("id ASC").
		Find(&products).Error; err != nil {

		h.logger.Error("list products failed", zap.Error(err))
		httperr.Internal(c, "failed_to_list_products", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *BarberProductHandler) Create(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateBarberProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	promo := nullDecimal(req.PromoPrice)
	if !validPricing(req.Price, promo) {
		httperr.Field(c, "invalid_price", "price", "Preço inválido.")
		return
	}

	product := models.BarberProduct{
		BarbershopID: barbershopID,
		Name:         req.Name,
		Description:  req.Description,
		DurationMin:  req.DurationMin,
		Price:        req.Price,
		PromoPrice:   promo,
		Active:       true,
		Category:     strings.ToLower(req.Category),
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&product).Error; err != nil {
		h.logger.Error("create product failed", zap.Error(err))
		httperr.Internal(c, "failed_to_create_product", "Erro ao criar serviço.")
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *BarberProductHandler) Update(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var product models.BarberProduct
	if err := h.db.
		WithContext(c.Request.Context()).
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		First(&product).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "product_not_found", "Serviço não encontrado.")
			return
		}
		h.logger.Error("get product failed", zap.Error(err))
		httperr.Internal(c, "failed_to_get_product", "Erro ao buscar serviço.")
		return
	}

	var req UpdateBarberProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.DurationMin != nil {
		if *req.DurationMin < 1 {
			httperr.Field(c, "invalid_duration", "duration_min", "Duração inválida.")
			return
		}
		product.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.ClearPromo {
		product.PromoPrice = decimal.NullDecimal{}
	} else if req.PromoPrice != nil {
		product.PromoPrice = nullDecimal(req.PromoPrice)
	}
	if req.Category != nil {
		product.Category = strings.ToLower(*req.Category)
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if !validPricing(product.Price, product.PromoPrice) {
		httperr.Field(c, "invalid_price", "price", "Preço inválido.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&product).Error; err != nil {
		h.logger.Error("update product failed", zap.Error(err))
		httperr.Internal(c, "failed_to_update_product", "Erro ao salvar serviço.")
		return
	}

	c.JSON(http.StatusOK, product)
}
