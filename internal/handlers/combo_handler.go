package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ComboHandler manages bundles of services sold with their own price and
// duration.
type ComboHandler struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewComboHandler(db *gorm.DB, logger *zap.Logger) *ComboHandler {
	return &ComboHandler{db: db, logger: logger}
}

type CreateComboRequest struct {
	Name        string           `json:"name" binding:"required"`
	ProductIDs  []uint           `json:"product_ids" binding:"required,min=2"`
	DurationMin int              `json:"duration_min" binding:"required,min=1"`
	Price       decimal.Decimal  `json:"price"`
	PromoPrice  *decimal.Decimal `json:"promo_price"`
}

type UpdateComboRequest struct {
	Name        *string          `json:"name,omitempty"`
	ProductIDs  []uint           `json:"product_ids,omitempty"`
	DurationMin *int             `json:"duration_min,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	PromoPrice  *decimal.Decimal `json:"promo_price,omitempty"`
	ClearPromo  bool             `json:"clear_promo,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

func (h *ComboHandler) List(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var combos []models.BarberCombo
	if err := h.db.
		WithContext(c.Request.Context()).
		Preload("Products").
		Where("barbershop_id = ?", barbershopID).
		Order("id ASC").
		Find(&combos).Error; err != nil {

		h.logger.Error("list combos failed", zap.Error(err))
		httperr.Internal(c, "failed_to_list_combos", "Erro ao listar combos.")
		return
	}

	c.JSON(http.StatusOK, combos)
}

func (h *ComboHandler) Create(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateComboRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	promo := nullDecimal(req.PromoPrice)
	if !validPricing(req.Price, promo) {
		httperr.Field(c, "invalid_price", "price", "Preço inválido.")
		return
	}

	products, ok := h.products(c, barbershopID, req.ProductIDs)
	if !ok {
		return
	}

	combo := models.BarberCombo{
		BarbershopID: barbershopID,
		Name:         req.Name,
		Products:     products,
		DurationMin:  req.DurationMin,
		Price:        req.Price,
		PromoPrice:   promo,
		Active:       true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&combo).Error; err != nil {
		h.logger.Error("create combo failed", zap.Error(err))
		httperr.Internal(c, "failed_to_create_combo", "Erro ao criar combo.")
		return
	}

	c.JSON(http.StatusCreated, combo)
}

func (h *ComboHandler) Update(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var combo models.BarberCombo
	if err := h.db.
		WithContext(c.Request.Context()).
		Preload("Products").
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		First(&combo).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "combo_not_found", "Combo não encontrado.")
			return
		}
		h.logger.Error("get combo failed", zap.Error(err))
		httperr.Internal(c, "failed_to_get_combo", "Erro ao buscar combo.")
		return
	}

	var req UpdateComboRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		combo.Name = *req.Name
	}
	if req.DurationMin != nil {
		if *req.DurationMin < 1 {
			httperr.Field(c, "invalid_duration", "duration_min", "Duração inválida.")
			return
		}
		combo.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		combo.Price = *req.Price
	}
	if req.ClearPromo {
		combo.PromoPrice = decimal.NullDecimal{}
	} else if req.PromoPrice != nil {
		combo.PromoPrice = nullDecimal(req.PromoPrice)
	}
	if req.Active != nil {
		combo.Active = *req.Active
	}

	if !validPricing(combo.Price, combo.PromoPrice) {
		httperr.Field(c, "invalid_price", "price", "Preço inválido.")
		return
	}

	var products []models.BarberProduct
	if req.ProductIDs != nil {
		if len(req.ProductIDs) < 2 {
			httperr.Field(c, "invalid_products", "product_ids", "Um combo precisa de pelo menos dois serviços.")
			return
		}
		if products, ok = h.products(c, barbershopID, req.ProductIDs); !ok {
			return
		}
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Products").Save(&combo).Error; err != nil {
			return err
		}
		if req.ProductIDs == nil {
			return nil
		}
		if err := tx.Model(&combo).Association("Products").Replace(products); err != nil {
			return err
		}
		combo.Products = products
		return nil
	})
	if err != nil {
		h.logger.Error("update combo failed", zap.Error(err))
		httperr.Internal(c, "failed_to_update_combo", "Erro ao salvar combo.")
		return
	}

	c.JSON(http.StatusOK, combo)
}

// products loads the tenant's services by id; every id must exist.
func (h *ComboHandler) products(c *gin.Context, barbershopID uint, ids []uint) ([]models.BarberProduct, bool) {
	unique := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}

	var products []models.BarberProduct
	if err := h.db.
		WithContext(c.Request.Context()).
		Where("barbershop_id = ? AND id IN ?", barbershopID, ids).
		Find(&products).Error; err != nil {

		h.logger.Error("load combo products failed", zap.Error(err))
		httperr.Internal(c, "failed_to_get_product", "Erro ao buscar serviços.")
		return nil, false
	}

	if len(products) != len(unique) {
		httperr.Field(c, "product_not_found", "product_ids", "Serviço não encontrado.")
		return nil, false
	}
	return products, true
}
