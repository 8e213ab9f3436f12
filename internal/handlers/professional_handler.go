package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

// ProfessionalHandler manages the shop staff and their agenda exceptions.
type ProfessionalHandler struct {
	db     *gorm.DB
	audit  *audit.Dispatcher
	logger *zap.Logger
}

func NewProfessionalHandler(db *gorm.DB, audit *audit.Dispatcher, logger *zap.Logger) *ProfessionalHandler {
	return &ProfessionalHandler{db: db, audit: audit, logger: logger}
}

// --------- Requests ---------

type CreateProfessionalRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type UpdateProfessionalRequest struct {
	Name   *string `json:"name,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

type ExcludedServicesRequest struct {
	ProductIDs []uint `json:"product_ids"`
}

type UnavailabilityRequest struct {
	Windows []struct {
		Weekday   int    `json:"weekday" binding:"min=0,max=6"`
		StartTime string `json:"start_time" binding:"required"`
		EndTime   string `json:"end_time" binding:"required"`
	} `json:"windows" binding:"dive"`
}

type professionalView struct {
	models.User
	ExcludedProductIDs []uint                              `json:"excluded_product_ids"`
	Unavailable        []models.ProfessionalUnavailability `json:"unavailable"`
}

// --------- Handlers ---------

func (h *ProfessionalHandler) List(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	db := h.db.WithContext(c.Request.Context())

	var users []models.User
	if err := db.
		Where("barbershop_id = ?", barbershopID).
		Order("name ASC").
		Find(&users).Error; err != nil {

		h.logger.Error("list professionals failed", zap.Error(err))
		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	var excluded []models.ProfessionalExcludedService
	var windows []models.ProfessionalUnavailability
	if len(ids) > 0 {
		if err := db.Where("user_id IN ?", ids).Find(&excluded).Error; err != nil {
			h.logger.Error("list exclusions failed", zap.Error(err))
			httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
			return
		}
		if err := db.Where("user_id IN ?", ids).Order("weekday ASC, start_time ASC").Find(&windows).Error; err != nil {
			h.logger.Error("list unavailability failed", zap.Error(err))
			httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
			return
		}
	}

	out := make([]professionalView, 0, len(users))
	for _, u := range users {
		v := professionalView{User: u, ExcludedProductIDs: []uint{}, Unavailable: []models.ProfessionalUnavailability{}}
		for _, e := range excluded {
			if e.UserID == u.ID {
				v.ExcludedProductIDs = append(v.ExcludedProductIDs, e.BarberProductID)
			}
		}
		for _, w := range windows {
			if w.UserID == u.ID {
				v.Unavailable = append(v.Unavailable, w)
			}
		}
		out = append(out, v)
	}

	c.JSON(http.StatusOK, out)
}

func (h *ProfessionalHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(c.Request.Context(), email) {
		httperr.Field(c, "invalid_email_domain", "email", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("hash password failed", zap.Error(err))
		httperr.Internal(c, "failed_to_hash_password", "Erro ao processar senha.")
		return
	}

	user := models.User{
		BarbershopID: barbershopID,
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         models.RoleBarber,
		Active:       true,
	}

	if err := h.db.WithContext(c.Request.Context()).Omit("Barbershop").Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Conflict(c, "email_already_exists", "E-mail já cadastrado.")
			return
		}
		h.logger.Error("create professional failed", zap.Error(err))
		httperr.Internal(c, "failed_to_create_professional", "Erro ao criar profissional.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &userID,
		Action:       "professional_created",
		Entity:       "user",
		EntityID:     &user.ID,
	})

	c.JSON(http.StatusCreated, userPayload(&user))
}

func (h *ProfessionalHandler) Update(c *gin.Context) {
	user, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Active != nil {
		if !*req.Active && user.Role == models.RoleOwner {
			httperr.BadRequest(c, "cannot_deactivate_owner", "O dono da barbearia não pode ser desativado.")
			return
		}
		user.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Omit("Barbershop").Save(user).Error; err != nil {
		h.logger.Error("update professional failed", zap.Error(err))
		httperr.Internal(c, "failed_to_update_professional", "Erro ao salvar profissional.")
		return
	}

	c.JSON(http.StatusOK, userPayload(user))
}

// SetExcludedServices replaces the services the professional does not perform.
func (h *ProfessionalHandler) SetExcludedServices(c *gin.Context) {
	user, ok := h.load(c)
	if !ok {
		return
	}

	var req ExcludedServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	unique := make(map[uint]struct{}, len(req.ProductIDs))
	rows := make([]models.ProfessionalExcludedService, 0, len(req.ProductIDs))
	for _, id := range req.ProductIDs {
		if _, dup := unique[id]; dup {
			continue
		}
		unique[id] = struct{}{}
		rows = append(rows, models.ProfessionalExcludedService{UserID: user.ID, BarberProductID: id})
	}

	if len(unique) > 0 {
		var count int64
		if err := h.db.
			WithContext(c.Request.Context()).
			Model(&models.BarberProduct{}).
			Where("barbershop_id = ? AND id IN ?", user.BarbershopID, req.ProductIDs).
			Count(&count).Error; err != nil {

			h.logger.Error("count products failed", zap.Error(err))
			httperr.Internal(c, "failed_to_get_product", "Erro ao buscar serviços.")
			return
		}
		if int(count) != len(unique) {
			httperr.Field(c, "product_not_found", "product_ids", "Serviço não encontrado.")
			return
		}
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.ProfessionalExcludedService{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		h.logger.Error("save exclusions failed", zap.Error(err))
		httperr.Internal(c, "failed_to_save_exclusions", "Erro ao salvar serviços.")
		return
	}

	c.JSON(http.StatusOK, rows)
}

// SetUnavailability replaces the professional's weekly blocked windows.
func (h *ProfessionalHandler) SetUnavailability(c *gin.Context) {
	user, ok := h.load(c)
	if !ok {
		return
	}

	var req UnavailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	rows := make([]models.ProfessionalUnavailability, 0, len(req.Windows))
	for _, w := range req.Windows {
		start, err := schedule.ParseClock(w.StartTime)
		if err != nil {
			httperr.Field(c, "invalid_time", "start_time", "Horário inválido.")
			return
		}
		end, err := schedule.ParseClock(w.EndTime)
		if err != nil || end <= start {
			httperr.Field(c, "invalid_time", "end_time", "Horário inválido.")
			return
		}
		rows = append(rows, models.ProfessionalUnavailability{
			UserID:    user.ID,
			Weekday:   w.Weekday,
			StartTime: schedule.FormatClock(start),
			EndTime:   schedule.FormatClock(end),
		})
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.ProfessionalUnavailability{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		h.logger.Error("save unavailability failed", zap.Error(err))
		httperr.Internal(c, "failed_to_save_unavailability", "Erro ao salvar indisponibilidade.")
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *ProfessionalHandler) load(c *gin.Context) (*models.User, bool) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, ok := uintParam(c, "id")
	if !ok {
		return nil, false
	}

	var user models.User
	if err := h.db.
		WithContext(c.Request.Context()).
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
			return nil, false
		}
		h.logger.Error("get professional failed", zap.Error(err))
		httperr.Internal(c, "failed_to_get_professional", "Erro ao buscar profissional.")
		return nil, false
	}
	return &user, true
}
