package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Barbershop
// --------------------------------------------------

func (r *CatalogGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &shop, nil
}

func (r *CatalogGormRepository) GetBarbershopBySlug(
	ctx context.Context,
	slug string,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&shop).Error; err != nil {
		return nil, notFound(err)
	}
	return &shop, nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *CatalogGormRepository) ListActiveProducts(
	ctx context.Context,
	barbershopID uint,
) ([]models.BarberProduct, error) {

	var products []models.BarberProduct
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND active = true", barbershopID).
		Order("id ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *CatalogGormRepository) ListActiveCombos(
	ctx context.Context,
	barbershopID uint,
) ([]models.BarberCombo, error) {

	var combos []models.BarberCombo
	if err := r.db.WithContext(ctx).
		Preload("Products").
		Where("barbershop_id = ? AND active = true", barbershopID).
		Order("id ASC").
		Find(&combos).Error; err != nil {
		return nil, err
	}
	return combos, nil
}

// --------------------------------------------------
// Professionals
// --------------------------------------------------

func (r *CatalogGormRepository) ListProfessionals(
	ctx context.Context,
	barbershopID uint,
) ([]models.User, error) {

	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND active = true", barbershopID).
		Order("name ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *CatalogGormRepository) GetProfessional(
	ctx context.Context,
	barbershopID uint,
	professionalID uint,
) (*domain.ProfessionalRecord, error) {

	db := r.db.WithContext(ctx)

	var rec domain.ProfessionalRecord
	if err := db.
		Where("id = ? AND barbershop_id = ? AND active = true", professionalID, barbershopID).
		First(&rec.User).Error; err != nil {
		return nil, notFound(err)
	}

	if err := db.
		Where("user_id = ?", professionalID).
		Find(&rec.Excluded).Error; err != nil {
		return nil, err
	}

	if err := db.
		Where("user_id = ?", professionalID).
		Order("weekday ASC, start_time ASC").
		Find(&rec.Unavailable).Error; err != nil {
		return nil, err
	}

	return &rec, nil
}

func (r *CatalogGormRepository) GetOwner(
	ctx context.Context,
	barbershopID uint,
) (*models.User, error) {

	var owner models.User
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND role = ? AND active = true", barbershopID, models.RoleOwner).
		Order("id ASC").
		First(&owner).Error; err != nil {
		return nil, notFound(err)
	}
	return &owner, nil
}

// --------------------------------------------------
// Schedule
// --------------------------------------------------

func (r *CatalogGormRepository) ListWorkingHours(
	ctx context.Context,
	barbershopID uint,
) ([]models.WorkingHours, error) {

	var hours []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ?", barbershopID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

// Compile-time check
var _ domain.CatalogReader = (*CatalogGormRepository)(nil)
