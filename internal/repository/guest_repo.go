package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"atithi/internal/domain"
)

type GuestRepository struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) *GuestRepository {
	return &GuestRepository{db: db}
}

func (r *GuestRepository) Create(ctx context.Context, g *domain.Guest) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *GuestRepository) GetByID(ctx context.Context, id int64) (*domain.Guest, error) {
	var g domain.Guest
	if err := r.db.WithContext(ctx).First(&g, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *GuestRepository) Update(ctx context.Context, g *domain.Guest) error {
	return r.db.WithContext(ctx).Save(g).Error
}

// Search matches name, phone, email or id-proof number, case-insensitive.
func (r *GuestRepository) Search(ctx context.Context, query string) ([]domain.Guest, error) {
	var guests []domain.Guest
	like := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("full_name LIKE ? OR phone LIKE ? OR email LIKE ? OR id_proof_number LIKE ?",
			like, like, like, like).
		Order("full_name").
		Find(&guests).Error
	if err != nil {
		return nil, err
	}
	return guests, nil
}

// FindOrCreateByEmail reuses an existing guest profile on repeat stays,
// refreshing the contact details it was given.
func (r *GuestRepository) FindOrCreateByEmail(ctx context.Context, g *domain.Guest) error {
	if g.Email == "" {
		return r.Create(ctx, g)
	}

	var existing domain.Guest
	err := r.db.WithContext(ctx).Where("email = ?", g.Email).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.Create(ctx, g)
	}
	if err != nil {
		return err
	}

	existing.FullName = g.FullName
	existing.Phone = g.Phone
	if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return err
	}
	*g = existing
	return nil
}

func (r *GuestRepository) SetBlacklisted(ctx context.Context, id int64, blacklisted bool) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Guest{}).
		Where("id = ?", id).
		Update("is_blacklisted", blacklisted)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
