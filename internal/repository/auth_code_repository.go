package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"event-bot/internal/model"
)

// AuthCodeRepository reads the pre-issued event passcodes.
type AuthCodeRepository struct {
	db *gorm.DB
}

func NewAuthCodeRepository(db *gorm.DB) *AuthCodeRepository {
	return &AuthCodeRepository{db: db}
}

func (r *AuthCodeRepository) FindByCode(ctx context.Context, code string) (*model.AuthCode, error) {
	var authCode model.AuthCode
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&authCode).Error; err != nil {
		return nil, err
	}
	return &authCode, nil
}

// Seed inserts the given codes if they are not present yet. Codes are
// provisioned out-of-band; seeding is idempotent so restarts are safe.
func (r *AuthCodeRepository) Seed(ctx context.Context, codes []string) error {
	db := r.db.WithContext(ctx)
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		authCode := model.AuthCode{Code: code}
		if err := db.Where("code = ?", code).FirstOrCreate(&authCode).Error; err != nil {
			return fmt.Errorf("seed code %q: %w", code, err)
		}
	}
	return nil
}

func (r *AuthCodeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.AuthCode{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
