package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"event-bot/internal/model"
)

// ErrAlreadyAuthorized reports that a concurrent upsert for the same
// TelegramID won the insert race; the losing write has been rolled back.
var ErrAlreadyAuthorized = errors.New("user already authorized")

// UserRepository handles lookups and authorization upserts for users.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertAuthorization marks the user with this TelegramID as authorized,
// creating the row if it does not exist yet. The write runs in a transaction;
// a duplicate-insert race is detected via the unique index on telegram_id and
// reported as ErrAlreadyAuthorized after rollback.
func (r *UserRepository) UpsertAuthorization(ctx context.Context, telegramID int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("telegram_id = ?", telegramID).First(&user).Error
		switch {
		case err == nil:
			if err := tx.Model(&user).Update("is_authorized", true).Error; err != nil {
				return fmt.Errorf("update user: %w", err)
			}
			user.IsAuthorized = true
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = model.User{TelegramID: telegramID, IsAuthorized: true}
			if err := tx.Create(&user).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrAlreadyAuthorized
				}
				return fmt.Errorf("create user: %w", err)
			}
			return nil
		default:
			return fmt.Errorf("find user: %w", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListAuthorized returns every user allowed to receive gated content.
func (r *UserRepository) ListAuthorized(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Where("is_authorized = ?", true).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
