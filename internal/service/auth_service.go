package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"event-bot/internal/model"
	"event-bot/internal/repository"
)

// AuthOutcome is the result of a passcode submission.
type AuthOutcome int

const (
	// AuthSuccess: the code is valid and the user is now authorized. A
	// re-submission by an already authorized user also yields AuthSuccess;
	// the update is a no-op on an already-true flag.
	AuthSuccess AuthOutcome = iota
	// AuthInvalidCode: no such code exists. Nothing was written.
	AuthInvalidCode
	// AuthAlreadyAuthorized: a concurrent submission for the same identity
	// won the insert race. The losing write was rolled back.
	AuthAlreadyAuthorized
	// AuthTransientError: storage failed; the user should retry later.
	AuthTransientError
)

func (o AuthOutcome) String() string {
	switch o {
	case AuthSuccess:
		return "success"
	case AuthInvalidCode:
		return "invalid_code"
	case AuthAlreadyAuthorized:
		return "already_authorized"
	default:
		return "transient_error"
	}
}

// AuthService validates submitted passcodes and records authorization.
type AuthService struct {
	userRepo *repository.UserRepository
	codeRepo *repository.AuthCodeRepository
}

func NewAuthService(userRepo *repository.UserRepository, codeRepo *repository.AuthCodeRepository) *AuthService {
	return &AuthService{userRepo: userRepo, codeRepo: codeRepo}
}

// SubmitCode checks codeText against the pre-issued set and, when valid,
// marks the submitting identity as authorized. Exactly one write happens on
// success; an invalid code writes nothing. The returned error is non-nil only
// for AuthTransientError and carries the underlying storage fault.
func (s *AuthService) SubmitCode(ctx context.Context, telegramID int64, codeText string) (AuthOutcome, error) {
	if _, err := s.codeRepo.FindByCode(ctx, codeText); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthInvalidCode, nil
		}
		return AuthTransientError, err
	}

	if _, err := s.userRepo.UpsertAuthorization(ctx, telegramID); err != nil {
		if errors.Is(err, repository.ErrAlreadyAuthorized) {
			return AuthAlreadyAuthorized, nil
		}
		return AuthTransientError, err
	}

	return AuthSuccess, nil
}

// IsAuthorized reports whether the identity holds the authorization flag.
// An unknown user is simply unauthorized.
func (s *AuthService) IsAuthorized(ctx context.Context, telegramID int64) (bool, error) {
	user, err := s.userRepo.FindByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsAuthorized, nil
}

// ListAuthorized exposes the broadcast audience.
func (s *AuthService) ListAuthorized(ctx context.Context) ([]model.User, error) {
	return s.userRepo.ListAuthorized(ctx)
}
