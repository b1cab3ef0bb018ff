package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "bookit/pkg/errors"
	"bookit/pkg/logger"
	"bookit/pkg/model"
	"bookit/pkg/sanitizer"

	"golang.org/x/crypto/bcrypt"
)

// WalletService owns users and their mock balances. Passwords are bcrypt
// hashed; the hash never leaves this package.
type WalletService interface {
	Register(ctx context.Context, input *model.RegisterInput) (*model.User, error)
	Authenticate(ctx context.Context, input *model.LoginInput) (*model.User, error)
	Balance(ctx context.Context, email string) (float64, error)
	Debit(ctx context.Context, email string, amount float64) error
	Credit(ctx context.Context, email string, amount float64) error
	TopUp(ctx context.Context, input *model.TopUpInput) (float64, error)
}

type walletService struct {
	repo        UserRepository
	topUpMax    float64
	log         *logger.Logger
}

func NewWalletService(repo UserRepository, topUpMax float64, log *logger.Logger) WalletService {
	return &walletService{
		repo:     repo,
		topUpMax: topUpMax,
		log:      log,
	}
}

func (s *walletService) Register(ctx context.Context, input *model.RegisterInput) (*model.User, error) {
	email := sanitizer.NormalizeEmail(input.Email)
	if email == "" {
		return nil, apperrors.InvalidInput("Email cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	user := &model.User{
		Name:         sanitizer.NormalizeName(input.Name),
		Email:        email,
		PasswordHash: hash,
		Balance:      0,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, apperrors.Conflict("An account with this email already exists.")
		}
		return nil, apperrors.Internal("Failed to create user", err)
	}

	s.log.Info("User registered", "email", email)
	return user, nil
}

func (s *walletService) Authenticate(ctx context.Context, input *model.LoginInput) (*model.User, error) {
	user, err := s.repo.FindByEmail(ctx, sanitizer.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Same message as a bad password; do not leak which emails exist.
			return nil, apperrors.Unauthorized("Invalid email or password")
		}
		return nil, apperrors.Internal("Failed to look up user", err)
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(input.Password)) != nil {
		return nil, apperrors.Unauthorized("Invalid email or password")
	}

	return user, nil
}

func (s *walletService) Balance(ctx context.Context, email string) (float64, error) {
	user, err := s.repo.FindByEmail(ctx, sanitizer.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return 0, apperrors.NotFoundWithID("User", email)
		}
		return 0, apperrors.Internal("Failed to look up user", err)
	}
	return user.Balance, nil
}

func (s *walletService) Debit(ctx context.Context, email string, amount float64) error {
	if amount < 0 {
		return apperrors.InvalidInput("Debit amount cannot be negative")
	}

	_, err := s.repo.UpdateBalance(ctx, sanitizer.NormalizeEmail(email), func(current float64) (float64, error) {
		if current < amount {
			return 0, apperrors.InsufficientBalance(
				fmt.Sprintf("Wallet balance %.2f cannot cover %.2f", current, amount))
		}
		return current - amount, nil
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return apperrors.NotFoundWithID("User", email)
		}
		if apperrors.IsAppError(err) {
			return err
		}
		return apperrors.Internal("Failed to debit wallet", err)
	}

	s.log.Info("Wallet debited", "email", email, "amount", amount)
	return nil
}

func (s *walletService) Credit(ctx context.Context, email string, amount float64) error {
	if amount < 0 {
		return apperrors.InvalidInput("Credit amount cannot be negative")
	}

	_, err := s.repo.UpdateBalance(ctx, sanitizer.NormalizeEmail(email), func(current float64) (float64, error) {
		return current + amount, nil
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return apperrors.NotFoundWithID("User", email)
		}
		return apperrors.Internal("Failed to credit wallet", err)
	}

	s.log.Info("Wallet credited", "email", email, "amount", amount)
	return nil
}

func (s *walletService) TopUp(ctx context.Context, input *model.TopUpInput) (float64, error) {
	if input.Amount <= 0 {
		return 0, apperrors.InvalidInput("Top-up amount must be positive")
	}
	if input.Amount > s.topUpMax {
		return 0, apperrors.InvalidInput(
			fmt.Sprintf("You can add a maximum of %.0f at a time", s.topUpMax))
	}

	balance, err := s.repo.UpdateBalance(ctx, sanitizer.NormalizeEmail(input.Email), func(current float64) (float64, error) {
		return current + input.Amount, nil
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return 0, apperrors.NotFoundWithID("User", input.Email)
		}
		return 0, apperrors.Internal("Failed to top up wallet", err)
	}

	s.log.Info("Wallet topped up", "email", input.Email, "amount", input.Amount, "balance", balance)
	return balance, nil
}
