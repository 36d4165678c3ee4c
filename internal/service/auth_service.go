package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apperrors "reciclothes/internal/errors"
	"reciclothes/internal/model"
	"reciclothes/internal/password"
	"reciclothes/internal/repository"
)

// RegisterInput carries the signup form.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Address  string
	Password string
}

// AuthService handles account registration and credential checks.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.Account, error)
	Login(ctx context.Context, email, password string) (*model.Account, error)
}

// AuthOptions tunes login failure reporting.
type AuthOptions struct {
	// UniformErrors reports both unknown email and wrong password as
	// apperrors.ErrInvalidCredentials. The real reason is only logged.
	UniformErrors bool
}

type authService struct {
	accountRepo repository.AccountRepository
	hasher      password.Hasher
	logger      *slog.Logger
	opts        AuthOptions
}

// NewAuthService creates a new authentication service.
func NewAuthService(accountRepo repository.AccountRepository, hasher password.Hasher, logger *slog.Logger, opts AuthOptions) AuthService {
	return &authService{
		accountRepo: accountRepo,
		hasher:      hasher,
		logger:      logger,
		opts:        opts,
	}
}

// Register hashes the password with a fresh salt and persists the account.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.Account, error) {
	hash, salt, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	account := &model.Account{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		Address:      in.Address,
		PasswordHash: hash,
		Salt:         salt,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.logger.InfoContext(ctx, "account registered", "account_id", account.ID)
	return account, nil
}

// Login looks the account up by email and verifies the password against its stored hash.
func (s *authService) Login(ctx context.Context, email, plain string) (*model.Account, error) {
	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return nil, s.credentialFailure(ctx, apperrors.ErrAccountNotFound)
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	if err := s.hasher.Verify(account.PasswordHash, plain); err != nil {
		if errors.Is(err, apperrors.ErrWrongPassword) {
			return nil, s.credentialFailure(ctx, apperrors.ErrWrongPassword, "account_id", account.ID)
		}
		return nil, fmt.Errorf("verify account %d: %w", account.ID, err)
	}

	s.logger.InfoContext(ctx, "login succeeded", "account_id", account.ID)
	return account, nil
}

// credentialFailure logs the precise reason and returns what the client may see.
func (s *authService) credentialFailure(ctx context.Context, reason error, args ...any) error {
	s.logger.InfoContext(ctx, "login rejected", append(args, "reason", reason.Error())...)
	if s.opts.UniformErrors {
		return apperrors.ErrInvalidCredentials
	}
	return reason
}
