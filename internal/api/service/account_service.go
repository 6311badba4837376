package service

import (
	"context"
	"errors"

	"golang-trading-journal/internal/api/dto"
	"golang-trading-journal/internal/api/repository"
	"golang-trading-journal/internal/entity"
	"golang-trading-journal/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccountService defines the interface for managing trading accounts.
type AccountService interface {
	CreateAccount(ctx context.Context, userID uuid.UUID, req *dto.AccountRequest) (*dto.AccountResponse, error)
	GetAccount(ctx context.Context, userID, id uuid.UUID) (*dto.AccountResponse, error)
	GetAllAccounts(ctx context.Context, userID uuid.UUID) ([]*dto.AccountResponse, error)
	UpdateAccount(ctx context.Context, userID, id uuid.UUID, req *dto.AccountRequest) (*dto.AccountResponse, error)
	DeleteAccount(ctx context.Context, userID, id uuid.UUID) error
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo repository.AccountRepository, log *logger.Logger) AccountService {
	return &accountService{accountRepo: accountRepo, logger: log}
}

type accountService struct {
	accountRepo repository.AccountRepository
	logger      *logger.Logger
}

// CreateAccount stores a new account. A user's first account becomes the default.
func (s *accountService) CreateAccount(ctx context.Context, userID uuid.UUID, req *dto.AccountRequest) (*dto.AccountResponse, error) {
	existing, err := s.accountRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	account := &entity.Account{
		UserID:          userID,
		Name:            req.Name,
		Broker:          req.Broker,
		StartingBalance: req.StartingBalance,
		CurrentBalance:  req.CurrentBalance,
		IsDefault:       req.IsDefault || len(existing) == 0,
	}
	if account.CurrentBalance.IsZero() {
		account.CurrentBalance = account.StartingBalance
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		s.logger.ErrorContext(ctx, "Failed to create account", logger.ErrorField(err), logger.Field("user_id", userID))
		return nil, err
	}
	return mapToAccountResponse(account), nil
}

func (s *accountService) GetAccount(ctx context.Context, userID, id uuid.UUID) (*dto.AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return mapToAccountResponse(account), nil
}

func (s *accountService) GetAllAccounts(ctx context.Context, userID uuid.UUID) ([]*dto.AccountResponse, error) {
	accounts, err := s.accountRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, mapToAccountResponse(&accounts[i]))
	}
	return out, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, userID, id uuid.UUID, req *dto.AccountRequest) (*dto.AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	account.Name = req.Name
	account.Broker = req.Broker
	account.StartingBalance = req.StartingBalance
	account.CurrentBalance = req.CurrentBalance
	// the default can only move to another account, never disappear
	account.IsDefault = req.IsDefault || account.IsDefault

	if err := s.accountRepo.Update(ctx, account); err != nil {
		s.logger.ErrorContext(ctx, "Failed to update account", logger.ErrorField(err), logger.Field("account_id", id))
		return nil, err
	}
	return mapToAccountResponse(account), nil
}

// DeleteAccount removes an account; its trades stay, detached from any account. When it was the
// default, the oldest remaining account takes over.
func (s *accountService) DeleteAccount(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.accountRepo.Delete(ctx, userID, id); err != nil {
		return err
	}
	fields := []zap.Field{logger.Field("account_id", id)}
	if def, err := s.accountRepo.FindDefault(ctx, userID); err == nil {
		fields = append(fields, logger.Field("default_account_id", def.ID))
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.logger.WarnContext(ctx, "Failed to read default account", logger.ErrorField(err), logger.Field("user_id", userID))
	}
	s.logger.InfoContext(ctx, "Account deleted", fields...)
	return nil
}

func mapToAccountResponse(a *entity.Account) *dto.AccountResponse {
	return &dto.AccountResponse{
		ID:              a.ID,
		Name:            a.Name,
		Broker:          a.Broker,
		StartingBalance: a.StartingBalance,
		CurrentBalance:  a.CurrentBalance,
		IsDefault:       a.IsDefault,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
