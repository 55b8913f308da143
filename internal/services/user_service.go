package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hospilog/internal/models/response_models"
	"hospilog/internal/repositories"
	"hospilog/pkg/utils"
)

type UserServiceInterface interface {
	List(ctx context.Context) ([]response_models.AccountResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*response_models.AccountResponse, error)
	Verify(ctx context.Context, id uuid.UUID) (*response_models.AccountResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserService struct {
	accountRepo repositories.AccountRepository
	mail        IMailService
	logger      *zap.Logger
}

func NewUserService(accountRepo repositories.AccountRepository, mail IMailService, logger *zap.Logger) UserServiceInterface {
	return &UserService{
		accountRepo: accountRepo,
		mail:        mail,
		logger:      logger.Named("users"),
	}
}

func (u *UserService) List(ctx context.Context) ([]response_models.AccountResponse, error) {
	accounts, err := u.accountRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", errors.Join(utils.ErrDatabaseError, err))
	}
	out := make([]response_models.AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, *response_models.NewAccountResponse(&accounts[i]))
	}
	return out, nil
}

func (u *UserService) Get(ctx context.Context, id uuid.UUID) (*response_models.AccountResponse, error) {
	account, err := u.accountRepo.FindById(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", errors.Join(utils.ErrDatabaseError, err))
	}
	if account == nil {
		return nil, utils.NotFound("Account")
	}
	return response_models.NewAccountResponse(account), nil
}

// Verify marks the account as vetted and tells its owner. A failed notice
// does not undo the verification.
func (u *UserService) Verify(ctx context.Context, id uuid.UUID) (*response_models.AccountResponse, error) {
	account, err := u.accountRepo.FindById(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", errors.Join(utils.ErrDatabaseError, err))
	}
	if account == nil {
		return nil, utils.NotFound("Account")
	}

	if !account.IsVerified {
		if _, err := u.accountRepo.SetVerified(ctx, id, true); err != nil {
			return nil, fmt.Errorf("verify account: %w", errors.Join(utils.ErrDatabaseError, err))
		}
		account.IsVerified = true

		if err := u.mail.SendMailToNotifyUser(account.Email,
			"Your account has been verified",
			fmt.Sprintf("Hello %s, an administrator has reviewed your documents and your account is now active.", account.Name),
			"", ""); err != nil {
			u.logger.Warn("verification notice not sent", zap.Stringer("account_id", id), zap.Error(err))
		}
	}
	return response_models.NewAccountResponse(account), nil
}

func (u *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := u.accountRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", errors.Join(utils.ErrDatabaseError, err))
	}
	if !deleted {
		return utils.NotFound("Account")
	}
	return nil
}
