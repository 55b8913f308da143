package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hospilog/internal/models/db_models"
	"hospilog/internal/models/request_models"
	"hospilog/internal/models/response_models"
	"hospilog/internal/obs"
	"hospilog/internal/repositories"
	mem "hospilog/pkg/memcache"
	"hospilog/pkg/utils"
)

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error)
	VerifyStepUp(ctx context.Context, request request_models.VerifyStepUpRequest) (*response_models.SessionResponse, error)
	SessionLookup(ctx context.Context, token string) (*db_models.Account, error)
	Register(ctx context.Context, request request_models.SignUpRequest) (*response_models.AccountResponse, error)
	ForgotPassword(ctx context.Context, email string) (*response_models.ResetTokenResponse, error)
	ResetPassword(ctx context.Context, token, password string) (*response_models.AccountResponse, error)
}

type AuthOptions struct {
	OTPDigits int
	// MaxOTPAttempts bounds how many codes one step-up token may be
	// checked against, right or wrong.
	MaxOTPAttempts  int
	SingleUseStepUp bool
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	tokens      TokenServiceInterface
	mail        IMailService
	ledger      mem.StepUpLedger
	events      EventPublisher
	opts        AuthOptions
	logger      *zap.Logger
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	tokens TokenServiceInterface,
	mail IMailService,
	ledger mem.StepUpLedger,
	events EventPublisher,
	opts AuthOptions,
	logger *zap.Logger,
) AccountServiceInterface {
	if opts.OTPDigits <= 0 {
		opts.OTPDigits = 6
	}
	if opts.MaxOTPAttempts <= 0 {
		opts.MaxOTPAttempts = 5
	}
	return &AccountService{
		accountRepo: accountRepo,
		tokens:      tokens,
		mail:        mail,
		ledger:      ledger,
		events:      events,
		opts:        opts,
		logger:      logger.Named("account"),
	}
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// burnCompare spends the same bcrypt work as a real check so that unknown
// emails and wrong passwords take comparable time.
func burnCompare(password string) {
	dummyHashOnce.Do(func() {
		secret, _ := utils.GenerateSecureToken(16)
		dummyHash, _ = utils.HashPassword(secret)
	})
	_ = utils.ComparePasswords(dummyHash, password)
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error) {
	account, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", errors.Join(utils.ErrDatabaseError, err))
	}

	if account == nil {
		burnCompare(request.Password)
		obs.AuthOutcome("login", "invalid_credentials")
		return nil, utils.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		obs.AuthOutcome("login", "invalid_credentials")
		return nil, utils.ErrInvalidCredentials
	}

	code, err := utils.GenerateOtpCode(a.opts.OTPDigits)
	if err != nil {
		return nil, fmt.Errorf("generate otp: %w", errors.Join(utils.ErrInternal, err))
	}

	token, err := a.tokens.IssueStepUpToken(account, code)
	if err != nil {
		return nil, fmt.Errorf("issue step-up token: %w", errors.Join(utils.ErrInternal, err))
	}

	if err := a.mail.SendOtpCode(account.Email, code, a.tokens.StepUpTTL()); err != nil {
		obs.OTPSent(false)
		a.logger.Error("otp delivery failed", zap.Stringer("account_id", account.ID), zap.Error(err))
		return nil, fmt.Errorf("send otp: %w", utils.ErrInternal)
	}
	obs.OTPSent(true)
	obs.AuthOutcome("login", "step_up_issued")

	return &response_models.LoginResponse{
		StepUpRequired: true,
		StepUpToken:    token,
	}, nil
}

func (a *AccountService) VerifyStepUp(ctx context.Context, request request_models.VerifyStepUpRequest) (*response_models.SessionResponse, error) {
	if request.Token == "" || request.Code == "" {
		return nil, utils.ErrMissingInput
	}

	claims, err := a.tokens.ParseStepUpToken(request.Token)
	if err != nil {
		obs.AuthOutcome("verify2fa", "bad_token")
		return nil, err
	}
	attempts, err := a.ledger.RecordAttempt(ctx, claims.ID, a.tokens.StepUpTTL())
	if err != nil {
		return nil, fmt.Errorf("step-up ledger: %w", errors.Join(utils.ErrInternal, err))
	}
	if attempts > int64(a.opts.MaxOTPAttempts) {
		obs.AuthOutcome("verify2fa", "locked")
		return nil, utils.ErrInvalidOrExpiredToken
	}
	if !a.tokens.MatchStepUpCode(claims, request.Code) {
		obs.AuthOutcome("verify2fa", "code_mismatch")
		return nil, utils.ErrCodeMismatch
	}

	if a.opts.SingleUseStepUp {
		// Remembering the jti for a full TTL covers whatever lifetime is left.
		fresh, err := a.ledger.MarkUsed(ctx, claims.ID, a.tokens.StepUpTTL())
		if err != nil {
			return nil, fmt.Errorf("step-up ledger: %w", errors.Join(utils.ErrInternal, err))
		}
		if !fresh {
			obs.AuthOutcome("verify2fa", "replay")
			return nil, utils.ErrInvalidOrExpiredToken
		}
	}

	id, err := uuid.Parse(claims.AccountID)
	if err != nil {
		return nil, utils.ErrMalformedToken
	}
	account, err := a.accountRepo.FindById(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", errors.Join(utils.ErrDatabaseError, err))
	}
	if account == nil || account.Email != claims.Email {
		return nil, utils.ErrInvalidOrExpiredToken
	}

	session, err := a.tokens.IssueSessionToken(account)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", errors.Join(utils.ErrInternal, err))
	}
	obs.AuthOutcome("verify2fa", "authenticated")

	return &response_models.SessionResponse{
		SessionToken: session,
		Role:         account.Role,
	}, nil
}

func (a *AccountService) SessionLookup(ctx context.Context, token string) (*db_models.Account, error) {
	if token == "" {
		return nil, utils.ErrUnauthorized
	}
	identity, err := a.tokens.ParseSessionToken(token)
	if err != nil {
		return nil, utils.ErrUnauthorized
	}

	account, err := a.accountRepo.FindById(ctx, identity.AccountID)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", errors.Join(utils.ErrDatabaseError, err))
	}
	if account == nil || account.Email != identity.Email {
		return nil, utils.ErrUnauthorized
	}
	return account, nil
}

func (a *AccountService) Register(ctx context.Context, request request_models.SignUpRequest) (*response_models.AccountResponse, error) {
	if !request.Role.Valid() {
		return nil, utils.Invalid("role", "unknown role")
	}

	existing, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", errors.Join(utils.ErrDatabaseError, err))
	}
	if existing != nil {
		return nil, utils.ErrAccountExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", errors.Join(utils.ErrInternal, err))
	}

	account := &db_models.Account{
		Name:         request.Name,
		Email:        request.Email,
		PasswordHash: hashedPassword,
		Role:         request.Role,
		Document:     request.Document,
		Contract:     request.Contract,
	}
	if err := a.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, utils.ErrAccountExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create account: %w", errors.Join(utils.ErrDatabaseError, err))
	}

	publishAll(ctx, a.events, a.logger, LifecycleEvent{
		Type:     EventAccountRegistered,
		EntityID: account.ID,
		To:       string(account.Role),
	})
	return response_models.NewAccountResponse(account), nil
}

func (a *AccountService) ForgotPassword(ctx context.Context, email string) (*response_models.ResetTokenResponse, error) {
	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", errors.Join(utils.ErrDatabaseError, err))
	}
	if account == nil {
		return nil, utils.NotFound("Account")
	}

	token, err := a.tokens.IssueResetToken(account)
	if err != nil {
		return nil, fmt.Errorf("issue reset token: %w", errors.Join(utils.ErrInternal, err))
	}
	if err := a.mail.SendMailToResetPassword(account.Email, token); err != nil {
		a.logger.Error("reset mail delivery failed", zap.Stringer("account_id", account.ID), zap.Error(err))
		return nil, fmt.Errorf("send reset mail: %w", utils.ErrInternal)
	}

	return &response_models.ResetTokenResponse{ResetToken: token}, nil
}

func (a *AccountService) ResetPassword(ctx context.Context, token, password string) (*response_models.AccountResponse, error) {
	claims, err := a.tokens.ParseResetToken(token)
	if err != nil {
		return nil, err
	}

	account, err := a.accountRepo.FindByEmail(ctx, claims.Email)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", errors.Join(utils.ErrDatabaseError, err))
	}
	if account == nil {
		return nil, utils.NotFound("Account")
	}
	// The token embeds the hash it was issued against, so it stops working
	// as soon as the password changes.
	if account.PasswordHash != claims.PasswordHash {
		return nil, utils.ErrInvalidOrExpiredToken
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", errors.Join(utils.ErrInternal, err))
	}
	swapped, err := a.accountRepo.UpdatePassword(ctx, account.Email, claims.PasswordHash, hashedPassword)
	if err != nil {
		return nil, fmt.Errorf("update password: %w", errors.Join(utils.ErrDatabaseError, err))
	}
	if !swapped {
		// Another reset with the same token won the race.
		return nil, utils.ErrInvalidOrExpiredToken
	}
	account.PasswordHash = hashedPassword

	a.logger.Info("password reset", zap.Stringer("account_id", account.ID))
	return response_models.NewAccountResponse(account), nil
}
