package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"hospilog/internal/models/db_models"
	"hospilog/pkg/utils"
)

const pgUniqueViolation = "23505"

type AccountRepository interface {
	Create(ctx context.Context, account *db_models.Account) error
	FindById(ctx context.Context, id uuid.UUID) (*db_models.Account, error)
	FindByEmail(ctx context.Context, email string) (*db_models.Account, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]db_models.Account, error)
	UpdatePassword(ctx context.Context, email, currentHash, newHash string) (bool, error)
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

func (a *accountRepository) Create(ctx context.Context, account *db_models.Account) error {
	err := conn(ctx, a.db).Create(account).Error
	if isUniqueViolation(err) {
		return utils.ErrAccountExists
	}
	return err
}

func (a *accountRepository) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	var account db_models.Account
	err := conn(ctx, a.db).First(&account, "email = ?", email).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.Account, error) {
	var account db_models.Account
	err := conn(ctx, a.db).First(&account, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := conn(ctx, a.db).Model(&db_models.Account{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (a *accountRepository) List(ctx context.Context) ([]db_models.Account, error) {
	var accounts []db_models.Account
	err := conn(ctx, a.db).Order("created_at DESC").Find(&accounts).Error
	return accounts, err
}

// UpdatePassword is a compare-and-swap on the hash: it reports false when the
// stored hash is no longer currentHash.
func (a *accountRepository) UpdatePassword(ctx context.Context, email, currentHash, newHash string) (bool, error) {
	res := conn(ctx, a.db).Model(&db_models.Account{}).
		Where("email = ? AND password_hash = ?", email, currentHash).
		Update("password_hash", newHash)
	return res.RowsAffected > 0, res.Error
}

func (a *accountRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) (bool, error) {
	res := conn(ctx, a.db).Model(&db_models.Account{}).
		Where("id = ?", id).
		Update("is_verified", verified)
	return res.RowsAffected > 0, res.Error
}

func (a *accountRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := conn(ctx, a.db).Delete(&db_models.Account{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
