package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"hospilog/internal/repositories"
	"hospilog/pkg/utils"
)

// resolveAccount parses raw and checks that the account exists. A missing
// account is reported as a typed NotFound so that callers write nothing.
func resolveAccount(ctx context.Context, accounts repositories.AccountRepository, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, utils.Invalid("account_id", "must be a uuid")
	}
	exists, err := accounts.Exists(ctx, id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("check account: %w", errors.Join(utils.ErrDatabaseError, err))
	}
	if !exists {
		return uuid.Nil, utils.NotFound("Account")
	}
	return id, nil
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, utils.Invalid("id", "must be a uuid")
	}
	return id, nil
}

func deleteByID[T any](ctx context.Context, repo repositories.CrudRepository[T], id uuid.UUID, entity string) error {
	deleted, err := repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", entity, errors.Join(utils.ErrDatabaseError, err))
	}
	if !deleted {
		return utils.NotFound(entity)
	}
	return nil
}

func loadByID[T any](ctx context.Context, repo repositories.CrudRepository[T], raw string, entity string) (*T, error) {
	id, err := parseID(raw)
	if err != nil {
		return nil, err
	}
	found, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", entity, errors.Join(utils.ErrDatabaseError, err))
	}
	if found == nil {
		return nil, utils.NotFound(entity)
	}
	return found, nil
}
