package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CrudRepository is the persistence surface shared by the catalog entities.
type CrudRepository[T any] interface {
	List(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	// LockByID reads the row with FOR UPDATE; only meaningful inside a transaction.
	LockByID(ctx context.Context, id uuid.UUID) (*T, error)
	Create(ctx context.Context, entity *T) error
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type crudRepository[T any] struct {
	db *gorm.DB
}

func (r *crudRepository[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	err := conn(ctx, r.db).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *crudRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	return r.first(conn(ctx, r.db), id)
}

func (r *crudRepository[T]) LockByID(ctx context.Context, id uuid.UUID) (*T, error) {
	return r.first(conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *crudRepository[T]) first(db *gorm.DB, id uuid.UUID) (*T, error) {
	var entity T
	err := db.First(&entity, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (r *crudRepository[T]) Create(ctx context.Context, entity *T) error {
	return conn(ctx, r.db).Create(entity).Error
}

func (r *crudRepository[T]) Save(ctx context.Context, entity *T) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(entity).Error
}

func (r *crudRepository[T]) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := conn(ctx, r.db).Delete(new(T), "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
