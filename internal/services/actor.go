package services

import (
	"github.com/google/uuid"

	"hospilog/internal/models/db_models"
	"hospilog/pkg/utils"
)

// Actor is the authenticated caller as resolved by the session middleware.
type Actor struct {
	AccountID uuid.UUID
	Role      db_models.Role
}

func (a Actor) Require(c db_models.Capability) error {
	if !a.Role.Can(c) {
		return utils.ErrForbidden
	}
	return nil
}
