package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hospilog/internal/services"
	"hospilog/pkg/middleware"
	"hospilog/pkg/utils"
)

func actorFrom(c *gin.Context) services.Actor {
	id, role, _ := middleware.CurrentAccount(c)
	return services.Actor{AccountID: id, Role: role}
}

// pathID parses a uuid path parameter and answers 400 on failure.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondErrorCode(c, http.StatusBadRequest, "VALIDATION_FAILED", name+" must be a UUID",
			[]utils.FieldError{{Field: name, Rule: "uuid"}})
		return uuid.Nil, false
	}
	return id, true
}
