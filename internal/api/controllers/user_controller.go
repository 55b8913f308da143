package controllers

import (
	"github.com/gin-gonic/gin"

	"hospilog/internal/models/request_models"
	"hospilog/internal/services"
	"hospilog/pkg/utils"
)

type UserController struct {
	userService    services.UserServiceInterface
	insightService services.InsightServiceInterface
}

func NewUserController(userService services.UserServiceInterface, insightService services.InsightServiceInterface) *UserController {
	return &UserController{
		userService:    userService,
		insightService: insightService,
	}
}

// List godoc
// @Summary List accounts
// @Tags Users
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/list [get]
func (u *UserController) List(c *gin.Context) {
	users, err := u.userService.List(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, users, "Users fetched successfully")
}

// Get godoc
// @Summary Get one account
// @Tags Users
// @Param id path string true "Account ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (u *UserController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := u.userService.Get(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, user, "User fetched successfully")
}

// Verify godoc
// @Summary Mark an account as verified and notify its owner
// @Tags Users
// @Param id path string true "Account ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/verify/{id} [patch]
func (u *UserController) Verify(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := u.userService.Verify(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, user, "User verified")
}

// Delete godoc
// @Summary Delete an account
// @Tags Users
// @Param id path string true "Account ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/delete/{id} [delete]
func (u *UserController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := u.userService.Delete(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "User deleted")
}

// Prompt godoc
// @Summary Ask the logistics assistant about current orders
// @Description Falls back to the raw order context when no model answer is available.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body request_models.PromptRequest true "Email and optional question"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/prompt [post]
func (u *UserController) Prompt(c *gin.Context) {
	var req request_models.PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	res, err := u.insightService.Insights(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, res, "Insights generated")
}
