package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hospilog/internal/models/request_models"
	"hospilog/internal/models/response_models"
	"hospilog/internal/services"
	"hospilog/pkg/middleware"
	"hospilog/pkg/utils"
)

// SessionCookie describes the HttpOnly cookie that carries the session token.
type SessionCookie struct {
	Name   string
	Domain string
	Secure bool
	MaxAge time.Duration
}

type AccountController struct {
	accountService services.AccountServiceInterface
	cookie         SessionCookie
}

func NewAccountController(accountService services.AccountServiceInterface, cookie SessionCookie) *AccountController {
	if cookie.Name == "" {
		cookie.Name = "session_token"
	}
	return &AccountController{
		accountService: accountService,
		cookie:         cookie,
	}
}

// Login godoc
// @Summary Check credentials and start two-factor sign in
// @Description Emails a one-time code and returns a short-lived step-up token. Never returns a session.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /auth/login [post]
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	res, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, res, "Verification code sent")
}

// VerifyTwoFactor godoc
// @Summary Exchange step-up token and code for a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.VerifyStepUpRequest true "Step-up token and code"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/verify2fa [post]
func (a *AccountController) VerifyTwoFactor(c *gin.Context) {
	var req request_models.VerifyStepUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	res, err := a.accountService.VerifyStepUp(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	a.setSessionCookie(c, res.SessionToken, int(a.cookie.MaxAge.Seconds()))
	utils.RespondSuccess(c, res, "Login successful")
}

// Register godoc
// @Summary Register a new account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.SignUpRequest true "Account registration payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /auth/register [post]
func (a *AccountController) Register(c *gin.Context) {
	var req request_models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	account, err := a.accountService.Register(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, account, "Account Created")
}

// SessionToken godoc
// @Summary Resolve the current session
// @Description Accepts the session token as a Bearer header or the session cookie.
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/session-token [get]
func (a *AccountController) SessionToken(c *gin.Context) {
	token := middleware.SessionToken(c, a.cookie.Name)

	account, err := a.accountService.SessionLookup(c.Request.Context(), token)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.NewAccountResponse(account), "Session is valid")
}

// ForgotPassword godoc
// @Summary Request a password reset
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.RequestForgotPassword true "Forgot password payload"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /auth/forgot-password [post]
func (a *AccountController) ForgotPassword(c *gin.Context) {
	var req request_models.RequestForgotPassword
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	res, err := a.accountService.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, res, "Reset link sent")
}

// ResetPassword godoc
// @Summary Reset the password with a reset token
// @Tags Auth
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Param request body request_models.ResetPasswordRequest true "New password"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/reset-password/{token} [post]
func (a *AccountController) ResetPassword(c *gin.Context) {
	var req request_models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	account, err := a.accountService.ResetPassword(c.Request.Context(), c.Param("token"), req.Password)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, account, "Password has been reset successfully")
}

// Logout godoc
// @Summary Clear the session cookie
// @Tags Auth
// @Success 200 {object} utils.APIResponse
// @Router /auth/logout [post]
func (a *AccountController) Logout(c *gin.Context) {
	a.setSessionCookie(c, "", -1)
	utils.RespondSuccess(c, nil, "Logged out")
}

func (a *AccountController) setSessionCookie(c *gin.Context, value string, maxAge int) {
	if a.cookie.Secure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(a.cookie.Name, value, maxAge, "/", a.cookie.Domain, a.cookie.Secure, true)
}
