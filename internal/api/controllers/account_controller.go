package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invisifeed/internal/models/request_models"
	"invisifeed/internal/services"
	"invisifeed/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// Login godoc
// @Summary Login with email and password
// @Description Authenticate an owner and return a JWT token
// @Tags Account
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Email and password"
// @Success 200 {object} response_models.AccountLoginResponse
// @Failure 401 {object} utils.APIResponse
// @Router /accounts/login [post]
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resp, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Login successful")
}

// Register godoc
// @Summary Register a new owner account
// @Tags Account
// @Accept json
// @Produce json
// @Param request body request_models.SignUpRequest true "Account details"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /accounts/register [post]
func (a *AccountController) Register(c *gin.Context) {
	var req request_models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := a.accountService.CreateAccount(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Account created successfully")
}

// RequestPasswordReset godoc
// @Summary Request a password reset OTP
// @Description Sends a one-time code to the given email if an account exists
// @Tags Account
// @Accept json
// @Produce json
// @Param request body request_models.RequestForgotPassword true "Account email"
// @Success 200 {object} utils.APIResponse
// @Router /accounts/forgot-password [post]
func (a *AccountController) RequestPasswordReset(c *gin.Context) {
	var req request_models.RequestForgotPassword
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := a.accountService.ForgotPassword(req.Email); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "If the email exists, a reset code has been sent")
}

// VerifyOtp godoc
// @Summary Verify a password reset OTP without consuming it
// @Tags Account
// @Accept json
// @Produce json
// @Param request body request_models.RequestVerifyOtpToken true "Email and OTP"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /accounts/verify-otp [post]
func (a *AccountController) VerifyOtp(c *gin.Context) {
	var req request_models.RequestVerifyOtpToken
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := a.accountService.VerifyOtpToken(req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Code verified")
}

// ResetPassword godoc
// @Summary Reset password with a previously issued OTP
// @Tags Account
// @Accept json
// @Produce json
// @Param request body request_models.ForgotPasswordRequest true "Email, token and new password"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /accounts/reset-password [post]
func (a *AccountController) ResetPassword(c *gin.Context) {
	var req request_models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := a.accountService.VerifyAndConsumeResetToken(req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Password updated successfully")
}

// GetProfile godoc
// @Summary Get the authenticated owner's profile
// @Tags Account
// @Produce json
// @Success 200 {object} response_models.OwnerProfileResponse
// @Security BearerAuth
// @Router /accounts/profile [get]
func (a *AccountController) GetProfile(c *gin.Context) {
	ownerID := c.GetString("owner_id")

	profile, err := a.accountService.GetProfile(c.Request.Context(), ownerID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, profile, "Profile fetched successfully")
}

// UpdateProfile godoc
// @Summary Update the authenticated owner's profile
// @Description Updates business details; a changed GSTIN is re-verified
// @Tags Account
// @Accept json
// @Produce json
// @Param request body request_models.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} response_models.OwnerProfileResponse
// @Security BearerAuth
// @Router /accounts/profile [put]
func (a *AccountController) UpdateProfile(c *gin.Context) {
	ownerID := c.GetString("owner_id")

	var req request_models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	profile, err := a.accountService.UpdateProfile(c.Request.Context(), ownerID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, profile, "Profile updated successfully")
}
