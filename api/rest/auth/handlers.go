package auth

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/rolodex/server/internal/auth"
	"codeberg.org/rolodex/server/internal/errors"
)

// RegisterHandler godoc
// @Summary Register a new account
// @Description Creates an unconfirmed account and sends a confirmation email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account data"
// @Success 201 {object} users.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /api/v1/auth/register [post]
func RegisterHandler(flow *auth.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		user, err := flow.Register(c.Request.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			switch {
			case stderrors.Is(err, auth.ErrDuplicateEmail):
				errors.Conflict(c, "User with this email already exists")
			case stderrors.Is(err, auth.ErrDuplicateName):
				errors.Conflict(c, "User with this username already exists")
			default:
				errors.InternalError(c, "failed to register user", err)
			}

			return
		}

		c.JSON(http.StatusCreated, user)
	}
}

// LoginHandler godoc
// @Summary Log in with username and password
// @Description Exchanges credentials for a bearer access token
// @Tags auth
// @Accept x-www-form-urlencoded
// @Accept json
// @Produce json
// @Param username formData string true "Display name"
// @Param password formData string true "Password"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/auth/login [post]
func LoginHandler(flow *auth.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBind(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		token, err := flow.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			switch {
			case stderrors.Is(err, auth.ErrInvalidCredentials):
				errors.Unauthorized(c, "Incorrect username or password")
			case stderrors.Is(err, auth.ErrEmailNotConfirmed):
				errors.Unauthorized(c, "Email not confirmed")
			default:
				errors.InternalError(c, "failed to log in", err)
			}

			return
		}

		c.JSON(http.StatusOK, TokenResponse{
			AccessToken: token,
			TokenType:   "bearer",
		})
	}
}

// ConfirmEmailHandler godoc
// @Summary Confirm an email address
// @Description Validates the emailed token and marks the account confirmed
// @Tags auth
// @Produce json
// @Param token path string true "Email confirmation token"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /api/v1/auth/confirm_email/{token} [get]
func ConfirmEmailHandler(flow *auth.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		message, err := flow.ConfirmEmail(c.Request.Context(), c.Param("token"))
		if err != nil {
			switch {
			case stderrors.Is(err, auth.ErrInvalidToken):
				errors.Unprocessable(c, "Invalid token")
			case stderrors.Is(err, auth.ErrUserNotFound):
				errors.BadRequest(c, "Verification error", nil)
			default:
				errors.InternalError(c, "failed to confirm email", err)
			}

			return
		}

		c.JSON(http.StatusCreated, MessageResponse{Message: message})
	}
}

// RequestResetHandler godoc
// @Summary Request a password reset email
// @Description Sends a reset email to the account with this address
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetRequest true "Account email"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/auth/request_reset [post]
func RequestResetHandler(flow *auth.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		err := flow.RequestPasswordReset(c.Request.Context(), req.Email)
		if err != nil {
			if stderrors.Is(err, auth.ErrUserNotFound) {
				errors.NotFound(c, "user")
				return
			}

			errors.InternalError(c, "failed to request password reset", err)

			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "Check your email for a reset link"})
	}
}
