package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/rolodex/server/internal/auth"
	"codeberg.org/rolodex/server/internal/errors"
	"codeberg.org/rolodex/server/internal/logger"
	"codeberg.org/rolodex/server/rolodex/users"
)

// MeHandler godoc
// @Summary Get the current user
// @Description Returns the profile of the authenticated user
// @Tags users
// @Produce json
// @Success 200 {object} users.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/users/me [get]
// @Security BearerAuth
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := auth.CurrentUser(c)
		if !ok {
			errors.Unauthorized(c, "")
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// UpdateAvatarHandler godoc
// @Summary Update the current user's avatar
// @Description Uploads the image to object storage and stores its public URL
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Avatar image"
// @Success 200 {object} users.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/users/avatar [patch]
// @Security BearerAuth
func UpdateAvatarHandler(store UserStore, uploader AvatarStore, cache auth.TokenCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := auth.CurrentUser(c)
		if !ok {
			errors.Unauthorized(c, "")
			return
		}

		header, err := c.FormFile("file")
		if err != nil {
			errors.BadRequest(c, "avatar file is required", err)
			return
		}

		file, err := header.Open()
		if err != nil {
			errors.BadRequest(c, "failed to read avatar file", err)
			return
		}
		defer file.Close()

		url, err := uploader.Upload(c.Request.Context(), user.Name, file, header.Header.Get("Content-Type"))
		if err != nil {
			errors.InternalError(c, "failed to upload avatar", err)
			return
		}

		updated, err := store.Update(c.Request.Context(), user.ID, users.Patch{Avatar: &url})
		if err != nil {
			errors.InternalError(c, "failed to update avatar", err)
			return
		}

		invalidateIdentity(c, cache)

		c.JSON(http.StatusOK, updated)
	}
}

// UpdatePasswordHandler godoc
// @Summary Change the current user's password
// @Description Replaces the stored password hash with one for the new password
// @Tags users
// @Accept json
// @Produce json
// @Param request body PasswordRequest true "New password"
// @Success 200 {object} users.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/users/password [patch]
// @Security BearerAuth
func UpdatePasswordHandler(store UserStore, cache auth.TokenCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := auth.CurrentUser(c)
		if !ok {
			errors.Unauthorized(c, "")
			return
		}

		var req PasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			errors.InternalError(c, "failed to hash password", err)
			return
		}

		updated, err := store.Update(c.Request.Context(), user.ID, users.Patch{PasswordHash: &hash})
		if err != nil {
			errors.InternalError(c, "failed to update password", err)
			return
		}

		invalidateIdentity(c, cache)

		c.JSON(http.StatusOK, updated)
	}
}

// drops the cached identity snapshot for the caller's token so the next
// request observes the mutation
func invalidateIdentity(c *gin.Context, cache auth.TokenCache) {
	if cache == nil {
		return
	}

	token := auth.BearerToken(c)
	if token == "" {
		return
	}

	if err := cache.Invalidate(c.Request.Context(), token); err != nil {
		logger.ErrorErr(err, "failed to invalidate identity cache")
	}
}
