package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"codeberg.org/rolodex/server/internal/errors"
	"codeberg.org/rolodex/server/rolodex/users"
)

// DeleteUserHandler godoc
// @Summary Delete a user account
// @Description Removes a user and all their contacts. Admin only.
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/admin/users/{id} [delete]
// @Security BearerAuth
func DeleteUserHandler(store UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			errors.BadRequest(c, "invalid user ID", err)
			return
		}

		user, err := store.FindByID(c.Request.Context(), id)
		if err != nil {
			errors.InternalError(c, "failed to fetch user", err)
			return
		}

		if user == nil {
			errors.NotFound(c, "user")
			return
		}

		if err := store.Delete(c.Request.Context(), id); err != nil {
			errors.InternalError(c, "failed to delete user", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
	}
}

// UpdateRoleHandler godoc
// @Summary Change a user's role
// @Description Assigns the user or admin role. Outstanding cached
// @Description identity snapshots for the target keep the old role until
// @Description their TTL expires. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body RoleRequest true "New role"
// @Success 200 {object} users.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/admin/users/{id}/role [patch]
// @Security BearerAuth
func UpdateRoleHandler(store UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			errors.BadRequest(c, "invalid user ID", err)
			return
		}

		var req RoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		user, err := store.Update(c.Request.Context(), id, users.Patch{Role: &req.Role})
		if err != nil {
			errors.InternalError(c, "failed to update role", err)
			return
		}

		if user == nil {
			errors.NotFound(c, "user")
			return
		}

		c.JSON(http.StatusOK, user)
	}
}
