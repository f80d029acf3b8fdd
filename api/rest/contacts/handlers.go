package contacts

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"codeberg.org/rolodex/server/internal/auth"
	"codeberg.org/rolodex/server/internal/errors"
	"codeberg.org/rolodex/server/rolodex/contacts"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// ListHandler godoc
// @Summary List contacts
// @Description Returns a page of the authenticated user's contacts
// @Tags contacts
// @Produce json
// @Param skip query int false "Number of contacts to skip"
// @Param limit query int false "Maximum number of contacts to return"
// @Success 200 {object} map[string][]contacts.Contact
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/contacts [get]
// @Security BearerAuth
func ListHandler(repo *contacts.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := auth.CurrentUser(c)
		if !ok {
			errors.Unauthorized(c, "")
			return
		}

		skip := intQuery(c, "skip", 0)

		limit := intQuery(c, "limit", defaultPageLimit)
		if limit > maxPageLimit {
			limit = maxPageLimit
		}

		list, err := repo.List(c.Request.Context(), user.ID, skip, limit)
		if err != nil {
			errors.InternalError(c, "failed to list contacts", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"contacts": list})
	}
}

// GetHandler godoc
// @Summary Get a contact
// @Description Returns one of the authenticated user's contacts by ID
// @Tags contacts
// @Produce json
// @Param id path int true "Contact ID"
// @Success 200 {object} contacts.Contact
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/contacts/{id} [get]
// @Security BearerAuth
func GetHandler(repo *contacts.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := auth.CurrentUser(c)
		if !ok {
			errors.Unauthorized(c, "")
			return
		}

		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			errors.BadRequest(c, "invalid contact ID", err)
			return
		}

		contact, err := repo.FindByID(c.Request.Context(), user.ID, id)
		if err != nil {
			errors.InternalError(c, "failed to fetch contact", err)
			return
		}

		if contact == nil {
			errors.NotFound(c, "contact")
			return
		}

		c.JSON(http.StatusOK, contact)
	}
}

// CreateHandler godoc
// @Summary Create a contact
// @Description Adds a contact to the authenticated user's address book
// @Tags contacts
// @Accept json
// @Produce json
// @Param request body CreateRequest true "Contact data"
// @Success 201 {object} contacts.Contact
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/contacts [post]
// @Security BearerAuth
func CreateHandler(repo *contacts.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := auth.CurrentUser(c)
		if !ok {
			errors.Unauthorized(c, "")
			return
		}

		var req CreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		birthdate, err := time.Parse("2006-01-02", req.Birthdate)
		if err != nil {
			errors.BadRequest(c, "invalid birthdate", err)
			return
		}

		contact, err := repo.Insert(c.Request.Context(), contacts.Draft{
			Name:      req.Name,
			Surname:   req.Surname,
			Email:     req.Email,
			Phone:     req.Phone,
			Birthdate: birthdate,
			Notes:     req.Notes,
			UserID:    user.ID,
		})
		if err != nil {
			errors.InternalError(c, "failed to create contact", err)
			return
		}

		c.JSON(http.StatusCreated, contact)
	}
}

// UpdateHandler godoc
// @Summary Update a contact
// @Description Applies the provided fields to one of the user's contacts
// @Tags contacts
// @Accept json
// @Produce json
// @Param id path int true "Contact ID"
// @Param request body UpdateRequest true "Fields to update"
// @Success 200 {object} contacts.Contact
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/contacts/{id} [put]
// @Security BearerAuth
func UpdateHandler(repo *contacts.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := auth.CurrentUser(c)
		if !ok {
			errors.Unauthorized(c, "")
			return
		}

		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			errors.BadRequest(c, "invalid contact ID", err)
			return
		}

		var req UpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		patch := contacts.Patch{
			Name:    req.Name,
			Surname: req.Surname,
			Email:   req.Email,
			Phone:   req.Phone,
			Notes:   req.Notes,
		}

		if req.Birthdate != nil {
			birthdate, err := time.Parse("2006-01-02", *req.Birthdate)
			if err != nil {
				errors.BadRequest(c, "invalid birthdate", err)
				return
			}

			patch.Birthdate = &birthdate
		}

		contact, err := repo.Update(c.Request.Context(), user.ID, id, patch)
		if err != nil {
			errors.InternalError(c, "failed to update contact", err)
			return
		}

		if contact == nil {
			errors.NotFound(c, "contact")
			return
		}

		c.JSON(http.StatusOK, contact)
	}
}

// DeleteHandler godoc
// @Summary Delete a contact
// @Description Removes one of the user's contacts and returns the deleted entry
// @Tags contacts
// @Produce json
// @Param id path int true "Contact ID"
// @Success 200 {object} contacts.Contact
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/contacts/{id} [delete]
// @Security BearerAuth
func DeleteHandler(repo *contacts.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := auth.CurrentUser(c)
		if !ok {
			errors.Unauthorized(c, "")
			return
		}

		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			errors.BadRequest(c, "invalid contact ID", err)
			return
		}

		contact, err := repo.Delete(c.Request.Context(), user.ID, id)
		if err != nil {
			errors.InternalError(c, "failed to delete contact", err)
			return
		}

		if contact == nil {
			errors.NotFound(c, "contact")
			return
		}

		c.JSON(http.StatusOK, contact)
	}
}

// SearchHandler godoc
// @Summary Search contacts
// @Description Searches the user's contacts by name, surname or email substring
// @Tags contacts
// @Produce json
// @Param name query string false "Name substring"
// @Param surname query string false "Surname substring"
// @Param email query string false "Email substring"
// @Success 200 {object} map[string][]contacts.Contact
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/contacts/search [get]
// @Security BearerAuth
func SearchHandler(repo *contacts.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := auth.CurrentUser(c)
		if !ok {
			errors.Unauthorized(c, "")
			return
		}

		list, err := repo.Search(c.Request.Context(), user.ID, contacts.Filter{
			Name:    c.Query("name"),
			Surname: c.Query("surname"),
			Email:   c.Query("email"),
		})
		if err != nil {
			errors.InternalError(c, "failed to search contacts", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"contacts": list})
	}
}

// UpcomingBirthdaysHandler godoc
// @Summary List upcoming birthdays
// @Description Returns contacts whose birthday falls within the next seven days
// @Tags contacts
// @Produce json
// @Success 200 {object} map[string][]contacts.Contact
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/contacts/upcoming-birthdays [get]
// @Security BearerAuth
func UpcomingBirthdaysHandler(repo *contacts.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := auth.CurrentUser(c)
		if !ok {
			errors.Unauthorized(c, "")
			return
		}

		list, err := repo.UpcomingBirthdays(c.Request.Context(), user.ID)
		if err != nil {
			errors.InternalError(c, "failed to fetch upcoming birthdays", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"contacts": list})
	}
}

func intQuery(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil || value < 0 {
		return fallback
	}

	return value
}
