package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fieldtrack/internal/errors"
	"fieldtrack/internal/services"
)

// UserHandler handles user administration requests. All routes behind it are
// admin-gated.
type UserHandler struct {
	userService services.UserServicer
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService services.UserServicer) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUserRequest represents the user creation payload. The new user is
// created under the administrator's own brand.
type CreateUserRequest struct {
	Username   string `json:"username" binding:"required,max=80"`
	Password   string `json:"password" binding:"required,min=6,max=128"`
	Name       string `json:"name" binding:"required,max=100"`
	AccessType string `json:"access_type" binding:"omitempty,access_type"`
}

// UpdateUserRequest represents the user update payload. Empty fields are left
// untouched.
type UpdateUserRequest struct {
	Name       string `json:"name" binding:"omitempty,max=100"`
	Password   string `json:"password" binding:"omitempty,min=6,max=128"`
	AccessType string `json:"access_type" binding:"omitempty,access_type"`
}

// CreateUser handles user creation
// @Summary     Create a user
// @Description Register a new user under the administrator's brand
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body CreateUserRequest true "New user data"
// @Success     201 {object} UserResponse "User created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Admin only"
// @Failure     409 {object} ErrorResponse "Duplicate username"
// @Router      /users [post]
// @Security    BearerAuth
func (h *UserHandler) CreateUser(c *gin.Context) {
	brand, err := getBrand(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.CreateUser(req.Username, brand, req.Password, req.Name, req.AccessType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// ListUsers handles listing the brand's users
// @Summary     List users
// @Description List every user of the administrator's brand
// @Tags        users
// @Produce     json
// @Success     200 {array} UserResponse "Users"
// @Failure     403 {object} ErrorResponse "Admin only"
// @Router      /users [get]
// @Security    BearerAuth
func (h *UserHandler) ListUsers(c *gin.Context) {
	brand, err := getBrand(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	users, err := h.userService.ListUsers(brand)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

// UpdateUser handles user updates
// @Summary     Update a user
// @Description Change a user's name, password, or access level
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id path int true "User ID"
// @Param       request body UpdateUserRequest true "Fields to update"
// @Success     200 {object} UserResponse "Updated user"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /users/{id} [put]
// @Security    BearerAuth
func (h *UserHandler) UpdateUser(c *gin.Context) {
	brand, err := getBrand(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.UpdateUser(id, brand, req.Name, req.Password, req.AccessType)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser handles user deletion
// @Summary     Delete a user
// @Description Remove a user from the administrator's brand
// @Tags        users
// @Produce     json
// @Param       id path int true "User ID"
// @Success     200 {object} map[string]string "Deleted"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /users/{id} [delete]
// @Security    BearerAuth
func (h *UserHandler) DeleteUser(c *gin.Context) {
	brand, err := getBrand(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.userService.DeleteUser(id, brand); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
