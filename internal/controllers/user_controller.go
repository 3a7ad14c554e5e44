package controllers

import (
	"net/http"

	"github.com/cloudstay/rental-service/internal/dtos"
	"github.com/cloudstay/rental-service/internal/services"
	"github.com/cloudstay/rental-service/internal/utils"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// ListUsersHandler -> GET /api/users
func (c *UserController) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	list, err := c.users.ListAll(r.Context())
	if err != nil {
		respondServiceError(w, err, "Failed to list users")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GetUserHandler -> GET /api/users/{id}
func (c *UserController) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	u, err := c.users.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to fetch user")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, u)
}

// UpdateUserHandler -> PUT /api/users/{id}
func (c *UserController) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dtos.UserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	u, err := c.users.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err, "Failed to update user")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, u)
}

// DeleteUserHandler -> DELETE /api/users/{id}
func (c *UserController) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := c.users.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err, "Failed to delete user")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "User deleted"})
}
