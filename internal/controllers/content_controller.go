package controllers

import (
	"net/http"

	"github.com/cloudstay/rental-service/internal/dtos"
	"github.com/cloudstay/rental-service/internal/services"
	"github.com/cloudstay/rental-service/internal/utils"
)

type ContentController struct {
	content *services.ContentService
}

func NewContentController(content *services.ContentService) *ContentController {
	return &ContentController{content: content}
}

/* ---------- content ---------- */

// ListContentHandler -> GET /api/content
func (c *ContentController) ListContentHandler(w http.ResponseWriter, r *http.Request) {
	list, err := c.content.ListContent(r.Context())
	if err != nil {
		respondServiceError(w, err, "Failed to list content")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GetContentHandler -> GET /api/content/{id}
func (c *ContentController) GetContentHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	item, err := c.content.GetContent(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to fetch content")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, item)
}

// CreateContentHandler -> POST /api/content
func (c *ContentController) CreateContentHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.ContentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	item, err := c.content.CreateContent(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err, "Failed to create content")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, item)
}

// UpdateContentHandler -> PUT /api/content/{id}
func (c *ContentController) UpdateContentHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dtos.ContentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	item, err := c.content.UpdateContent(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err, "Failed to update content")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, item)
}

// DeleteContentHandler -> DELETE /api/content/{id}
func (c *ContentController) DeleteContentHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := c.content.DeleteContent(r.Context(), id); err != nil {
		respondServiceError(w, err, "Failed to delete content")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Content deleted"})
}

/* ---------- categories ---------- */

// ListCategoriesHandler -> GET /api/categories
func (c *ContentController) ListCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	list, err := c.content.ListCategories(r.Context())
	if err != nil {
		respondServiceError(w, err, "Failed to list categories")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GetCategoryHandler -> GET /api/categories/{id}
func (c *ContentController) GetCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	cat, err := c.content.GetCategory(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to fetch category")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, cat)
}

// CreateCategoryHandler -> POST /api/categories
func (c *ContentController) CreateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CategoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	cat, err := c.content.CreateCategory(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err, "Failed to create category")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, cat)
}

// UpdateCategoryHandler -> PUT /api/categories/{id}
func (c *ContentController) UpdateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dtos.CategoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	cat, err := c.content.UpdateCategory(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err, "Failed to update category")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, cat)
}

// DeleteCategoryHandler -> DELETE /api/categories/{id}
func (c *ContentController) DeleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := c.content.DeleteCategory(r.Context(), id); err != nil {
		respondServiceError(w, err, "Failed to delete category")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Category deleted"})
}
