package controllers

import (
	"net/http"

	"github.com/cloudstay/rental-service/internal/dtos"
	"github.com/cloudstay/rental-service/internal/services"
	"github.com/cloudstay/rental-service/internal/utils"
)

// ReviewController serves both property reviews and the wishlist.
type ReviewController struct {
	reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{reviews: reviews}
}

// CreateReviewHandler -> POST /api/reviews
func (c *ReviewController) CreateReviewHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}
	var req dtos.ReviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	rv, err := c.reviews.CreateReview(r.Context(), userID, &req)
	if err != nil {
		respondServiceError(w, err, "Failed to create review")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, rv)
}

// ListPropertyReviewsHandler -> GET /api/reviews/property/{propertyId}
func (c *ReviewController) ListPropertyReviewsHandler(w http.ResponseWriter, r *http.Request) {
	propID, ok := pathUUID(w, r, "propertyId")
	if !ok {
		return
	}
	list, err := c.reviews.ListReviews(r.Context(), propID)
	if err != nil {
		respondServiceError(w, err, "Failed to list reviews")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// DeleteReviewHandler -> DELETE /api/reviews/{id}
func (c *ReviewController) DeleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := c.reviews.DeleteReview(r.Context(), id); err != nil {
		respondServiceError(w, err, "Failed to delete review")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Review deleted"})
}

// AddFavoriteHandler -> POST /api/wishlist
func (c *ReviewController) AddFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}
	var req dtos.FavoriteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	f, err := c.reviews.AddFavorite(r.Context(), userID, &req)
	if err != nil {
		respondServiceError(w, err, "Failed to add to wishlist")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, f)
}

// ListFavoritesHandler -> GET /api/wishlist
func (c *ReviewController) ListFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}
	list, err := c.reviews.ListFavorites(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err, "Failed to list wishlist")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// RemoveFavoriteHandler -> DELETE /api/wishlist/{propertyId}
func (c *ReviewController) RemoveFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}
	propID, ok := pathUUID(w, r, "propertyId")
	if !ok {
		return
	}
	if err := c.reviews.RemoveFavorite(r.Context(), userID, propID); err != nil {
		respondServiceError(w, err, "Failed to remove from wishlist")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Removed from wishlist"})
}
