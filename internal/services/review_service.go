package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cloudstay/rental-service/internal/dtos"
	"github.com/cloudstay/rental-service/internal/models"
	"github.com/cloudstay/rental-service/internal/repositories"
	"github.com/cloudstay/rental-service/internal/utils"
)

type ReviewService struct {
	reviews    repositories.ReviewRepository
	favorites  repositories.FavoriteRepository
	properties repositories.PropertyRepository
}

func NewReviewService(
	reviews repositories.ReviewRepository,
	favorites repositories.FavoriteRepository,
	properties repositories.PropertyRepository,
) *ReviewService {
	return &ReviewService{reviews: reviews, favorites: favorites, properties: properties}
}

func (s *ReviewService) CreateReview(ctx context.Context, userID uuid.UUID, req *dtos.ReviewRequest) (*models.Review, error) {
	propID, err := s.resolveProperty(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	rv := &models.Review{
		ID:         uuid.New(),
		UserID:     userID,
		PropertyID: propID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *ReviewService) ListReviews(ctx context.Context, propID uuid.UUID) ([]*models.Review, error) {
	return s.reviews.ListByPropertyID(ctx, propID)
}

func (s *ReviewService) DeleteReview(ctx context.Context, id uuid.UUID) error {
	return s.reviews.Delete(ctx, id)
}

// AddFavorite is idempotent from the caller's perspective: adding an
// already-wishlisted property is reported as a conflict, not a crash.
func (s *ReviewService) AddFavorite(ctx context.Context, userID uuid.UUID, req *dtos.FavoriteRequest) (*models.Favorite, error) {
	propID, err := s.resolveProperty(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	f := &models.Favorite{
		ID:         uuid.New(),
		UserID:     userID,
		PropertyID: propID,
	}
	if err := s.favorites.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *ReviewService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]*models.Property, error) {
	favs, err := s.favorites.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Property, 0, len(favs))
	for _, f := range favs {
		p, err := s.properties.GetByID(ctx, f.PropertyID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *ReviewService) RemoveFavorite(ctx context.Context, userID, propID uuid.UUID) error {
	return s.favorites.Delete(ctx, userID, propID)
}

func (s *ReviewService) resolveProperty(ctx context.Context, raw string) (uuid.UUID, error) {
	propID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad propertyId", utils.ErrInvalidPayload)
	}
	prop, err := s.properties.GetByID(ctx, propID)
	if err != nil {
		return uuid.Nil, err
	}
	if prop == nil {
		return uuid.Nil, fmt.Errorf("%w: property %s", utils.ErrNotFound, propID)
	}
	return propID, nil
}
