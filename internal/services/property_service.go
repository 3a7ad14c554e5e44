package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cloudstay/rental-service/internal/config"
	"github.com/cloudstay/rental-service/internal/dtos"
	"github.com/cloudstay/rental-service/internal/models"
	"github.com/cloudstay/rental-service/internal/repositories"
	"github.com/cloudstay/rental-service/internal/utils"
)

type PropertyService struct {
	cfg        *config.Config
	properties repositories.PropertyRepository
	bedrooms   repositories.BedroomRepository
	reviews    repositories.ReviewRepository
}

func NewPropertyService(
	cfg *config.Config,
	properties repositories.PropertyRepository,
	bedrooms repositories.BedroomRepository,
	reviews repositories.ReviewRepository,
) *PropertyService {
	return &PropertyService{cfg: cfg, properties: properties, bedrooms: bedrooms, reviews: reviews}
}

func (s *PropertyService) Create(ctx context.Context, req *dtos.PropertyRequest) (*models.Property, error) {
	prop := propertyFromRequest(req)
	prop.ID = uuid.New()

	if err := s.properties.Create(ctx, prop); err != nil {
		return nil, err
	}

	if len(req.Bedrooms) > 0 {
		list := make([]models.Bedroom, 0, len(req.Bedrooms))
		for _, dto := range req.Bedrooms {
			list = append(list, bedroomFromRequest(prop.ID, dto))
		}
		if err := s.bedrooms.CreateMany(ctx, list); err != nil {
			return nil, err
		}
		prop.Bedrooms = make([]*models.Bedroom, 0, len(list))
		for i := range list {
			prop.Bedrooms = append(prop.Bedrooms, &list[i])
		}
	}
	return prop, nil
}

// Get returns the property with its bedrooms attached.
func (s *PropertyService) Get(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	prop, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, fmt.Errorf("%w: property %s", utils.ErrNotFound, id)
	}
	prop.Bedrooms, err = s.bedrooms.ListByPropertyID(ctx, id)
	if err != nil {
		return nil, err
	}
	return prop, nil
}

// Search applies the caller's filters. When the verified-only policy flag is
// on, unverified listings never leave the backend regardless of the query.
func (s *PropertyService) Search(ctx context.Context, f repositories.PropertyFilter) ([]*models.Property, error) {
	if s.cfg.LDFlag_RequireVerifiedProperties {
		f.VerifiedOnly = true
	}
	return s.properties.Search(ctx, f)
}

func (s *PropertyService) Update(ctx context.Context, id uuid.UUID, req *dtos.PropertyRequest) (*models.Property, error) {
	return s.updateWithRetry(ctx, id, req)
}

func (s *PropertyService) updateWithRetry(ctx context.Context, id uuid.UUID, req *dtos.PropertyRequest) (*models.Property, error) {
	err := s.properties.UpdateWithRetry(ctx, id, func(p *models.Property) error {
		applyPropertyRequest(p, req)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *PropertyService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.bedrooms.DeleteByPropertyID(ctx, id); err != nil {
		return err
	}
	return s.properties.Delete(ctx, id)
}

/* ---------- mapping helpers ---------- */

func propertyFromRequest(req *dtos.PropertyRequest) *models.Property {
	p := &models.Property{}
	applyPropertyRequest(p, req)
	return p
}

func applyPropertyRequest(p *models.Property, req *dtos.PropertyRequest) {
	p.Title = req.Title
	p.Description = req.Description
	p.Price = req.Price
	p.SecurityDeposit = req.SecurityDeposit
	p.Currency = req.Currency
	p.Country = req.Country
	p.Latitude = req.Latitude
	p.Longitude = req.Longitude
	p.Type = models.PropertyType(req.Type)
	p.Amenities = req.Amenities
	p.Utilities = req.Utilities
	p.Overview = models.Overview{
		Bedrooms:           req.Overview.Bedrooms,
		Bathrooms:          req.Overview.Bathrooms,
		SquareFeet:         req.Overview.SquareFeet,
		Kitchen:            req.Overview.Kitchen,
		YearOfConstruction: req.Overview.YearOfConstruction,
		RoomType:           models.OccupancyType(req.Overview.RoomType),
		KitchenType:        models.OccupancyType(req.Overview.KitchenType),
		BathroomType:       models.OccupancyType(req.Overview.BathroomType),
	}
	p.RentDetails = req.RentDetails
	p.TermsOfStay = req.TermsOfStay
	p.CancellationPolicy = req.CancellationPolicy
	p.Location = req.Location
	p.City = req.City
	p.Locality = req.Locality
	p.Images = req.Images
	p.Verified = req.Verified
	p.OnSiteVerification = req.OnSiteVerification
	p.MinimumStayDuration = req.MinimumStayDuration
	p.AvailableFrom = req.AvailableFrom
	p.NearbyUniversities = req.NearbyUniversities
	p.BookingOptions = models.BookingOptions{
		AllowSecurityDeposit:  req.BookingOptions.AllowSecurityDeposit,
		AllowFirstRent:        req.BookingOptions.AllowFirstRent,
		AllowFirstAndLastRent: req.BookingOptions.AllowFirstAndLastRent,
	}
	p.InstantBooking = req.InstantBooking
	p.BookByEnquiry = req.BookByEnquiry
}

func bedroomFromRequest(propID uuid.UUID, dto dtos.BedroomDTO) models.Bedroom {
	return models.Bedroom{
		ID:              uuid.New(),
		PropertyID:      propID,
		Name:            dto.Name,
		Rent:            dto.Rent,
		SizeSqFt:        dto.SizeSqFt,
		Furnished:       dto.Furnished,
		PrivateWashroom: dto.PrivateWashroom,
		SharedWashroom:  dto.SharedWashroom,
		SharedKitchen:   dto.SharedKitchen,
		Images:          dto.Images,
		AvailableFrom:   dto.AvailableFrom,
		Lease:           dto.Lease,
		Floor:           dto.Floor,
		Note:            dto.Note,
		Status:          models.BedroomStatusAvailable,
	}
}
