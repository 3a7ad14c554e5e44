package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cloudstay/rental-service/internal/dtos"
	"github.com/cloudstay/rental-service/internal/models"
	"github.com/cloudstay/rental-service/internal/repositories"
	"github.com/cloudstay/rental-service/internal/utils"
)

type EnquiryService struct {
	enquiries  repositories.EnquiryRepository
	bookings   repositories.BookingRepository
	bedrooms   repositories.BedroomRepository
	properties repositories.PropertyRepository
	notifier   Notifier
}

func NewEnquiryService(
	enquiries repositories.EnquiryRepository,
	bookings repositories.BookingRepository,
	bedrooms repositories.BedroomRepository,
	properties repositories.PropertyRepository,
	notifier Notifier,
) *EnquiryService {
	return &EnquiryService{
		enquiries:  enquiries,
		bookings:   bookings,
		bedrooms:   bedrooms,
		properties: properties,
		notifier:   notifier,
	}
}

func (s *EnquiryService) Create(ctx context.Context, req *dtos.EnquiryRequest, userID *uuid.UUID) (*models.Enquiry, error) {
	propID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad propertyId", utils.ErrInvalidPayload)
	}
	prop, err := s.properties.GetByID(ctx, propID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, fmt.Errorf("%w: property %s", utils.ErrNotFound, propID)
	}

	e := &models.Enquiry{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        req.Name,
		Gender:      req.Gender,
		Nationality: req.Nationality,
		Email:       req.Email,
		Phone:       req.Phone,

		Address:       req.Address,
		AddressLine2:  req.AddressLine2,
		Country:       req.Country,
		StateProvince: req.StateProvince,

		LeaseDuration: req.LeaseDuration,

		UniversityName:    req.UniversityName,
		CourseName:        req.CourseName,
		UniversityAddress: req.UniversityAddress,
		EnrollmentStatus:  req.EnrollmentStatus,

		HasMedicalConditions: req.HasMedicalConditions,
		MedicalDetails:       req.MedicalDetails,

		PropertyID: propID,
		Price:      req.Price,
		Currency:   req.Currency,
		Status:     models.EnquiryStatusPending,
	}
	if e.Price == 0 {
		e.Price = prop.Price
	}
	if e.Currency == "" {
		e.Currency = prop.Currency
	}

	dob, err := parseRequiredDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}
	e.DateOfBirth = dob

	moveIn, err := parseRequiredDate(req.MoveInDate)
	if err != nil {
		return nil, err
	}
	e.MoveInDate = moveIn

	moveOut, err := parseOptionalDate(req.MoveOutDate)
	if err != nil {
		return nil, err
	}
	e.MoveOutDate = moveOut

	if req.BedroomID != "" {
		bedroomID, err := uuid.Parse(req.BedroomID)
		if err != nil {
			return nil, fmt.Errorf("%w: bad bedroomId", utils.ErrInvalidPayload)
		}
		bedroom, err := s.bedrooms.GetByID(ctx, bedroomID)
		if err != nil {
			return nil, err
		}
		if bedroom == nil || bedroom.PropertyID != propID {
			return nil, fmt.Errorf("%w: bedroom %s", utils.ErrNotFound, bedroomID)
		}
		e.BedroomID = &bedroomID
		if req.BedroomName != "" {
			e.BedroomName = &req.BedroomName
		} else {
			e.BedroomName = &bedroom.Name
		}
	}

	if err := s.enquiries.Create(ctx, e); err != nil {
		return nil, err
	}

	s.notifier.EnquiryReceived(ctx, e)
	return e, nil
}

func (s *EnquiryService) Get(ctx context.Context, id uuid.UUID) (*models.Enquiry, error) {
	e, err := s.enquiries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%w: enquiry %s", utils.ErrNotFound, id)
	}
	return e, nil
}

func (s *EnquiryService) ListAll(ctx context.Context) ([]*models.Enquiry, error) {
	return s.enquiries.ListAll(ctx)
}

func (s *EnquiryService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Enquiry, error) {
	return s.enquiries.ListByUserID(ctx, userID)
}

func (s *EnquiryService) ListByProperty(ctx context.Context, propID uuid.UUID) ([]*models.Enquiry, error) {
	return s.enquiries.ListByPropertyID(ctx, propID)
}

// UpdateStatus moves an enquiry through review. Approval places a pending
// booking hold: the bedroom is claimed immediately so it cannot be sold
// twice while the renter arranges payment offline.
func (s *EnquiryService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.EnquiryStatusType) (*models.Enquiry, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.Status == status {
		return e, nil
	}

	if status == models.EnquiryStatusApproved {
		if err := s.placeBookingHold(ctx, e); err != nil {
			return nil, err
		}
	}

	updated, err := s.enquiries.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: enquiry %s", utils.ErrNotFound, id)
	}

	s.notifier.EnquiryStatusChanged(ctx, updated)
	return updated, nil
}

func (s *EnquiryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.enquiries.Delete(ctx, id)
}

func (s *EnquiryService) placeBookingHold(ctx context.Context, e *models.Enquiry) error {
	if e.BedroomID != nil {
		if err := s.bedrooms.MarkBooked(ctx, e.PropertyID, *e.BedroomID); err != nil {
			return err
		}
	}

	var userID uuid.UUID
	if e.UserID != nil {
		userID = *e.UserID
	}
	moveIn := e.MoveInDate
	b := &models.Booking{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          e.Name,
		Email:         e.Email,
		Phone:         e.Phone,
		PropertyID:    e.PropertyID,
		BedroomID:     e.BedroomID,
		BedroomName:   e.BedroomName,
		MoveInDate:    &moveIn,
		MoveOutDate:   e.MoveOutDate,
		LeaseDuration: e.LeaseDuration,
		Price:         e.Price,
		Currency:      e.Currency,
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusPending,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		if e.BedroomID != nil {
			if rerr := s.bedrooms.MarkAvailable(ctx, e.PropertyID, *e.BedroomID); rerr != nil {
				utils.Logger.WithError(rerr).Errorf("Failed to release bedroom %s after hold failure", e.BedroomID)
			}
		}
		return err
	}
	utils.Logger.Infof("Enquiry %s approved; booking hold %s placed", e.ID, b.ID)
	return nil
}

func parseRequiredDate(s string) (time.Time, error) {
	t, err := parseOptionalDate(s)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return time.Time{}, fmt.Errorf("%w: missing date", utils.ErrInvalidPayload)
	}
	return *t, nil
}
