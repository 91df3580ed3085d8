package services

import (
	"time"

	"github.com/google/uuid"

	"tourmarket/apperrors"
	"tourmarket/models"
	"tourmarket/repository"
)

// BookingService handles direct bookings: pricing-tier resolution on create
// and role-gated status transitions afterwards.
type BookingService struct {
	bookings repository.BookingStore
	programs repository.ProgramStore
}

func NewBookingService(bookings repository.BookingStore, programs repository.ProgramStore) *BookingService {
	return &BookingService{bookings: bookings, programs: programs}
}

type CreateBookingInput struct {
	ProgramID      uuid.UUID
	StartDate      time.Time
	NumberOfPeople int
	PricingTierID  *uuid.UUID
}

var validBookingStatuses = map[string]bool{
	models.BookingStatusPending:   true,
	models.BookingStatusConfirmed: true,
	models.BookingStatusCancelled: true,
	models.BookingStatusCompleted: true,
}

// CreateBooking books a program directly. Price resolution: an explicit tier
// must cover the group size; otherwise the first active tier covering the
// size wins, falling back to the program's base price.
func (s *BookingService) CreateBooking(touristID uuid.UUID, input CreateBookingInput) (*models.Booking, error) {
	if input.ProgramID == uuid.Nil || input.StartDate.IsZero() || input.NumberOfPeople <= 0 {
		return nil, apperrors.BadRequest("program id, start date, and number of people are required")
	}

	program, err := s.programs.GetBookableProgram(input.ProgramID)
	if err != nil {
		return nil, err
	}

	pricePerPerson := program.BasePrice
	var tierID *uuid.UUID

	if input.PricingTierID != nil {
		var selected *models.PricingTier
		for i := range program.PricingTiers {
			if program.PricingTiers[i].ID == *input.PricingTierID {
				selected = &program.PricingTiers[i]
				break
			}
		}
		if selected == nil {
			return nil, apperrors.BadRequest("specified pricing tier not found")
		}
		if !selected.Contains(input.NumberOfPeople) {
			return nil, apperrors.BadRequest("number of people (%d) doesn't match the selected pricing tier (%d-%d)",
				input.NumberOfPeople, selected.MinPeople, selected.MaxPeople)
		}
		pricePerPerson = selected.PricePerPerson
		tierID = &selected.ID
	} else {
		for i := range program.PricingTiers {
			tier := &program.PricingTiers[i]
			if tier.IsActive && tier.Contains(input.NumberOfPeople) {
				pricePerPerson = tier.PricePerPerson
				tierID = &tier.ID
				break
			}
		}
	}

	booking := models.Booking{
		ProgramID:      input.ProgramID,
		TouristID:      touristID,
		StartDate:      input.StartDate,
		NumberOfPeople: input.NumberOfPeople,
		Status:         models.BookingStatusPending,
		PricingTierID:  tierID,
		PricePerPerson: pricePerPerson,
		TotalPrice:     pricePerPerson * float64(input.NumberOfPeople),
	}
	if err := s.bookings.CreateBooking(&booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateBookingStatus transitions a booking. A tourist may only cancel their
// own booking; the owning guide may move it anywhere except back to PENDING.
func (s *BookingService) UpdateBookingStatus(bookingID, actorID uuid.UUID, actorRole, status string) (*models.Booking, error) {
	if !validBookingStatuses[status] {
		return nil, apperrors.BadRequest("invalid booking status %q", status)
	}

	booking, err := s.bookings.GetBooking(bookingID)
	if err != nil {
		return nil, err
	}

	switch actorRole {
	case models.RoleTourist:
		if booking.TouristID != actorID {
			return nil, apperrors.Forbidden("you are not authorized to update this booking")
		}
		if status != models.BookingStatusCancelled {
			return nil, apperrors.Forbidden("tourists can only cancel bookings")
		}
	case models.RoleGuide:
		if booking.Program.GuideID != actorID {
			return nil, apperrors.Forbidden("you are not authorized to update this booking")
		}
		if status == models.BookingStatusPending {
			return nil, apperrors.BadRequest("cannot set booking back to pending status")
		}
	default:
		return nil, apperrors.Forbidden("unauthorized access")
	}

	if err := s.bookings.UpdateBookingStatus(bookingID, status); err != nil {
		return nil, err
	}
	return s.bookings.GetBooking(bookingID)
}

// CancelBooking is the tourist-only shortcut; permitted from PENDING or
// CONFIRMED only.
func (s *BookingService) CancelBooking(bookingID, touristID uuid.UUID) error {
	booking, err := s.bookings.GetBooking(bookingID)
	if err != nil {
		return err
	}
	if booking.TouristID != touristID {
		return apperrors.Forbidden("you are not authorized to cancel this booking")
	}
	if booking.Status != models.BookingStatusPending && booking.Status != models.BookingStatusConfirmed {
		return apperrors.BadRequest("cannot cancel a booking with status %s", booking.Status)
	}
	return s.bookings.UpdateBookingStatus(bookingID, models.BookingStatusCancelled)
}

func (s *BookingService) GetBooking(bookingID, actorID uuid.UUID, actorRole string) (*models.Booking, error) {
	booking, err := s.bookings.GetBooking(bookingID)
	if err != nil {
		return nil, err
	}
	switch actorRole {
	case models.RoleTourist:
		if booking.TouristID != actorID {
			return nil, apperrors.Forbidden("you are not authorized to view this booking")
		}
	case models.RoleGuide:
		if booking.Program.GuideID != actorID {
			return nil, apperrors.Forbidden("you are not authorized to view this booking")
		}
	case models.RoleAdmin, models.RoleSuperAdmin:
	default:
		return nil, apperrors.Forbidden("unauthorized access")
	}
	return booking, nil
}

func (s *BookingService) GetUserBookings(userID uuid.UUID, role string) ([]models.Booking, error) {
	if role == models.RoleGuide {
		return s.bookings.ListBookingsByGuide(userID)
	}
	return s.bookings.ListBookingsByTourist(userID)
}
