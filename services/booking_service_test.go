package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"tourmarket/apperrors"
	"tourmarket/models"
	"tourmarket/repository"
)

func newBookingFixture(t *testing.T) (*repository.MemoryStore, *BookingService, uuid.UUID, uuid.UUID, *models.Program) {
	t.Helper()
	store := repository.NewMemoryStore()

	tourist := models.User{FirstName: "Anna", Role: models.RoleTourist}
	require.NoError(t, store.CreateUser(&tourist))
	guideUser := models.User{FirstName: "Boris", Role: models.RoleGuide}
	require.NoError(t, store.CreateUser(&guideUser))
	require.NoError(t, store.CreateGuide(&models.Guide{UserID: guideUser.ID, IsActive: true, IsApproved: true}))

	program := models.Program{
		GuideID:     guideUser.ID,
		Title:       "Desert safari",
		BasePrice:   120,
		BookingType: models.BookingTypeBoth,
		IsActive:    true,
		IsApproved:  true,
	}
	require.NoError(t, store.CreateProgram(&program))

	return store, NewBookingService(store, store), tourist.ID, guideUser.ID, &program
}

func seedTiers(t *testing.T, store *repository.MemoryStore, programID uuid.UUID) (small, large models.PricingTier) {
	t.Helper()
	small = models.PricingTier{ProgramID: programID, Title: "Small group", MinPeople: 1, MaxPeople: 4, PricePerPerson: 100, IsActive: true}
	require.NoError(t, store.CreateTier(&small))
	large = models.PricingTier{ProgramID: programID, Title: "Large group", MinPeople: 5, MaxPeople: 10, PricePerPerson: 80, IsActive: true}
	require.NoError(t, store.CreateTier(&large))
	return small, large
}

func TestCreateBookingTierPricing(t *testing.T) {
	store, svc, touristID, _, program := newBookingFixture(t)
	seedTiers(t, store, program.ID)

	tests := []struct {
		name           string
		people         int
		wantPrice      float64
		wantTotal      float64
		wantTierIsUsed bool
	}{
		{name: "six people fall into the large tier", people: 6, wantPrice: 80, wantTotal: 480, wantTierIsUsed: true},
		{name: "three people fall into the small tier", people: 3, wantPrice: 100, wantTotal: 300, wantTierIsUsed: true},
		{name: "twenty people fall back to base price", people: 20, wantPrice: 120, wantTotal: 2400},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			booking, err := svc.CreateBooking(touristID, CreateBookingInput{
				ProgramID:      program.ID,
				StartDate:      time.Now().Add(7 * 24 * time.Hour),
				NumberOfPeople: tc.people,
			})
			require.NoError(t, err)
			require.Equal(t, tc.wantPrice, booking.PricePerPerson)
			require.Equal(t, tc.wantTotal, booking.TotalPrice)
			require.Equal(t, models.BookingStatusPending, booking.Status)
			if tc.wantTierIsUsed {
				require.NotNil(t, booking.PricingTierID)
			} else {
				require.Nil(t, booking.PricingTierID)
			}
		})
	}
}

func TestCreateBookingExplicitTierMustCoverGroup(t *testing.T) {
	store, svc, touristID, _, program := newBookingFixture(t)
	small, _ := seedTiers(t, store, program.ID)

	_, err := svc.CreateBooking(touristID, CreateBookingInput{
		ProgramID:      program.ID,
		StartDate:      time.Now().Add(24 * time.Hour),
		NumberOfPeople: 6,
		PricingTierID:  &small.ID,
	})
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCreateBookingUnknownTierFails(t *testing.T) {
	_, svc, touristID, _, program := newBookingFixture(t)

	bogus := uuid.New()
	_, err := svc.CreateBooking(touristID, CreateBookingInput{
		ProgramID:      program.ID,
		StartDate:      time.Now().Add(24 * time.Hour),
		NumberOfPeople: 2,
		PricingTierID:  &bogus,
	})
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCreateBookingUnapprovedProgramFails(t *testing.T) {
	store, svc, touristID, guideID, _ := newBookingFixture(t)

	draft := models.Program{GuideID: guideID, Title: "Draft", BasePrice: 50, IsActive: true, IsApproved: false}
	require.NoError(t, store.CreateProgram(&draft))

	_, err := svc.CreateBooking(touristID, CreateBookingInput{
		ProgramID:      draft.ID,
		StartDate:      time.Now().Add(24 * time.Hour),
		NumberOfPeople: 2,
	})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func makeBooking(t *testing.T, svc *BookingService, touristID uuid.UUID, programID uuid.UUID) *models.Booking {
	t.Helper()
	booking, err := svc.CreateBooking(touristID, CreateBookingInput{
		ProgramID:      programID,
		StartDate:      time.Now().Add(24 * time.Hour),
		NumberOfPeople: 2,
	})
	require.NoError(t, err)
	return booking
}

func TestUpdateBookingStatusRoleRules(t *testing.T) {
	_, svc, touristID, guideID, program := newBookingFixture(t)
	booking := makeBooking(t, svc, touristID, program.ID)

	// A tourist may only cancel.
	_, err := svc.UpdateBookingStatus(booking.ID, touristID, models.RoleTourist, models.BookingStatusConfirmed)
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	// A stranger tourist may not touch it at all.
	_, err = svc.UpdateBookingStatus(booking.ID, uuid.New(), models.RoleTourist, models.BookingStatusCancelled)
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	// The owning guide may confirm.
	updated, err := svc.UpdateBookingStatus(booking.ID, guideID, models.RoleGuide, models.BookingStatusConfirmed)
	require.NoError(t, err)
	require.Equal(t, models.BookingStatusConfirmed, updated.Status)

	// But never back to pending.
	_, err = svc.UpdateBookingStatus(booking.ID, guideID, models.RoleGuide, models.BookingStatusPending)
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestUpdateBookingStatusRejectsUnknownStatus(t *testing.T) {
	_, svc, touristID, guideID, program := newBookingFixture(t)
	booking := makeBooking(t, svc, touristID, program.ID)

	_, err := svc.UpdateBookingStatus(booking.ID, guideID, models.RoleGuide, "SHIPPED")
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCancelBooking(t *testing.T) {
	_, svc, touristID, guideID, program := newBookingFixture(t)
	booking := makeBooking(t, svc, touristID, program.ID)

	require.NoError(t, svc.CancelBooking(booking.ID, touristID))

	// Completed bookings cannot be cancelled.
	done := makeBooking(t, svc, touristID, program.ID)
	_, err := svc.UpdateBookingStatus(done.ID, guideID, models.RoleGuide, models.BookingStatusCompleted)
	require.NoError(t, err)
	err = svc.CancelBooking(done.ID, touristID)
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestGetBookingAuthorization(t *testing.T) {
	_, svc, touristID, guideID, program := newBookingFixture(t)
	booking := makeBooking(t, svc, touristID, program.ID)

	_, err := svc.GetBooking(booking.ID, touristID, models.RoleTourist)
	require.NoError(t, err)
	_, err = svc.GetBooking(booking.ID, guideID, models.RoleGuide)
	require.NoError(t, err)
	_, err = svc.GetBooking(booking.ID, uuid.New(), models.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.GetBooking(booking.ID, uuid.New(), models.RoleTourist)
	require.ErrorIs(t, err, apperrors.ErrForbidden)
}
