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

func newReviewFixture(t *testing.T) (*repository.MemoryStore, *ReviewService, uuid.UUID, uuid.UUID, *models.Booking) {
	t.Helper()
	store := repository.NewMemoryStore()

	tourist := models.User{FirstName: "Anna", Role: models.RoleTourist}
	require.NoError(t, store.CreateUser(&tourist))
	guideUser := models.User{FirstName: "Boris", Role: models.RoleGuide}
	require.NoError(t, store.CreateUser(&guideUser))
	require.NoError(t, store.CreateGuide(&models.Guide{UserID: guideUser.ID, IsActive: true, IsApproved: true}))

	program := models.Program{GuideID: guideUser.ID, Title: "Old town walk", BasePrice: 40, IsActive: true, IsApproved: true}
	require.NoError(t, store.CreateProgram(&program))

	booking := models.Booking{
		ProgramID:      program.ID,
		TouristID:      tourist.ID,
		StartDate:      time.Now().Add(-48 * time.Hour),
		NumberOfPeople: 2,
		Status:         models.BookingStatusCompleted,
		PricePerPerson: 40,
		TotalPrice:     80,
	}
	require.NoError(t, store.CreateBooking(&booking))

	return store, NewReviewService(store, store), tourist.ID, guideUser.ID, &booking
}

func TestCreateReview(t *testing.T) {
	store, svc, touristID, guideID, booking := newReviewFixture(t)

	review, err := svc.CreateReview(touristID, booking.ID, 5, "Great trip")
	require.NoError(t, err)
	require.Equal(t, guideID, review.GuideID)

	guide, err := store.GetGuide(guideID)
	require.NoError(t, err)
	require.Equal(t, float32(5), guide.AvgRating)

	// One review per booking.
	_, err = svc.CreateReview(touristID, booking.ID, 4, "Second thoughts")
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCreateReviewRatingBounds(t *testing.T) {
	_, svc, touristID, _, booking := newReviewFixture(t)

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.CreateReview(touristID, booking.ID, rating, "")
		require.ErrorIs(t, err, apperrors.ErrBadRequest)
	}
}

func TestCreateReviewRequiresCompletedBooking(t *testing.T) {
	store, svc, touristID, _, booking := newReviewFixture(t)

	require.NoError(t, store.UpdateBookingStatus(booking.ID, models.BookingStatusConfirmed))
	_, err := svc.CreateReview(touristID, booking.ID, 5, "Too early")
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCreateReviewByStrangerFails(t *testing.T) {
	_, svc, _, _, booking := newReviewFixture(t)

	_, err := svc.CreateReview(uuid.New(), booking.ID, 5, "Not my trip")
	require.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestAvgRatingAcrossBookings(t *testing.T) {
	store, svc, touristID, guideID, booking := newReviewFixture(t)

	_, err := svc.CreateReview(touristID, booking.ID, 5, "Great")
	require.NoError(t, err)

	second := models.Booking{
		ProgramID:      booking.ProgramID,
		TouristID:      touristID,
		StartDate:      time.Now().Add(-24 * time.Hour),
		NumberOfPeople: 1,
		Status:         models.BookingStatusCompleted,
		PricePerPerson: 40,
		TotalPrice:     40,
	}
	require.NoError(t, store.CreateBooking(&second))

	_, err = svc.CreateReview(touristID, second.ID, 2, "Rainy day")
	require.NoError(t, err)

	guide, err := store.GetGuide(guideID)
	require.NoError(t, err)
	require.Equal(t, float32(3.5), guide.AvgRating)
}
