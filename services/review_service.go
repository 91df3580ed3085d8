package services

import (
	"github.com/google/uuid"

	"tourmarket/apperrors"
	"tourmarket/models"
	"tourmarket/repository"
)

// ReviewService accepts one review per completed booking and keeps the
// guide's average rating current.
type ReviewService struct {
	reviews  repository.ReviewStore
	bookings repository.BookingStore
}

func NewReviewService(reviews repository.ReviewStore, bookings repository.BookingStore) *ReviewService {
	return &ReviewService{reviews: reviews, bookings: bookings}
}

func (s *ReviewService) CreateReview(touristID, bookingID uuid.UUID, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.BadRequest("rating must be between 1 and 5")
	}

	booking, err := s.bookings.GetBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.TouristID != touristID {
		return nil, apperrors.Forbidden("you are not the tourist for this booking")
	}
	if booking.Status != models.BookingStatusCompleted {
		return nil, apperrors.BadRequest("reviews can only be submitted for completed bookings")
	}

	review := models.Review{
		BookingID: bookingID,
		TouristID: touristID,
		GuideID:   booking.Program.GuideID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.reviews.CreateReview(&review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *ReviewService) GetGuideReviews(guideID uuid.UUID) ([]models.Review, error) {
	return s.reviews.ListReviewsByGuide(guideID)
}
