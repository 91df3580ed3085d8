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

func newAuctionFixture(t *testing.T) (*repository.MemoryStore, *AuctionService, uuid.UUID, uuid.UUID) {
	t.Helper()
	store := repository.NewMemoryStore()

	tourist := models.User{FirstName: "Anna", Role: models.RoleTourist}
	require.NoError(t, store.CreateUser(&tourist))
	guideUser := models.User{FirstName: "Boris", Role: models.RoleGuide}
	require.NoError(t, store.CreateUser(&guideUser))
	require.NoError(t, store.CreateGuide(&models.Guide{UserID: guideUser.ID, IsActive: true, IsApproved: true}))

	return store, NewAuctionService(store, store), tourist.ID, guideUser.ID
}

func openAuction(t *testing.T, store *repository.MemoryStore, creatorID uuid.UUID, expiresIn time.Duration) *models.Auction {
	t.Helper()
	auction := models.Auction{
		CreatorID:      creatorID,
		Title:          "Weekend in the mountains",
		Description:    "Looking for a two day hiking trip",
		Location:       "Almaty",
		StartDate:      time.Now().Add(14 * 24 * time.Hour),
		NumberOfPeople: 4,
		Status:         models.AuctionStatusOpen,
		ExpiresAt:      time.Now().Add(expiresIn),
	}
	require.NoError(t, store.CreateAuction(&auction))
	return &auction
}

func TestCreateAuctionValidation(t *testing.T) {
	_, svc, touristID, _ := newAuctionFixture(t)

	tests := []struct {
		name  string
		input CreateAuctionInput
	}{
		{
			name:  "missing title",
			input: CreateAuctionInput{Description: "d", Location: "l", StartDate: time.Now(), NumberOfPeople: 2, ExpiresAt: time.Now().Add(time.Hour)},
		},
		{
			name:  "zero people",
			input: CreateAuctionInput{Title: "t", Description: "d", Location: "l", StartDate: time.Now(), ExpiresAt: time.Now().Add(time.Hour)},
		},
		{
			name:  "expiry in the past",
			input: CreateAuctionInput{Title: "t", Description: "d", Location: "l", StartDate: time.Now(), NumberOfPeople: 2, ExpiresAt: time.Now().Add(-time.Hour)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateAuction(touristID, tc.input)
			require.ErrorIs(t, err, apperrors.ErrBadRequest)
		})
	}
}

func TestCreateAuctionRejectsDirectOnlyProgram(t *testing.T) {
	store, svc, touristID, guideID := newAuctionFixture(t)

	program := models.Program{
		GuideID:     guideID,
		Title:       "City walk",
		BasePrice:   50,
		BookingType: models.BookingTypeDirectOnly,
		IsActive:    true,
		IsApproved:  true,
	}
	require.NoError(t, store.CreateProgram(&program))

	_, err := svc.CreateAuction(touristID, CreateAuctionInput{
		Title:          "City walk auction",
		Description:    "d",
		Location:       "Tbilisi",
		StartDate:      time.Now().Add(24 * time.Hour),
		NumberOfPeople: 2,
		ProgramID:      &program.ID,
		ExpiresAt:      time.Now().Add(time.Hour),
	})
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestPlaceBidValidation(t *testing.T) {
	store, svc, touristID, guideID := newAuctionFixture(t)
	auction := openAuction(t, store, touristID, time.Hour)

	tests := []struct {
		name  string
		input PlaceBidInput
	}{
		{name: "zero price", input: PlaceBidInput{Price: 0, Description: "offer"}},
		{name: "negative price", input: PlaceBidInput{Price: -10, Description: "offer"}},
		{name: "empty description", input: PlaceBidInput{Price: 100}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.PlaceBid(auction.ID, guideID, tc.input)
			require.ErrorIs(t, err, apperrors.ErrBadRequest)
		})
	}
}

func TestPlaceBidOnClosedAuctionFails(t *testing.T) {
	store, svc, touristID, guideID := newAuctionFixture(t)
	auction := openAuction(t, store, touristID, time.Hour)
	_, err := store.CloseAuction(auction.ID, nil)
	require.NoError(t, err)

	_, err = svc.PlaceBid(auction.ID, guideID, PlaceBidInput{Price: 100, Description: "offer"})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPlaceBidOnExpiredAuctionFails(t *testing.T) {
	store, svc, touristID, guideID := newAuctionFixture(t)
	auction := openAuction(t, store, touristID, -time.Minute)

	_, err := svc.PlaceBid(auction.ID, guideID, PlaceBidInput{Price: 100, Description: "offer"})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPlaceBidTwiceFails(t *testing.T) {
	store, svc, touristID, guideID := newAuctionFixture(t)
	auction := openAuction(t, store, touristID, time.Hour)

	_, err := svc.PlaceBid(auction.ID, guideID, PlaceBidInput{Price: 100, Description: "first offer"})
	require.NoError(t, err)

	_, err = svc.PlaceBid(auction.ID, guideID, PlaceBidInput{Price: 90, Description: "second offer"})
	require.ErrorIs(t, err, apperrors.ErrBadRequest)

	bids, err := svc.GetAuctionBids(auction.ID)
	require.NoError(t, err)
	require.Len(t, bids, 1)
}

func TestUpdateAuctionWithBidsFails(t *testing.T) {
	store, svc, touristID, guideID := newAuctionFixture(t)
	auction := openAuction(t, store, touristID, time.Hour)

	_, err := svc.PlaceBid(auction.ID, guideID, PlaceBidInput{Price: 100, Description: "offer"})
	require.NoError(t, err)

	newTitle := "Changed"
	_, err = svc.UpdateAuction(auction.ID, touristID, UpdateAuctionInput{Title: &newTitle})
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestUpdateAuctionByStrangerFails(t *testing.T) {
	store, svc, touristID, _ := newAuctionFixture(t)
	auction := openAuction(t, store, touristID, time.Hour)

	stranger := models.User{FirstName: "Eve"}
	require.NoError(t, store.CreateUser(&stranger))

	newTitle := "Hijacked"
	_, err := svc.UpdateAuction(auction.ID, stranger.ID, UpdateAuctionInput{Title: &newTitle})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteAuctionWithBidsFails(t *testing.T) {
	store, svc, touristID, guideID := newAuctionFixture(t)
	auction := openAuction(t, store, touristID, time.Hour)

	_, err := svc.PlaceBid(auction.ID, guideID, PlaceBidInput{Price: 100, Description: "offer"})
	require.NoError(t, err)

	err = svc.DeleteAuction(auction.ID, touristID)
	require.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.GetAuction(auction.ID)
	require.NoError(t, err)
}

func TestCloseAuctionWithForeignBidFails(t *testing.T) {
	store, svc, touristID, guideID := newAuctionFixture(t)
	auction := openAuction(t, store, touristID, time.Hour)
	other := openAuction(t, store, touristID, time.Hour)

	foreignBid, err := svc.PlaceBid(other.ID, guideID, PlaceBidInput{Price: 100, Description: "offer elsewhere"})
	require.NoError(t, err)

	_, err = svc.CloseAuction(auction.ID, touristID, &foreignBid.ID)
	require.ErrorIs(t, err, apperrors.ErrBadRequest)

	reloaded, err := svc.GetAuction(auction.ID)
	require.NoError(t, err)
	require.Equal(t, models.AuctionStatusOpen, reloaded.Status)
}

func TestCloseAuctionSelectsWinner(t *testing.T) {
	store, svc, touristID, guideID := newAuctionFixture(t)
	auction := openAuction(t, store, touristID, time.Hour)

	secondGuide := models.User{FirstName: "Clara", Role: models.RoleGuide}
	require.NoError(t, store.CreateUser(&secondGuide))
	require.NoError(t, store.CreateGuide(&models.Guide{UserID: secondGuide.ID, IsActive: true, IsApproved: true}))

	cheap, err := svc.PlaceBid(auction.ID, guideID, PlaceBidInput{Price: 500, Description: "budget trip"})
	require.NoError(t, err)
	_, err = svc.PlaceBid(auction.ID, secondGuide.ID, PlaceBidInput{Price: 700, Description: "premium trip"})
	require.NoError(t, err)

	closed, err := svc.CloseAuction(auction.ID, touristID, &cheap.ID)
	require.NoError(t, err)
	require.Equal(t, models.AuctionStatusClosed, closed.Status)

	bids, err := svc.GetAuctionBids(auction.ID)
	require.NoError(t, err)
	accepted := 0
	for _, bid := range bids {
		if bid.IsAccepted {
			accepted++
			require.Equal(t, cheap.ID, bid.ID)
			require.Equal(t, float64(500), bid.Price)
		}
	}
	require.Equal(t, 1, accepted)
}

func TestCloseAuctionTwiceFails(t *testing.T) {
	store, svc, touristID, _ := newAuctionFixture(t)
	auction := openAuction(t, store, touristID, time.Hour)

	_, err := svc.CloseAuction(auction.ID, touristID, nil)
	require.NoError(t, err)

	_, err = svc.CloseAuction(auction.ID, touristID, nil)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCancelBidOnClosedAuctionFails(t *testing.T) {
	store, svc, touristID, guideID := newAuctionFixture(t)
	auction := openAuction(t, store, touristID, time.Hour)

	bid, err := svc.PlaceBid(auction.ID, guideID, PlaceBidInput{Price: 100, Description: "offer"})
	require.NoError(t, err)
	_, err = svc.CloseAuction(auction.ID, touristID, nil)
	require.NoError(t, err)

	err = svc.CancelBid(bid.ID, guideID)
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestHighestBidPerAuctionTieBreak(t *testing.T) {
	store, svc, touristID, guideID := newAuctionFixture(t)
	auction := openAuction(t, store, touristID, time.Hour)

	secondGuide := models.User{FirstName: "Clara", Role: models.RoleGuide}
	require.NoError(t, store.CreateUser(&secondGuide))
	require.NoError(t, store.CreateGuide(&models.Guide{UserID: secondGuide.ID, IsActive: true, IsApproved: true}))

	first, err := svc.PlaceBid(auction.ID, guideID, PlaceBidInput{Price: 300, Description: "early offer"})
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = svc.PlaceBid(auction.ID, secondGuide.ID, PlaceBidInput{Price: 300, Description: "late offer"})
	require.NoError(t, err)

	summaries, err := svc.GetHighestBidPerAuction(touristID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.True(t, summaries[0].HasBids)
	require.Equal(t, 2, summaries[0].BidCount)
	// Equal prices resolve to the earliest bid.
	require.Equal(t, first.ID, summaries[0].HighestBid.ID)
}

func TestListActiveAuctionsSkipsExpired(t *testing.T) {
	store, svc, touristID, _ := newAuctionFixture(t)
	live := openAuction(t, store, touristID, time.Hour)
	openAuction(t, store, touristID, -time.Minute)

	auctions, err := svc.ListActiveAuctions()
	require.NoError(t, err)
	require.Len(t, auctions, 1)
	require.Equal(t, live.ID, auctions[0].ID)
}
