package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"tourmarket/apperrors"
	"tourmarket/models"
)

// MemoryStore is a concurrency-safe in-memory implementation of Store. It
// mirrors the GormStore semantics (ordering, precondition checks, atomic
// composite writes) and backs the service tests.
type MemoryStore struct {
	mu sync.RWMutex

	users         map[uuid.UUID]models.User
	guides        map[uuid.UUID]models.Guide
	guidePrograms map[uuid.UUID][]uuid.UUID
	programs      map[uuid.UUID]models.Program
	tiers         map[uuid.UUID]models.PricingTier
	auctions      map[uuid.UUID]models.Auction
	bids          []models.Bid
	bookings      map[uuid.UUID]models.Booking
	requests      map[uuid.UUID]models.GuideProfileChangeRequest
	packages      map[uuid.UUID]models.TokenPackage
	tokenTxs      []models.TokenTransaction
	reviews       map[uuid.UUID]models.Review
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[uuid.UUID]models.User),
		guides:        make(map[uuid.UUID]models.Guide),
		guidePrograms: make(map[uuid.UUID][]uuid.UUID),
		programs:      make(map[uuid.UUID]models.Program),
		tiers:         make(map[uuid.UUID]models.PricingTier),
		auctions:      make(map[uuid.UUID]models.Auction),
		bookings:      make(map[uuid.UUID]models.Booking),
		requests:      make(map[uuid.UUID]models.GuideProfileChangeRequest),
		packages:      make(map[uuid.UUID]models.TokenPackage),
		reviews:       make(map[uuid.UUID]models.Review),
	}
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// ---- users ----

func (m *MemoryStore) CreateUser(u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ensureID(&u.ID)
	if u.Role == "" {
		u.Role = models.RoleTourist
	}
	u.CreatedAt = time.Now()
	m.users[u.ID] = *u
	return nil
}

func (m *MemoryStore) GetUser(id uuid.UUID) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, apperrors.NotFound("user %s not found", id)
	}
	return &user, nil
}

func (m *MemoryStore) GetUserByTelegramID(telegramID string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.TelegramID != nil && *user.TelegramID == telegramID {
			u := user
			return &u, nil
		}
	}
	return nil, apperrors.NotFound("user with telegram id %s not found", telegramID)
}

func (m *MemoryStore) GetUserByEmail(email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.Email != nil && *user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, apperrors.NotFound("user with email %s not found", email)
}

func (m *MemoryStore) UpdateUserProfile(id uuid.UUID, firstName, lastName, username *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return apperrors.NotFound("user %s not found", id)
	}
	if firstName != nil {
		user.FirstName = *firstName
	}
	if lastName != nil {
		user.LastName = lastName
	}
	if username != nil {
		user.Username = username
	}
	m.users[id] = user
	return nil
}

// ---- guides ----

func (m *MemoryStore) CreateGuide(g *models.Guide) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g.CreatedAt = time.Now()
	m.guides[g.UserID] = *g
	return nil
}

func (m *MemoryStore) GetGuide(userID uuid.UUID) (*models.Guide, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	guide, ok := m.guides[userID]
	if !ok {
		return nil, apperrors.NotFound("guide %s not found", userID)
	}
	guide.Images = append([]string{}, guide.Images...)
	if user, ok := m.users[userID]; ok {
		guide.User = user
	}
	for _, programID := range m.guidePrograms[userID] {
		if program, ok := m.programs[programID]; ok {
			p := program
			guide.SelectedPrograms = append(guide.SelectedPrograms, &p)
		}
	}
	return &guide, nil
}

func (m *MemoryStore) ListPendingGuides() ([]models.Guide, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	guides := []models.Guide{}
	for _, guide := range m.guides {
		if !guide.IsApproved {
			if user, ok := m.users[guide.UserID]; ok {
				guide.User = user
			}
			guides = append(guides, guide)
		}
	}
	return guides, nil
}

func (m *MemoryStore) UpdateGuideDirect(userID uuid.UUID, patch GuidePatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	guide, ok := m.guides[userID]
	if !ok {
		return apperrors.NotFound("guide %s not found", userID)
	}
	if patch.PhoneNumber != nil {
		guide.PhoneNumber = patch.PhoneNumber
	}
	if patch.Email != nil {
		guide.Email = patch.Email
	}
	if patch.IsActive != nil {
		guide.IsActive = *patch.IsActive
	}
	if patch.Images != nil {
		guide.Images = append([]string{}, patch.Images...)
	}
	m.guides[userID] = guide
	return nil
}

func (m *MemoryStore) SetGuidePrograms(userID uuid.UUID, programIDs []uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.guidePrograms[userID] = append([]uuid.UUID{}, programIDs...)
	return nil
}

func (m *MemoryStore) SetGuideApproval(userID uuid.UUID, approved bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	guide, ok := m.guides[userID]
	if !ok {
		return apperrors.NotFound("guide %s not found", userID)
	}
	user, ok := m.users[userID]
	if !ok {
		return apperrors.NotFound("user %s not found", userID)
	}
	guide.IsApproved = approved
	if approved {
		user.Role = models.RoleGuide
	} else {
		user.Role = models.RoleTourist
	}
	m.guides[userID] = guide
	m.users[userID] = user
	return nil
}

func (m *MemoryStore) CreateChangeRequest(r *models.GuideProfileChangeRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ensureID(&r.ID)
	if r.Status == "" {
		r.Status = models.ChangeStatusPending
	}
	r.CreatedAt = time.Now()
	m.requests[r.ID] = *r
	return nil
}

func (m *MemoryStore) GetChangeRequest(id uuid.UUID) (*models.GuideProfileChangeRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	request, ok := m.requests[id]
	if !ok {
		return nil, apperrors.NotFound("change request %s not found", id)
	}
	if guide, ok := m.guides[request.GuideID]; ok {
		request.Guide = guide
	}
	return &request, nil
}

func (m *MemoryStore) ListPendingChangeRequests() ([]models.GuideProfileChangeRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	requests := []models.GuideProfileChangeRequest{}
	for _, request := range m.requests {
		if request.Status == models.ChangeStatusPending {
			requests = append(requests, request)
		}
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
	return requests, nil
}

func (m *MemoryStore) ResolveChangeRequest(id uuid.UUID, approve bool, comment *string) (*models.GuideProfileChangeRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	request, ok := m.requests[id]
	if !ok {
		return nil, apperrors.NotFound("change request %s not found", id)
	}
	if request.Status != models.ChangeStatusPending {
		return nil, apperrors.BadRequest("change request has already been resolved with status %s", request.Status)
	}

	if approve {
		guide, ok := m.guides[request.GuideID]
		if !ok {
			return nil, apperrors.NotFound("guide %s not found", request.GuideID)
		}
		if request.Bio != nil {
			guide.Bio = request.Bio
		}
		if len(request.Images) > 0 {
			guide.Images = append(append([]string{}, guide.Images...), request.Images...)
		}
		m.guides[request.GuideID] = guide
		request.Status = models.ChangeStatusApproved
	} else {
		request.Status = models.ChangeStatusRejected
	}
	if comment != nil {
		request.AdminComment = comment
	}
	m.requests[id] = request

	resolved := request
	if guide, ok := m.guides[request.GuideID]; ok {
		resolved.Guide = guide
	}
	return &resolved, nil
}

// ---- programs ----

func (m *MemoryStore) CreateProgram(p *models.Program) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ensureID(&p.ID)
	p.CreatedAt = time.Now()
	m.programs[p.ID] = *p
	return nil
}

func (m *MemoryStore) GetProgram(id uuid.UUID) (*models.Program, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	program, ok := m.programs[id]
	if !ok {
		return nil, apperrors.NotFound("program %s not found", id)
	}
	program.PricingTiers = m.tiersOf(id)
	return &program, nil
}

func (m *MemoryStore) GetBookableProgram(id uuid.UUID) (*models.Program, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	program, ok := m.programs[id]
	if !ok || !program.IsActive || !program.IsApproved {
		return nil, apperrors.NotFound("program %s not found or not available for booking", id)
	}
	program.PricingTiers = m.tiersOf(id)
	return &program, nil
}

func (m *MemoryStore) tiersOf(programID uuid.UUID) []models.PricingTier {
	tiers := []models.PricingTier{}
	for _, tier := range m.tiers {
		if tier.ProgramID == programID {
			tiers = append(tiers, tier)
		}
	}
	sort.Slice(tiers, func(i, j int) bool {
		if tiers[i].MinPeople != tiers[j].MinPeople {
			return tiers[i].MinPeople < tiers[j].MinPeople
		}
		return tiers[i].PricePerPerson < tiers[j].PricePerPerson
	})
	return tiers
}

func (m *MemoryStore) ListPublishedPrograms() ([]models.Program, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	programs := []models.Program{}
	for _, program := range m.programs {
		if program.IsActive && program.IsApproved {
			program.PricingTiers = m.tiersOf(program.ID)
			programs = append(programs, program)
		}
	}
	sort.Slice(programs, func(i, j int) bool {
		return programs[i].CreatedAt.After(programs[j].CreatedAt)
	})
	return programs, nil
}

func (m *MemoryStore) CountPrograms(ids []uuid.UUID) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, id := range ids {
		if _, ok := m.programs[id]; ok {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStore) SetProgramApproval(id uuid.UUID, approved bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	program, ok := m.programs[id]
	if !ok {
		return apperrors.NotFound("program %s not found", id)
	}
	program.IsApproved = approved
	m.programs[id] = program
	return nil
}

// ---- auctions ----

func (m *MemoryStore) CreateAuction(a *models.Auction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ensureID(&a.ID)
	if a.Status == "" {
		a.Status = models.AuctionStatusOpen
	}
	a.CreatedAt = time.Now()
	m.auctions[a.ID] = *a
	return nil
}

func (m *MemoryStore) GetAuction(id uuid.UUID) (*models.Auction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	auction, ok := m.auctions[id]
	if !ok {
		return nil, apperrors.NotFound("auction %s not found", id)
	}
	auction.Bids = m.bidsOf(id, nil)
	if user, ok := m.users[auction.CreatorID]; ok {
		auction.Creator = user
	}
	return &auction, nil
}

// bidsOf returns the auction's bids ordered by price descending, equal prices
// resolved earliest-created first. When bidderID is set only that bidder's
// bids are returned.
func (m *MemoryStore) bidsOf(auctionID uuid.UUID, bidderID *uuid.UUID) []models.Bid {
	bids := []models.Bid{}
	for _, bid := range m.bids {
		if bid.AuctionID != auctionID {
			continue
		}
		if bidderID != nil && bid.BidderID != *bidderID {
			continue
		}
		if user, ok := m.users[bid.BidderID]; ok {
			bid.Bidder = user
		}
		bids = append(bids, bid)
	}
	sort.SliceStable(bids, func(i, j int) bool {
		if bids[i].Price != bids[j].Price {
			return bids[i].Price > bids[j].Price
		}
		return bids[i].CreatedAt.Before(bids[j].CreatedAt)
	})
	return bids
}

func (m *MemoryStore) ListActiveAuctions(now time.Time) ([]models.Auction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	auctions := []models.Auction{}
	for _, auction := range m.auctions {
		if auction.Status == models.AuctionStatusOpen && auction.ExpiresAt.After(now) {
			auction.Bids = m.bidsOf(auction.ID, nil)
			auctions = append(auctions, auction)
		}
	}
	sortAuctionsByExpiry(auctions)
	return auctions, nil
}

func (m *MemoryStore) ListAuctionsByCreator(creatorID uuid.UUID) ([]models.Auction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	auctions := []models.Auction{}
	for _, auction := range m.auctions {
		if auction.CreatorID == creatorID {
			auction.Bids = m.bidsOf(auction.ID, nil)
			auctions = append(auctions, auction)
		}
	}
	sortAuctionsByExpiry(auctions)
	return auctions, nil
}

func (m *MemoryStore) ListBiddedAuctions(bidderID uuid.UUID) ([]models.Auction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := map[uuid.UUID]bool{}
	auctions := []models.Auction{}
	for _, bid := range m.bids {
		if bid.BidderID != bidderID || seen[bid.AuctionID] {
			continue
		}
		seen[bid.AuctionID] = true
		if auction, ok := m.auctions[bid.AuctionID]; ok {
			auction.Bids = m.bidsOf(auction.ID, &bidderID)
			auctions = append(auctions, auction)
		}
	}
	sort.SliceStable(auctions, func(i, j int) bool {
		openI := auctions[i].Status == models.AuctionStatusOpen
		openJ := auctions[j].Status == models.AuctionStatusOpen
		if openI != openJ {
			return openI
		}
		return auctions[i].ExpiresAt.Before(auctions[j].ExpiresAt)
	})
	return auctions, nil
}

func (m *MemoryStore) ListProgramAuctions(programID uuid.UUID, now time.Time) ([]models.Auction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	auctions := []models.Auction{}
	for _, auction := range m.auctions {
		if auction.ProgramID != nil && *auction.ProgramID == programID &&
			auction.Status == models.AuctionStatusOpen && auction.ExpiresAt.After(now) {
			auction.Bids = m.bidsOf(auction.ID, nil)
			auctions = append(auctions, auction)
		}
	}
	sortAuctionsByExpiry(auctions)
	return auctions, nil
}

func sortAuctionsByExpiry(auctions []models.Auction) {
	sort.SliceStable(auctions, func(i, j int) bool {
		return auctions[i].ExpiresAt.Before(auctions[j].ExpiresAt)
	})
}

func (m *MemoryStore) UpdateAuction(id uuid.UUID, patch AuctionPatch) (*models.Auction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	auction, ok := m.auctions[id]
	if !ok {
		return nil, apperrors.NotFound("auction %s not found", id)
	}
	if auction.Status != models.AuctionStatusOpen {
		return nil, apperrors.BadRequest("cannot update auction with status %s", auction.Status)
	}
	if m.bidCount(id) > 0 {
		return nil, apperrors.BadRequest("cannot update auction once bids have been placed")
	}
	if patch.Title != nil {
		auction.Title = *patch.Title
	}
	if patch.Description != nil {
		auction.Description = *patch.Description
	}
	if patch.Location != nil {
		auction.Location = *patch.Location
	}
	if patch.StartDate != nil {
		auction.StartDate = *patch.StartDate
	}
	if patch.NumberOfPeople != nil {
		auction.NumberOfPeople = *patch.NumberOfPeople
	}
	if patch.Budget != nil {
		auction.Budget = patch.Budget
	}
	if patch.ProgramID != nil {
		auction.ProgramID = patch.ProgramID
	}
	if patch.ClearProgram {
		auction.ProgramID = nil
	}
	if patch.ExpiresAt != nil {
		auction.ExpiresAt = *patch.ExpiresAt
	}
	m.auctions[id] = auction
	updated := auction
	return &updated, nil
}

func (m *MemoryStore) bidCount(auctionID uuid.UUID) int {
	count := 0
	for _, bid := range m.bids {
		if bid.AuctionID == auctionID {
			count++
		}
	}
	return count
}

func (m *MemoryStore) DeleteAuction(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	auction, ok := m.auctions[id]
	if !ok {
		return apperrors.NotFound("auction %s not found", id)
	}
	if auction.Status != models.AuctionStatusOpen {
		return apperrors.BadRequest("cannot delete auction with status %s", auction.Status)
	}
	if m.bidCount(id) > 0 {
		return apperrors.BadRequest("cannot delete auction once bids have been placed")
	}
	delete(m.auctions, id)
	return nil
}

func (m *MemoryStore) CloseAuction(id uuid.UUID, winningBidID *uuid.UUID) (*models.Auction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	auction, ok := m.auctions[id]
	if !ok || auction.Status != models.AuctionStatusOpen {
		return nil, apperrors.NotFound("active auction %s not found", id)
	}
	if winningBidID != nil {
		found := false
		for i, bid := range m.bids {
			if bid.ID == *winningBidID && bid.AuctionID == id {
				m.bids[i].IsAccepted = true
				found = true
				break
			}
		}
		if !found {
			return nil, apperrors.BadRequest("invalid winning bid selected")
		}
	}
	auction.Status = models.AuctionStatusClosed
	m.auctions[id] = auction

	closed := auction
	closed.Bids = []models.Bid{}
	for _, bid := range m.bids {
		if bid.AuctionID == id && bid.IsAccepted {
			if user, ok := m.users[bid.BidderID]; ok {
				bid.Bidder = user
			}
			closed.Bids = append(closed.Bids, bid)
		}
	}
	return &closed, nil
}

func (m *MemoryStore) CloseExpiredAuctions(now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var affected int64
	for id, auction := range m.auctions {
		if auction.Status == models.AuctionStatusOpen && !auction.ExpiresAt.After(now) {
			auction.Status = models.AuctionStatusClosed
			m.auctions[id] = auction
			affected++
		}
	}
	return affected, nil
}

// ---- bids ----

func (m *MemoryStore) CreateBid(b *models.Bid) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, bid := range m.bids {
		if bid.AuctionID == b.AuctionID && bid.BidderID == b.BidderID {
			return apperrors.BadRequest("you already have a bid on this auction, update your existing bid instead")
		}
	}
	ensureID(&b.ID)
	b.CreatedAt = time.Now()
	m.bids = append(m.bids, *b)
	return nil
}

func (m *MemoryStore) GetBid(id uuid.UUID) (*models.Bid, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, bid := range m.bids {
		if bid.ID == id {
			if auction, ok := m.auctions[bid.AuctionID]; ok {
				a := auction
				bid.Auction = &a
			}
			return &bid, nil
		}
	}
	return nil, apperrors.NotFound("bid %s not found", id)
}

func (m *MemoryStore) GetBidByAuctionAndBidder(auctionID, bidderID uuid.UUID) (*models.Bid, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, bid := range m.bids {
		if bid.AuctionID == auctionID && bid.BidderID == bidderID {
			return &bid, nil
		}
	}
	return nil, apperrors.NotFound("bid for auction %s by %s not found", auctionID, bidderID)
}

func (m *MemoryStore) DeleteBid(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, bid := range m.bids {
		if bid.ID == id {
			m.bids = append(m.bids[:i], m.bids[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MemoryStore) ListBidsForAuction(auctionID uuid.UUID) ([]models.Bid, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bidsOf(auctionID, nil), nil
}

func (m *MemoryStore) ListBidsByBidder(bidderID uuid.UUID) ([]models.Bid, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	bids := []models.Bid{}
	for _, bid := range m.bids {
		if bid.BidderID == bidderID {
			if auction, ok := m.auctions[bid.AuctionID]; ok {
				a := auction
				bid.Auction = &a
			}
			bids = append(bids, bid)
		}
	}
	sort.SliceStable(bids, func(i, j int) bool {
		return bids[i].CreatedAt.After(bids[j].CreatedAt)
	})
	return bids, nil
}

// ---- bookings ----

func (m *MemoryStore) CreateBooking(b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ensureID(&b.ID)
	if b.Status == "" {
		b.Status = models.BookingStatusPending
	}
	b.CreatedAt = time.Now()
	m.bookings[b.ID] = *b
	return nil
}

func (m *MemoryStore) GetBooking(id uuid.UUID) (*models.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, apperrors.NotFound("booking %s not found", id)
	}
	if program, ok := m.programs[booking.ProgramID]; ok {
		booking.Program = program
	}
	if booking.PricingTierID != nil {
		if tier, ok := m.tiers[*booking.PricingTierID]; ok {
			t := tier
			booking.PricingTier = &t
		}
	}
	return &booking, nil
}

func (m *MemoryStore) UpdateBookingStatus(id uuid.UUID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[id]
	if !ok {
		return apperrors.NotFound("booking %s not found", id)
	}
	booking.Status = status
	m.bookings[id] = booking
	return nil
}

func (m *MemoryStore) SetBookingVoucherURL(id uuid.UUID, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[id]
	if !ok {
		return apperrors.NotFound("booking %s not found", id)
	}
	booking.VoucherURL = &url
	m.bookings[id] = booking
	return nil
}

func (m *MemoryStore) ListBookingsByTourist(touristID uuid.UUID) ([]models.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	bookings := []models.Booking{}
	for _, booking := range m.bookings {
		if booking.TouristID == touristID {
			if program, ok := m.programs[booking.ProgramID]; ok {
				booking.Program = program
			}
			bookings = append(bookings, booking)
		}
	}
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}

func (m *MemoryStore) ListBookingsByGuide(guideID uuid.UUID) ([]models.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	bookings := []models.Booking{}
	for _, booking := range m.bookings {
		program, ok := m.programs[booking.ProgramID]
		if !ok || program.GuideID != guideID {
			continue
		}
		booking.Program = program
		bookings = append(bookings, booking)
	}
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}

// ---- pricing tiers ----

func (m *MemoryStore) ListTiers(programID uuid.UUID) ([]models.PricingTier, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tiersOf(programID), nil
}

func (m *MemoryStore) CreateTier(t *models.PricingTier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, tier := range m.tiers {
		if tier.ProgramID != t.ProgramID {
			continue
		}
		if t.MinPeople <= tier.MaxPeople && t.MaxPeople >= tier.MinPeople {
			return apperrors.BadRequest("tier overlaps with existing tier %q (%d-%d people)", tier.Title, tier.MinPeople, tier.MaxPeople)
		}
	}
	ensureID(&t.ID)
	t.CreatedAt = time.Now()
	m.tiers[t.ID] = *t
	return nil
}

func (m *MemoryStore) GetTier(id uuid.UUID) (*models.PricingTier, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tier, ok := m.tiers[id]
	if !ok {
		return nil, apperrors.NotFound("pricing tier %s not found", id)
	}
	if program, ok := m.programs[tier.ProgramID]; ok {
		tier.Program = program
	}
	return &tier, nil
}

func (m *MemoryStore) UpdateTier(id uuid.UUID, patch TierPatch) (*models.PricingTier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tier, ok := m.tiers[id]
	if !ok {
		return nil, apperrors.NotFound("pricing tier %s not found", id)
	}
	if patch.Title != nil {
		tier.Title = *patch.Title
	}
	if patch.Description != nil {
		tier.Description = *patch.Description
	}
	if patch.MinPeople != nil {
		tier.MinPeople = *patch.MinPeople
	}
	if patch.MaxPeople != nil {
		tier.MaxPeople = *patch.MaxPeople
	}
	if patch.PricePerPerson != nil {
		tier.PricePerPerson = *patch.PricePerPerson
	}
	if patch.IsActive != nil {
		tier.IsActive = *patch.IsActive
	}
	m.tiers[id] = tier
	updated := tier
	return &updated, nil
}

func (m *MemoryStore) DeleteTier(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tiers, id)
	return nil
}

// ---- tokens ----

func (m *MemoryStore) ListTokenPackages() ([]models.TokenPackage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	packages := []models.TokenPackage{}
	for _, pkg := range m.packages {
		if pkg.IsActive {
			packages = append(packages, pkg)
		}
	}
	sort.Slice(packages, func(i, j int) bool {
		return packages[i].TokenAmount < packages[j].TokenAmount
	})
	return packages, nil
}

func (m *MemoryStore) GetTokenPackage(id uuid.UUID) (*models.TokenPackage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pkg, ok := m.packages[id]
	if !ok || !pkg.IsActive {
		return nil, apperrors.NotFound("token package %s not found", id)
	}
	return &pkg, nil
}

// AddTokenPackage seeds a package. This method is intended for tests only.
func (m *MemoryStore) AddTokenPackage(pkg models.TokenPackage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ensureID(&pkg.ID)
	m.packages[pkg.ID] = pkg
}

func (m *MemoryStore) PurchaseTokens(guideID uuid.UUID, pkg models.TokenPackage) (*models.TokenTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	guide, ok := m.guides[guideID]
	if !ok {
		return nil, apperrors.NotFound("guide %s not found", guideID)
	}
	guide.TokenBalance += pkg.TokenAmount
	m.guides[guideID] = guide

	transaction := models.TokenTransaction{
		ID:          uuid.New(),
		GuideID:     guideID,
		Type:        models.TokenTransactionPurchase,
		Amount:      pkg.TokenAmount,
		Description: pkg.Name,
		CreatedAt:   time.Now(),
	}
	m.tokenTxs = append(m.tokenTxs, transaction)
	return &transaction, nil
}

func (m *MemoryStore) SpendTokens(guideID uuid.UUID, amount int, description string) (*models.TokenTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	guide, ok := m.guides[guideID]
	if !ok {
		return nil, apperrors.NotFound("guide %s not found", guideID)
	}
	if guide.TokenBalance < amount {
		return nil, apperrors.BadRequest("insufficient token balance: have %d, need %d", guide.TokenBalance, amount)
	}
	guide.TokenBalance -= amount
	m.guides[guideID] = guide

	transaction := models.TokenTransaction{
		ID:          uuid.New(),
		GuideID:     guideID,
		Type:        models.TokenTransactionSpend,
		Amount:      amount,
		Description: description,
		CreatedAt:   time.Now(),
	}
	m.tokenTxs = append(m.tokenTxs, transaction)
	return &transaction, nil
}

func (m *MemoryStore) ListTokenTransactions(guideID uuid.UUID) ([]models.TokenTransaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	transactions := []models.TokenTransaction{}
	for _, transaction := range m.tokenTxs {
		if transaction.GuideID == guideID {
			transactions = append(transactions, transaction)
		}
	}
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
	})
	return transactions, nil
}

// ---- reviews ----

func (m *MemoryStore) CreateReview(r *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, review := range m.reviews {
		if review.BookingID == r.BookingID {
			return apperrors.BadRequest("a review for this booking has already been submitted")
		}
	}
	ensureID(&r.ID)
	r.CreatedAt = time.Now()
	m.reviews[r.ID] = *r

	if guide, ok := m.guides[r.GuideID]; ok {
		var sum, count int
		for _, review := range m.reviews {
			if review.GuideID == r.GuideID {
				sum += review.Rating
				count++
			}
		}
		guide.AvgRating = float32(sum) / float32(count)
		m.guides[r.GuideID] = guide
	}
	return nil
}

func (m *MemoryStore) ListReviewsByGuide(guideID uuid.UUID) ([]models.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	reviews := []models.Review{}
	for _, review := range m.reviews {
		if review.GuideID == guideID {
			reviews = append(reviews, review)
		}
	}
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews, nil
}
