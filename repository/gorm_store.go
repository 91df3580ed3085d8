package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tourmarket/apperrors"
	"tourmarket/models"
)

// GormStore is the Postgres-backed persistence gateway. Multi-step mutations
// run inside a single transaction; bid uniqueness additionally rests on the
// composite index declared on the Bid model.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func notFoundOr(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(format, args...)
	}
	return err
}

// ---- users ----

func (s *GormStore) CreateUser(u *models.User) error {
	return s.db.Create(u).Error
}

func (s *GormStore) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "user %s not found", id)
	}
	return &user, nil
}

func (s *GormStore) GetUserByTelegramID(telegramID string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "telegram_id = ?", telegramID).Error; err != nil {
		return nil, notFoundOr(err, "user with telegram id %s not found", telegramID)
	}
	return &user, nil
}

func (s *GormStore) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, notFoundOr(err, "user with email %s not found", email)
	}
	return &user, nil
}

func (s *GormStore) UpdateUserProfile(id uuid.UUID, firstName, lastName, username *string) error {
	fields := map[string]interface{}{}
	if firstName != nil {
		fields["first_name"] = *firstName
	}
	if lastName != nil {
		fields["last_name"] = *lastName
	}
	if username != nil {
		fields["username"] = *username
	}
	if len(fields) == 0 {
		return nil
	}
	return s.db.Model(&models.User{}).Where("id = ?", id).Updates(fields).Error
}

// ---- guides ----

func (s *GormStore) CreateGuide(g *models.Guide) error {
	return s.db.Create(g).Error
}

func (s *GormStore) GetGuide(userID uuid.UUID) (*models.Guide, error) {
	var guide models.Guide
	err := s.db.Preload("User").Preload("SelectedPrograms").First(&guide, "user_id = ?", userID).Error
	if err != nil {
		return nil, notFoundOr(err, "guide %s not found", userID)
	}
	return &guide, nil
}

func (s *GormStore) ListPendingGuides() ([]models.Guide, error) {
	var guides []models.Guide
	err := s.db.Preload("User").Where("is_approved = ?", false).Find(&guides).Error
	return guides, err
}

func (s *GormStore) UpdateGuideDirect(userID uuid.UUID, patch GuidePatch) error {
	fields := map[string]interface{}{}
	if patch.PhoneNumber != nil {
		fields["phone_number"] = *patch.PhoneNumber
	}
	if patch.Email != nil {
		fields["email"] = *patch.Email
	}
	if patch.IsActive != nil {
		fields["is_active"] = *patch.IsActive
	}
	if patch.Images != nil {
		fields["images"] = patch.Images
	}
	if len(fields) == 0 {
		return nil
	}
	return s.db.Model(&models.Guide{}).Where("user_id = ?", userID).Updates(fields).Error
}

func (s *GormStore) SetGuidePrograms(userID uuid.UUID, programIDs []uuid.UUID) error {
	guide := models.Guide{UserID: userID}
	programs := make([]*models.Program, 0, len(programIDs))
	for _, id := range programIDs {
		programs = append(programs, &models.Program{ID: id})
	}
	return s.db.Model(&guide).Association("SelectedPrograms").Replace(programs)
}

func (s *GormStore) SetGuideApproval(userID uuid.UUID, approved bool) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var guide models.Guide
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&guide, "user_id = ?", userID).Error; err != nil {
			return notFoundOr(err, "guide %s not found", userID)
		}
		if err := tx.Model(&guide).Update("is_approved", approved).Error; err != nil {
			return err
		}
		role := models.RoleTourist
		if approved {
			role = models.RoleGuide
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).Update("role", role).Error
	})
}

func (s *GormStore) CreateChangeRequest(r *models.GuideProfileChangeRequest) error {
	return s.db.Create(r).Error
}

func (s *GormStore) GetChangeRequest(id uuid.UUID) (*models.GuideProfileChangeRequest, error) {
	var request models.GuideProfileChangeRequest
	err := s.db.Preload("Guide").Preload("Guide.User").First(&request, "id = ?", id).Error
	if err != nil {
		return nil, notFoundOr(err, "change request %s not found", id)
	}
	return &request, nil
}

func (s *GormStore) ListPendingChangeRequests() ([]models.GuideProfileChangeRequest, error) {
	var requests []models.GuideProfileChangeRequest
	err := s.db.Preload("Guide").Preload("Guide.User").
		Where("status = ?", models.ChangeStatusPending).
		Order("created_at desc").
		Find(&requests).Error
	return requests, err
}

func (s *GormStore) ResolveChangeRequest(id uuid.UUID, approve bool, comment *string) (*models.GuideProfileChangeRequest, error) {
	var resolved models.GuideProfileChangeRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var request models.GuideProfileChangeRequest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&request, "id = ?", id).Error; err != nil {
			return notFoundOr(err, "change request %s not found", id)
		}
		if request.Status != models.ChangeStatusPending {
			return apperrors.BadRequest("change request has already been resolved with status %s", request.Status)
		}

		status := models.ChangeStatusRejected
		if approve {
			status = models.ChangeStatusApproved

			var guide models.Guide
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&guide, "user_id = ?", request.GuideID).Error; err != nil {
				return notFoundOr(err, "guide %s not found", request.GuideID)
			}
			fields := map[string]interface{}{}
			if request.Bio != nil {
				fields["bio"] = *request.Bio
			}
			if len(request.Images) > 0 {
				fields["images"] = append(append([]string{}, guide.Images...), request.Images...)
			}
			if len(fields) > 0 {
				if err := tx.Model(&guide).Updates(fields).Error; err != nil {
					return err
				}
			}
		}

		fields := map[string]interface{}{"status": status}
		if comment != nil {
			fields["admin_comment"] = *comment
		}
		if err := tx.Model(&request).Updates(fields).Error; err != nil {
			return err
		}
		return tx.Preload("Guide").First(&resolved, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &resolved, nil
}

// ---- programs ----

func (s *GormStore) CreateProgram(p *models.Program) error {
	return s.db.Create(p).Error
}

func (s *GormStore) GetProgram(id uuid.UUID) (*models.Program, error) {
	var program models.Program
	err := s.db.
		Preload("Days", func(db *gorm.DB) *gorm.DB { return db.Order("day_number asc") }).
		Preload("Days.Points", func(db *gorm.DB) *gorm.DB { return db.Order("order_number asc") }).
		Preload("PricingTiers").
		First(&program, "id = ?", id).Error
	if err != nil {
		return nil, notFoundOr(err, "program %s not found", id)
	}
	return &program, nil
}

func (s *GormStore) GetBookableProgram(id uuid.UUID) (*models.Program, error) {
	var program models.Program
	err := s.db.Preload("PricingTiers").
		First(&program, "id = ? AND is_active = ? AND is_approved = ?", id, true, true).Error
	if err != nil {
		return nil, notFoundOr(err, "program %s not found or not available for booking", id)
	}
	return &program, nil
}

func (s *GormStore) ListPublishedPrograms() ([]models.Program, error) {
	var programs []models.Program
	err := s.db.Preload("PricingTiers").
		Where("is_active = ? AND is_approved = ?", true, true).
		Order("created_at desc").
		Find(&programs).Error
	return programs, err
}

func (s *GormStore) CountPrograms(ids []uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&models.Program{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

func (s *GormStore) SetProgramApproval(id uuid.UUID, approved bool) error {
	result := s.db.Model(&models.Program{}).Where("id = ?", id).Update("is_approved", approved)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("program %s not found", id)
	}
	return nil
}

// ---- auctions ----

func (s *GormStore) CreateAuction(a *models.Auction) error {
	return s.db.Create(a).Error
}

func (s *GormStore) GetAuction(id uuid.UUID) (*models.Auction, error) {
	var auction models.Auction
	err := s.db.
		Preload("Creator").
		Preload("Program").
		Preload("Bids", func(db *gorm.DB) *gorm.DB { return db.Order("price desc, created_at asc") }).
		Preload("Bids.Bidder").
		First(&auction, "id = ?", id).Error
	if err != nil {
		return nil, notFoundOr(err, "auction %s not found", id)
	}
	return &auction, nil
}

func (s *GormStore) ListActiveAuctions(now time.Time) ([]models.Auction, error) {
	var auctions []models.Auction
	err := s.db.
		Preload("Creator").
		Preload("Program").
		Preload("Bids").
		Where("status = ? AND expires_at > ?", models.AuctionStatusOpen, now).
		Order("expires_at asc").
		Find(&auctions).Error
	return auctions, err
}

func (s *GormStore) ListAuctionsByCreator(creatorID uuid.UUID) ([]models.Auction, error) {
	var auctions []models.Auction
	err := s.db.
		Preload("Program").
		Preload("Bids", func(db *gorm.DB) *gorm.DB { return db.Order("price desc, created_at asc") }).
		Where("creator_id = ?", creatorID).
		Order("expires_at asc").
		Find(&auctions).Error
	return auctions, err
}

func (s *GormStore) ListBiddedAuctions(bidderID uuid.UUID) ([]models.Auction, error) {
	var auctionIDs []uuid.UUID
	err := s.db.Model(&models.Bid{}).
		Distinct("auction_id").
		Where("bidder_id = ?", bidderID).
		Pluck("auction_id", &auctionIDs).Error
	if err != nil {
		return nil, err
	}

	var auctions []models.Auction
	err = s.db.
		Preload("Creator").
		Preload("Program").
		Preload("Bids", "bidder_id = ?", bidderID).
		Where("id IN ?", auctionIDs).
		Order("CASE WHEN status = 'OPEN' THEN 0 ELSE 1 END, expires_at asc").
		Find(&auctions).Error
	return auctions, err
}

func (s *GormStore) ListProgramAuctions(programID uuid.UUID, now time.Time) ([]models.Auction, error) {
	var auctions []models.Auction
	err := s.db.
		Preload("Creator").
		Preload("Bids", func(db *gorm.DB) *gorm.DB { return db.Order("price desc, created_at asc") }).
		Where("program_id = ? AND status = ? AND expires_at > ?", programID, models.AuctionStatusOpen, now).
		Order("expires_at asc").
		Find(&auctions).Error
	return auctions, err
}

func (s *GormStore) UpdateAuction(id uuid.UUID, patch AuctionPatch) (*models.Auction, error) {
	var updated models.Auction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var auction models.Auction
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&auction, "id = ?", id).Error; err != nil {
			return notFoundOr(err, "auction %s not found", id)
		}
		if auction.Status != models.AuctionStatusOpen {
			return apperrors.BadRequest("cannot update auction with status %s", auction.Status)
		}
		var bidCount int64
		if err := tx.Model(&models.Bid{}).Where("auction_id = ?", id).Count(&bidCount).Error; err != nil {
			return err
		}
		if bidCount > 0 {
			return apperrors.BadRequest("cannot update auction once bids have been placed")
		}

		fields := map[string]interface{}{}
		if patch.Title != nil {
			fields["title"] = *patch.Title
		}
		if patch.Description != nil {
			fields["description"] = *patch.Description
		}
		if patch.Location != nil {
			fields["location"] = *patch.Location
		}
		if patch.StartDate != nil {
			fields["start_date"] = *patch.StartDate
		}
		if patch.NumberOfPeople != nil {
			fields["number_of_people"] = *patch.NumberOfPeople
		}
		if patch.Budget != nil {
			fields["budget"] = *patch.Budget
		}
		if patch.ProgramID != nil {
			fields["program_id"] = *patch.ProgramID
		}
		if patch.ClearProgram {
			fields["program_id"] = nil
		}
		if patch.ExpiresAt != nil {
			fields["expires_at"] = *patch.ExpiresAt
		}
		if len(fields) > 0 {
			if err := tx.Model(&auction).Updates(fields).Error; err != nil {
				return err
			}
		}
		return tx.Preload("Program").First(&updated, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *GormStore) DeleteAuction(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var auction models.Auction
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&auction, "id = ?", id).Error; err != nil {
			return notFoundOr(err, "auction %s not found", id)
		}
		if auction.Status != models.AuctionStatusOpen {
			return apperrors.BadRequest("cannot delete auction with status %s", auction.Status)
		}
		var bidCount int64
		if err := tx.Model(&models.Bid{}).Where("auction_id = ?", id).Count(&bidCount).Error; err != nil {
			return err
		}
		if bidCount > 0 {
			return apperrors.BadRequest("cannot delete auction once bids have been placed")
		}
		return tx.Delete(&auction).Error
	})
}

func (s *GormStore) CloseAuction(id uuid.UUID, winningBidID *uuid.UUID) (*models.Auction, error) {
	var closed models.Auction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var auction models.Auction
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&auction, "id = ? AND status = ?", id, models.AuctionStatusOpen).Error; err != nil {
			return notFoundOr(err, "active auction %s not found", id)
		}
		if winningBidID != nil {
			var bid models.Bid
			if err := tx.First(&bid, "id = ? AND auction_id = ?", *winningBidID, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.BadRequest("invalid winning bid selected")
				}
				return err
			}
			if err := tx.Model(&bid).Update("is_accepted", true).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&auction).Update("status", models.AuctionStatusClosed).Error; err != nil {
			return err
		}
		return tx.
			Preload("Program").
			Preload("Bids", "is_accepted = ?", true).
			Preload("Bids.Bidder").
			First(&closed, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &closed, nil
}

func (s *GormStore) CloseExpiredAuctions(now time.Time) (int64, error) {
	result := s.db.Model(&models.Auction{}).
		Where("status = ? AND expires_at <= ?", models.AuctionStatusOpen, now).
		Update("status", models.AuctionStatusClosed)
	return result.RowsAffected, result.Error
}

// ---- bids ----

func (s *GormStore) CreateBid(b *models.Bid) error {
	if err := s.db.Create(b).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.BadRequest("you already have a bid on this auction, update your existing bid instead")
		}
		return err
	}
	return nil
}

func (s *GormStore) GetBid(id uuid.UUID) (*models.Bid, error) {
	var bid models.Bid
	if err := s.db.Preload("Auction").First(&bid, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "bid %s not found", id)
	}
	return &bid, nil
}

func (s *GormStore) GetBidByAuctionAndBidder(auctionID, bidderID uuid.UUID) (*models.Bid, error) {
	var bid models.Bid
	err := s.db.First(&bid, "auction_id = ? AND bidder_id = ?", auctionID, bidderID).Error
	if err != nil {
		return nil, notFoundOr(err, "bid for auction %s by %s not found", auctionID, bidderID)
	}
	return &bid, nil
}

func (s *GormStore) DeleteBid(id uuid.UUID) error {
	return s.db.Delete(&models.Bid{}, "id = ?", id).Error
}

func (s *GormStore) ListBidsForAuction(auctionID uuid.UUID) ([]models.Bid, error) {
	var bids []models.Bid
	err := s.db.Preload("Bidder").
		Where("auction_id = ?", auctionID).
		Order("price desc, created_at asc").
		Find(&bids).Error
	return bids, err
}

func (s *GormStore) ListBidsByBidder(bidderID uuid.UUID) ([]models.Bid, error) {
	var bids []models.Bid
	err := s.db.Preload("Auction").
		Where("bidder_id = ?", bidderID).
		Order("created_at desc").
		Find(&bids).Error
	return bids, err
}

// ---- bookings ----

func (s *GormStore) CreateBooking(b *models.Booking) error {
	return s.db.Create(b).Error
}

func (s *GormStore) GetBooking(id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.
		Preload("Program").
		Preload("Tourist").
		Preload("PricingTier").
		First(&booking, "id = ?", id).Error
	if err != nil {
		return nil, notFoundOr(err, "booking %s not found", id)
	}
	return &booking, nil
}

func (s *GormStore) UpdateBookingStatus(id uuid.UUID, status string) error {
	result := s.db.Model(&models.Booking{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("booking %s not found", id)
	}
	return nil
}

func (s *GormStore) SetBookingVoucherURL(id uuid.UUID, url string) error {
	return s.db.Model(&models.Booking{}).Where("id = ?", id).Update("voucher_url", url).Error
}

func (s *GormStore) ListBookingsByTourist(touristID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.
		Preload("Program").
		Preload("PricingTier").
		Where("tourist_id = ?", touristID).
		Order("created_at desc").
		Find(&bookings).Error
	return bookings, err
}

func (s *GormStore) ListBookingsByGuide(guideID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.
		Preload("Program").
		Preload("Tourist").
		Preload("PricingTier").
		Joins("JOIN programs ON programs.id = bookings.program_id").
		Where("programs.guide_id = ?", guideID).
		Order("bookings.created_at desc").
		Find(&bookings).Error
	return bookings, err
}

// ---- pricing tiers ----

func (s *GormStore) ListTiers(programID uuid.UUID) ([]models.PricingTier, error) {
	var tiers []models.PricingTier
	err := s.db.Where("program_id = ?", programID).
		Order("min_people asc, price_per_person asc").
		Find(&tiers).Error
	return tiers, err
}

func (s *GormStore) CreateTier(t *models.PricingTier) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing []models.PricingTier
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("program_id = ?", t.ProgramID).
			Find(&existing).Error
		if err != nil {
			return err
		}
		for _, tier := range existing {
			if t.MinPeople <= tier.MaxPeople && t.MaxPeople >= tier.MinPeople {
				return apperrors.BadRequest("tier overlaps with existing tier %q (%d-%d people)", tier.Title, tier.MinPeople, tier.MaxPeople)
			}
		}
		return tx.Create(t).Error
	})
}

func (s *GormStore) GetTier(id uuid.UUID) (*models.PricingTier, error) {
	var tier models.PricingTier
	if err := s.db.Preload("Program").First(&tier, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "pricing tier %s not found", id)
	}
	return &tier, nil
}

func (s *GormStore) UpdateTier(id uuid.UUID, patch TierPatch) (*models.PricingTier, error) {
	fields := map[string]interface{}{}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.MinPeople != nil {
		fields["min_people"] = *patch.MinPeople
	}
	if patch.MaxPeople != nil {
		fields["max_people"] = *patch.MaxPeople
	}
	if patch.PricePerPerson != nil {
		fields["price_per_person"] = *patch.PricePerPerson
	}
	if patch.IsActive != nil {
		fields["is_active"] = *patch.IsActive
	}
	if len(fields) > 0 {
		result := s.db.Model(&models.PricingTier{}).Where("id = ?", id).Updates(fields)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, apperrors.NotFound("pricing tier %s not found", id)
		}
	}
	var tier models.PricingTier
	if err := s.db.First(&tier, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "pricing tier %s not found", id)
	}
	return &tier, nil
}

func (s *GormStore) DeleteTier(id uuid.UUID) error {
	return s.db.Delete(&models.PricingTier{}, "id = ?", id).Error
}

// ---- tokens ----

func (s *GormStore) ListTokenPackages() ([]models.TokenPackage, error) {
	var packages []models.TokenPackage
	err := s.db.Where("is_active = ?", true).Order("token_amount asc").Find(&packages).Error
	return packages, err
}

func (s *GormStore) GetTokenPackage(id uuid.UUID) (*models.TokenPackage, error) {
	var pkg models.TokenPackage
	if err := s.db.First(&pkg, "id = ? AND is_active = ?", id, true).Error; err != nil {
		return nil, notFoundOr(err, "token package %s not found", id)
	}
	return &pkg, nil
}

func (s *GormStore) PurchaseTokens(guideID uuid.UUID, pkg models.TokenPackage) (*models.TokenTransaction, error) {
	transaction := models.TokenTransaction{
		GuideID:     guideID,
		Type:        models.TokenTransactionPurchase,
		Amount:      pkg.TokenAmount,
		Description: pkg.Name,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var guide models.Guide
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&guide, "user_id = ?", guideID).Error; err != nil {
			return notFoundOr(err, "guide %s not found", guideID)
		}
		if err := tx.Model(&guide).Update("token_balance", gorm.Expr("token_balance + ?", pkg.TokenAmount)).Error; err != nil {
			return err
		}
		return tx.Create(&transaction).Error
	})
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (s *GormStore) SpendTokens(guideID uuid.UUID, amount int, description string) (*models.TokenTransaction, error) {
	transaction := models.TokenTransaction{
		GuideID:     guideID,
		Type:        models.TokenTransactionSpend,
		Amount:      amount,
		Description: description,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var guide models.Guide
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&guide, "user_id = ?", guideID).Error; err != nil {
			return notFoundOr(err, "guide %s not found", guideID)
		}
		if guide.TokenBalance < amount {
			return apperrors.BadRequest("insufficient token balance: have %d, need %d", guide.TokenBalance, amount)
		}
		if err := tx.Model(&guide).Update("token_balance", gorm.Expr("token_balance - ?", amount)).Error; err != nil {
			return err
		}
		return tx.Create(&transaction).Error
	})
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (s *GormStore) ListTokenTransactions(guideID uuid.UUID) ([]models.TokenTransaction, error) {
	var transactions []models.TokenTransaction
	err := s.db.Where("guide_id = ?", guideID).Order("created_at desc").Find(&transactions).Error
	return transactions, err
}

// ---- reviews ----

func (s *GormStore) CreateReview(r *models.Review) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Review
		if err := tx.Where("booking_id = ?", r.BookingID).First(&existing).Error; err == nil {
			return apperrors.BadRequest("a review for this booking has already been submitted")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(r).Error; err != nil {
			return err
		}

		var result struct {
			Avg float64
		}
		if err := tx.Model(&models.Review{}).Where("guide_id = ?", r.GuideID).Select("avg(rating) as avg").Scan(&result).Error; err != nil {
			return err
		}
		return tx.Model(&models.Guide{}).Where("user_id = ?", r.GuideID).Update("avg_rating", result.Avg).Error
	})
}

func (s *GormStore) ListReviewsByGuide(guideID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Preload("Tourist").
		Where("guide_id = ?", guideID).
		Order("created_at desc").
		Find(&reviews).Error
	return reviews, err
}
