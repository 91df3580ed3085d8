package services

import (
	"fmt"

	"github.com/google/uuid"

	"tourmarket/apperrors"
	"tourmarket/models"
	"tourmarket/notifications"
	"tourmarket/repository"
)

// TokenService handles guide usage tokens: package purchases, spending on
// features, balance and history queries.
type TokenService struct {
	tokens   repository.TokenStore
	guides   repository.GuideStore
	notifier notifications.Notifier
}

func NewTokenService(tokens repository.TokenStore, guides repository.GuideStore, notifier notifications.Notifier) *TokenService {
	return &TokenService{tokens: tokens, guides: guides, notifier: notifier}
}

func (s *TokenService) ListPackages() ([]models.TokenPackage, error) {
	return s.tokens.ListTokenPackages()
}

func (s *TokenService) GetPackage(packageID uuid.UUID) (*models.TokenPackage, error) {
	return s.tokens.GetTokenPackage(packageID)
}

func (s *TokenService) PurchaseTokens(guideID, packageID uuid.UUID) (*models.TokenTransaction, error) {
	pkg, err := s.tokens.GetTokenPackage(packageID)
	if err != nil {
		return nil, err
	}
	transaction, err := s.tokens.PurchaseTokens(guideID, *pkg)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(guideID, fmt.Sprintf("✅ You purchased %d tokens (%s).", pkg.TokenAmount, pkg.Name))
	return transaction, nil
}

func (s *TokenService) SpendTokens(guideID uuid.UUID, amount int, description string) (*models.TokenTransaction, error) {
	if amount <= 0 {
		return nil, apperrors.BadRequest("token amount must be greater than 0")
	}
	return s.tokens.SpendTokens(guideID, amount, description)
}

func (s *TokenService) GetBalance(guideID uuid.UUID) (int, error) {
	guide, err := s.guides.GetGuide(guideID)
	if err != nil {
		return 0, err
	}
	return guide.TokenBalance, nil
}

func (s *TokenService) GetTransactionHistory(guideID uuid.UUID) ([]models.TokenTransaction, error) {
	return s.tokens.ListTokenTransactions(guideID)
}
