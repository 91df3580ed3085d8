package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"tourmarket/apperrors"
	"tourmarket/models"
	"tourmarket/repository"
)

func newTokenFixture(t *testing.T) (*repository.MemoryStore, *TokenService, *notifierRecorder, uuid.UUID, models.TokenPackage) {
	t.Helper()
	store := repository.NewMemoryStore()
	notifier := &notifierRecorder{}

	guideUser := models.User{FirstName: "Boris", Role: models.RoleGuide}
	require.NoError(t, store.CreateUser(&guideUser))
	require.NoError(t, store.CreateGuide(&models.Guide{UserID: guideUser.ID, IsActive: true, IsApproved: true}))

	pkg := models.TokenPackage{Name: "Starter", TokenAmount: 50, Price: 9.99, IsActive: true}
	store.AddTokenPackage(pkg)
	packages, err := store.ListTokenPackages()
	require.NoError(t, err)
	require.Len(t, packages, 1)

	return store, NewTokenService(store, store, notifier), notifier, guideUser.ID, packages[0]
}

func TestPurchaseTokensCreditsBalance(t *testing.T) {
	_, svc, notifier, guideID, pkg := newTokenFixture(t)

	transaction, err := svc.PurchaseTokens(guideID, pkg.ID)
	require.NoError(t, err)
	require.Equal(t, models.TokenTransactionPurchase, transaction.Type)
	require.Equal(t, 50, transaction.Amount)

	balance, err := svc.GetBalance(guideID)
	require.NoError(t, err)
	require.Equal(t, 50, balance)

	require.NotEmpty(t, notifier.sent)
	require.Equal(t, guideID, notifier.sent[0].UserID)
}

func TestPurchaseUnknownPackageFails(t *testing.T) {
	_, svc, _, guideID, _ := newTokenFixture(t)

	_, err := svc.PurchaseTokens(guideID, uuid.New())
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSpendTokens(t *testing.T) {
	_, svc, _, guideID, pkg := newTokenFixture(t)

	_, err := svc.PurchaseTokens(guideID, pkg.ID)
	require.NoError(t, err)

	_, err = svc.SpendTokens(guideID, 0, "noop")
	require.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.SpendTokens(guideID, 80, "featured placement")
	require.ErrorIs(t, err, apperrors.ErrBadRequest)

	transaction, err := svc.SpendTokens(guideID, 30, "featured placement")
	require.NoError(t, err)
	require.Equal(t, models.TokenTransactionSpend, transaction.Type)

	balance, err := svc.GetBalance(guideID)
	require.NoError(t, err)
	require.Equal(t, 20, balance)

	history, err := svc.GetTransactionHistory(guideID)
	require.NoError(t, err)
	require.Len(t, history, 2)
}
