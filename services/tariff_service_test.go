package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"tourmarket/apperrors"
	"tourmarket/models"
	"tourmarket/repository"
)

func newTariffFixture(t *testing.T) (*repository.MemoryStore, *TariffService, uuid.UUID, *models.Program) {
	t.Helper()
	store := repository.NewMemoryStore()

	guideUser := models.User{FirstName: "Boris", Role: models.RoleGuide}
	require.NoError(t, store.CreateUser(&guideUser))
	require.NoError(t, store.CreateGuide(&models.Guide{UserID: guideUser.ID, IsActive: true, IsApproved: true}))

	program := models.Program{
		GuideID:    guideUser.ID,
		Title:      "Wine route",
		BasePrice:  90,
		IsActive:   true,
		IsApproved: true,
	}
	require.NoError(t, store.CreateProgram(&program))

	return store, NewTariffService(store, store), guideUser.ID, &program
}

func TestCreateTariffValidation(t *testing.T) {
	_, svc, guideID, program := newTariffFixture(t)

	tests := []struct {
		name  string
		input CreateTariffInput
	}{
		{name: "missing title", input: CreateTariffInput{MinPeople: 1, MaxPeople: 4, PricePerPerson: 100}},
		{name: "zero min people", input: CreateTariffInput{Title: "t", MaxPeople: 4, PricePerPerson: 100}},
		{name: "max below min", input: CreateTariffInput{Title: "t", MinPeople: 5, MaxPeople: 2, PricePerPerson: 100}},
		{name: "negative price", input: CreateTariffInput{Title: "t", MinPeople: 1, MaxPeople: 4, PricePerPerson: -5}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProgramTariff(program.ID, guideID, tc.input)
			require.ErrorIs(t, err, apperrors.ErrBadRequest)
		})
	}
}

func TestCreateTariffRejectsOverlap(t *testing.T) {
	_, svc, guideID, program := newTariffFixture(t)

	_, err := svc.CreateProgramTariff(program.ID, guideID, CreateTariffInput{
		Title: "Small group", MinPeople: 1, MaxPeople: 4, PricePerPerson: 100,
	})
	require.NoError(t, err)

	_, err = svc.CreateProgramTariff(program.ID, guideID, CreateTariffInput{
		Title: "Overlapping", MinPeople: 3, MaxPeople: 8, PricePerPerson: 90,
	})
	require.ErrorIs(t, err, apperrors.ErrBadRequest)

	// A non-overlapping neighbor is fine.
	_, err = svc.CreateProgramTariff(program.ID, guideID, CreateTariffInput{
		Title: "Large group", MinPeople: 5, MaxPeople: 10, PricePerPerson: 80,
	})
	require.NoError(t, err)
}

func TestCreateTariffForForeignProgramFails(t *testing.T) {
	_, svc, _, program := newTariffFixture(t)

	_, err := svc.CreateProgramTariff(program.ID, uuid.New(), CreateTariffInput{
		Title: "Sneaky", MinPeople: 1, MaxPeople: 4, PricePerPerson: 100,
	})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateTariffOwnershipAndBounds(t *testing.T) {
	_, svc, guideID, program := newTariffFixture(t)

	tier, err := svc.CreateProgramTariff(program.ID, guideID, CreateTariffInput{
		Title: "Small group", MinPeople: 1, MaxPeople: 4, PricePerPerson: 100,
	})
	require.NoError(t, err)

	_, err = svc.UpdateProgramTariff(tier.ID, uuid.New(), UpdateTariffInput{})
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	badMax := 0
	_, err = svc.UpdateProgramTariff(tier.ID, guideID, UpdateTariffInput{MaxPeople: &badMax})
	require.ErrorIs(t, err, apperrors.ErrBadRequest)

	newPrice := 110.0
	updated, err := svc.UpdateProgramTariff(tier.ID, guideID, UpdateTariffInput{PricePerPerson: &newPrice})
	require.NoError(t, err)
	require.Equal(t, 110.0, updated.PricePerPerson)
}

func TestDeleteTariff(t *testing.T) {
	_, svc, guideID, program := newTariffFixture(t)

	tier, err := svc.CreateProgramTariff(program.ID, guideID, CreateTariffInput{
		Title: "Small group", MinPeople: 1, MaxPeople: 4, PricePerPerson: 100,
	})
	require.NoError(t, err)

	require.ErrorIs(t, svc.DeleteProgramTariff(tier.ID, uuid.New()), apperrors.ErrForbidden)
	require.NoError(t, svc.DeleteProgramTariff(tier.ID, guideID))

	tiers, err := svc.GetProgramTariffs(program.ID)
	require.NoError(t, err)
	require.Empty(t, tiers)
}
