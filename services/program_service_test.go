package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"tourmarket/apperrors"
	"tourmarket/models"
	"tourmarket/repository"
)

func newProgramFixture(t *testing.T) (*repository.MemoryStore, *ProgramService, uuid.UUID) {
	t.Helper()
	store := repository.NewMemoryStore()

	guideUser := models.User{FirstName: "Boris", Role: models.RoleGuide}
	require.NoError(t, store.CreateUser(&guideUser))
	require.NoError(t, store.CreateGuide(&models.Guide{UserID: guideUser.ID, IsActive: true, IsApproved: true}))

	return store, NewProgramService(store), guideUser.ID
}

func TestCreateProgram(t *testing.T) {
	_, svc, guideID := newProgramFixture(t)

	program, err := svc.CreateProgram(guideID, CreateProgramInput{
		Title:     "Three day trek",
		BasePrice: 250,
		Days: []ProgramDayInput{
			{DayNumber: 1, Title: "Ascent", Points: []ProgramPointInput{{OrderNumber: 1, Title: "Base camp"}}},
			{DayNumber: 2, Title: "Summit"},
		},
	})
	require.NoError(t, err)
	require.False(t, program.IsApproved)
	require.Equal(t, models.BookingTypeBoth, program.BookingType)
	require.Equal(t, 1, program.DurationDays)
	require.Len(t, program.Days, 2)
	require.Len(t, program.Days[0].Points, 1)
}

func TestCreateProgramValidation(t *testing.T) {
	_, svc, guideID := newProgramFixture(t)

	_, err := svc.CreateProgram(guideID, CreateProgramInput{BasePrice: 100})
	require.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.CreateProgram(guideID, CreateProgramInput{Title: "Free tour"})
	require.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.CreateProgram(guideID, CreateProgramInput{Title: "t", BasePrice: 10, BookingType: "INVITE_ONLY"})
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestProgramApprovalControlsCatalog(t *testing.T) {
	_, svc, guideID := newProgramFixture(t)

	program, err := svc.CreateProgram(guideID, CreateProgramInput{Title: "Wine route", BasePrice: 90})
	require.NoError(t, err)

	published, err := svc.ListPublishedPrograms()
	require.NoError(t, err)
	require.Empty(t, published)

	_, err = svc.UpdateProgramApprovalStatus(program.ID, true)
	require.NoError(t, err)

	published, err = svc.ListPublishedPrograms()
	require.NoError(t, err)
	require.Len(t, published, 1)
	require.Equal(t, program.ID, published[0].ID)
}
