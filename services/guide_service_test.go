package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"tourmarket/apperrors"
	"tourmarket/models"
	"tourmarket/repository"
)

// notifierRecorder captures outgoing notifications for assertions.
type notifierRecorder struct {
	sent []struct {
		UserID  uuid.UUID
		Message string
	}
}

func (n *notifierRecorder) Notify(userID uuid.UUID, message string) bool {
	n.sent = append(n.sent, struct {
		UserID  uuid.UUID
		Message string
	}{userID, message})
	return true
}

func newGuideFixture(t *testing.T) (*repository.MemoryStore, *GuideService, *notifierRecorder, uuid.UUID) {
	t.Helper()
	store := repository.NewMemoryStore()
	notifier := &notifierRecorder{}

	user := models.User{FirstName: "Boris", Role: models.RoleGuide}
	require.NoError(t, store.CreateUser(&user))
	bio := "Mountain guide since 2015"
	require.NoError(t, store.CreateGuide(&models.Guide{
		UserID:     user.ID,
		Bio:        &bio,
		Images:     []string{"c.jpg"},
		IsActive:   true,
		IsApproved: true,
	}))

	return store, NewGuideService(store, store, store, notifier), notifier, user.ID
}

func TestUpdateGuideBioCreatesPendingRequest(t *testing.T) {
	store, svc, notifier, guideID := newGuideFixture(t)

	newBio := "Completely new bio"
	result, err := svc.UpdateGuide(guideID, guideID, GuideUpdateInput{Bio: &newBio})
	require.NoError(t, err)
	require.True(t, result.PendingChanges)
	require.NotEmpty(t, result.PendingChangeMessage)

	// The bio never changes synchronously.
	guide, err := store.GetGuide(guideID)
	require.NoError(t, err)
	require.Equal(t, "Mountain guide since 2015", *guide.Bio)

	requests, err := store.ListPendingChangeRequests()
	require.NoError(t, err)
	require.Len(t, requests, 1)
	require.Equal(t, models.ChangeStatusPending, requests[0].Status)
	require.Equal(t, models.ChangeTypeBio, requests[0].ChangeType)

	require.NotEmpty(t, notifier.sent)
	require.Equal(t, guideID, notifier.sent[0].UserID)
}

func TestUpdateGuideDirectFieldsApplyImmediately(t *testing.T) {
	store, svc, _, guideID := newGuideFixture(t)

	phone := "+995551234567"
	result, err := svc.UpdateGuide(guideID, guideID, GuideUpdateInput{PhoneNumber: &phone})
	require.NoError(t, err)
	require.False(t, result.PendingChanges)

	guide, err := store.GetGuide(guideID)
	require.NoError(t, err)
	require.Equal(t, phone, *guide.PhoneNumber)
}

func TestUpdateGuideByStrangerFails(t *testing.T) {
	_, svc, _, guideID := newGuideFixture(t)

	bio := "not yours"
	_, err := svc.UpdateGuide(guideID, uuid.New(), GuideUpdateInput{Bio: &bio})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateGuideInvalidProgramIDsFails(t *testing.T) {
	_, svc, _, guideID := newGuideFixture(t)

	_, err := svc.UpdateGuide(guideID, guideID, GuideUpdateInput{
		ProgramIDs:    []uuid.UUID{uuid.New()},
		HasProgramIDs: true,
	})
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestProcessChangeRequestApproveAppliesChanges(t *testing.T) {
	store, svc, notifier, guideID := newGuideFixture(t)

	newBio := "Updated bio"
	_, err := svc.UpdateGuide(guideID, guideID, GuideUpdateInput{
		Bio:       &newBio,
		NewImages: []string{"a.jpg", "b.jpg"},
	})
	require.NoError(t, err)

	requests, err := store.ListPendingChangeRequests()
	require.NoError(t, err)
	require.Len(t, requests, 1)
	require.Equal(t, models.ChangeTypeBioAndImages, requests[0].ChangeType)

	resolved, err := svc.ProcessChangeRequest(requests[0].ID, true, nil)
	require.NoError(t, err)
	require.Equal(t, models.ChangeStatusApproved, resolved.Status)

	guide, err := store.GetGuide(guideID)
	require.NoError(t, err)
	require.Equal(t, "Updated bio", *guide.Bio)
	// Approved images append after the ones already on the profile.
	require.Equal(t, []string{"c.jpg", "a.jpg", "b.jpg"}, guide.Images)

	last := notifier.sent[len(notifier.sent)-1]
	require.Equal(t, guideID, last.UserID)
	require.Contains(t, last.Message, "approved")
}

func TestProcessChangeRequestRejectLeavesProfileAlone(t *testing.T) {
	store, svc, notifier, guideID := newGuideFixture(t)

	newBio := "Updated bio"
	_, err := svc.UpdateGuide(guideID, guideID, GuideUpdateInput{Bio: &newBio})
	require.NoError(t, err)

	requests, err := store.ListPendingChangeRequests()
	require.NoError(t, err)

	comment := "Bio violates the content policy"
	resolved, err := svc.ProcessChangeRequest(requests[0].ID, false, &comment)
	require.NoError(t, err)
	require.Equal(t, models.ChangeStatusRejected, resolved.Status)

	guide, err := store.GetGuide(guideID)
	require.NoError(t, err)
	require.Equal(t, "Mountain guide since 2015", *guide.Bio)

	last := notifier.sent[len(notifier.sent)-1]
	require.Contains(t, last.Message, "rejected")
	require.Contains(t, last.Message, comment)
}

func TestProcessChangeRequestResolvesExactlyOnce(t *testing.T) {
	store, svc, _, guideID := newGuideFixture(t)

	newBio := "Updated bio"
	_, err := svc.UpdateGuide(guideID, guideID, GuideUpdateInput{Bio: &newBio})
	require.NoError(t, err)

	requests, err := store.ListPendingChangeRequests()
	require.NoError(t, err)

	_, err = svc.ProcessChangeRequest(requests[0].ID, true, nil)
	require.NoError(t, err)

	_, err = svc.ProcessChangeRequest(requests[0].ID, false, nil)
	require.ErrorIs(t, err, apperrors.ErrBadRequest)

	// The approved bio survives the failed second resolution.
	guide, err := store.GetGuide(guideID)
	require.NoError(t, err)
	require.Equal(t, "Updated bio", *guide.Bio)
}

func TestUpdateGuideApprovalStatusFlipsRole(t *testing.T) {
	store, svc, notifier, _ := newGuideFixture(t)

	applicant := models.User{FirstName: "Nino", Role: models.RoleTourist}
	require.NoError(t, store.CreateUser(&applicant))
	require.NoError(t, store.CreateGuide(&models.Guide{UserID: applicant.ID, IsActive: true}))

	guide, err := svc.UpdateGuideApprovalStatus(applicant.ID, true)
	require.NoError(t, err)
	require.True(t, guide.IsApproved)

	user, err := store.GetUser(applicant.ID)
	require.NoError(t, err)
	require.Equal(t, models.RoleGuide, user.Role)

	last := notifier.sent[len(notifier.sent)-1]
	require.Equal(t, applicant.ID, last.UserID)

	// Revoking approval demotes the role again.
	_, err = svc.UpdateGuideApprovalStatus(applicant.ID, false)
	require.NoError(t, err)
	user, err = store.GetUser(applicant.ID)
	require.NoError(t, err)
	require.Equal(t, models.RoleTourist, user.Role)
}

func TestRegisterGuide(t *testing.T) {
	store, svc, _, _ := newGuideFixture(t)

	applicant := models.User{FirstName: "Nino", Role: models.RoleTourist}
	require.NoError(t, store.CreateUser(&applicant))

	bio := "Aspiring city guide"
	guide, err := svc.RegisterGuide(applicant.ID, RegisterGuideInput{Bio: &bio})
	require.NoError(t, err)
	require.False(t, guide.IsApproved)

	_, err = svc.RegisterGuide(applicant.ID, RegisterGuideInput{})
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
}
