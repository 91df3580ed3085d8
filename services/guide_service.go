package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"tourmarket/apperrors"
	"tourmarket/models"
	"tourmarket/notifications"
	"tourmarket/repository"
)

// GuideService implements the dual-channel profile update: bio and newly
// uploaded images go through an admin-reviewed change request, everything
// else is applied immediately. It also owns guide-level approval.
type GuideService struct {
	guides   repository.GuideStore
	users    repository.UserStore
	programs repository.ProgramStore
	notifier notifications.Notifier
}

func NewGuideService(guides repository.GuideStore, users repository.UserStore, programs repository.ProgramStore, notifier notifications.Notifier) *GuideService {
	return &GuideService{guides: guides, users: users, programs: programs, notifier: notifier}
}

type GuideUpdateInput struct {
	// Approval-gated fields.
	Bio       *string
	NewImages []string

	// Directly applied fields.
	PhoneNumber    *string
	Email          *string
	IsActive       *bool
	ExistingImages []string // reordering of already-approved images
	ProgramIDs     []uuid.UUID
	HasProgramIDs  bool
	FirstName      *string
	LastName       *string
	Username       *string
}

type GuideUpdateResult struct {
	Guide                *models.Guide `json:"guide"`
	PendingChanges       bool          `json:"pending_changes"`
	PendingChangeMessage string        `json:"pending_change_message,omitempty"`
}

func classifyChange(bio *string, images []string) string {
	switch {
	case bio != nil && len(images) > 0:
		return models.ChangeTypeBioAndImages
	case bio != nil:
		return models.ChangeTypeBio
	case len(images) > 0:
		return models.ChangeTypeImages
	default:
		return models.ChangeTypeMultiple
	}
}

func (s *GuideService) GetGuideProfile(guideID uuid.UUID) (*models.Guide, error) {
	return s.guides.GetGuide(guideID)
}

type RegisterGuideInput struct {
	Bio         *string
	PhoneNumber *string
	Email       *string
	Images      []string
}

// RegisterGuide opens a guide application for an existing user. The profile
// starts unapproved; the user keeps their current role until an admin signs
// off.
func (s *GuideService) RegisterGuide(userID uuid.UUID, input RegisterGuideInput) (*models.Guide, error) {
	if _, err := s.users.GetUser(userID); err != nil {
		return nil, err
	}
	if _, err := s.guides.GetGuide(userID); err == nil {
		return nil, apperrors.BadRequest("you already have a guide profile")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	guide := models.Guide{
		UserID:      userID,
		Bio:         input.Bio,
		PhoneNumber: input.PhoneNumber,
		Email:       input.Email,
		Images:      input.Images,
		IsActive:    true,
	}
	if err := s.guides.CreateGuide(&guide); err != nil {
		return nil, err
	}
	s.notifier.Notify(userID, "Your guide application has been submitted. An admin will review it shortly.")
	return &guide, nil
}

// UpdateGuide partitions the patch into the approval-gated and direct
// channels; a field never travels through both. Bio and new images are never
// written to the guide record here.
func (s *GuideService) UpdateGuide(guideID, actorID uuid.UUID, input GuideUpdateInput) (*GuideUpdateResult, error) {
	if guideID != actorID {
		return nil, apperrors.NotFound("guide not found")
	}
	guide, err := s.guides.GetGuide(guideID)
	if err != nil {
		return nil, err
	}

	pendingChanges := false
	if input.Bio != nil || len(input.NewImages) > 0 {
		request := models.GuideProfileChangeRequest{
			GuideID:    guideID,
			ChangeType: classifyChange(input.Bio, input.NewImages),
			Bio:        input.Bio,
			Images:     input.NewImages,
			Status:     models.ChangeStatusPending,
		}
		if err := s.guides.CreateChangeRequest(&request); err != nil {
			return nil, err
		}
		pendingChanges = true
		s.notifier.Notify(actorID, "Your profile changes to bio and new images have been submitted for approval. An admin will review them shortly.")
	}

	if input.FirstName != nil || input.LastName != nil || input.Username != nil {
		if err := s.users.UpdateUserProfile(actorID, input.FirstName, input.LastName, input.Username); err != nil {
			return nil, err
		}
	}

	if input.HasProgramIDs {
		count, err := s.programs.CountPrograms(input.ProgramIDs)
		if err != nil {
			return nil, err
		}
		if count != int64(len(input.ProgramIDs)) {
			return nil, apperrors.BadRequest("one or more program ids are invalid")
		}
		if err := s.guides.SetGuidePrograms(guideID, input.ProgramIDs); err != nil {
			return nil, err
		}
	}

	if err := s.guides.UpdateGuideDirect(guideID, repository.GuidePatch{
		PhoneNumber: input.PhoneNumber,
		Email:       input.Email,
		IsActive:    input.IsActive,
		Images:      input.ExistingImages,
	}); err != nil {
		return nil, err
	}

	if input.IsActive != nil && *input.IsActive != guide.IsActive {
		if *input.IsActive {
			s.notifier.Notify(actorID, "Your guide status has been updated to active. You will now appear in search results.")
		} else {
			s.notifier.Notify(actorID, "Your guide status has been updated to inactive. You will not appear in search results.")
		}
	}

	updated, err := s.guides.GetGuide(guideID)
	if err != nil {
		return nil, err
	}

	result := &GuideUpdateResult{Guide: updated, PendingChanges: pendingChanges}
	if pendingChanges {
		result.PendingChangeMessage = "Your bio and image changes require admin approval and are pending review."
	}
	return result, nil
}

func (s *GuideService) GetPendingChangeRequests() ([]models.GuideProfileChangeRequest, error) {
	return s.guides.ListPendingChangeRequests()
}

// ProcessChangeRequest resolves a PENDING request exactly once. On approval
// the proposed bio replaces the guide's bio and proposed images are appended
// to the guide's images, atomically with the status flip.
func (s *GuideService) ProcessChangeRequest(requestID uuid.UUID, approve bool, comment *string) (*models.GuideProfileChangeRequest, error) {
	request, err := s.guides.GetChangeRequest(requestID)
	if err != nil {
		return nil, err
	}

	resolved, err := s.guides.ResolveChangeRequest(requestID, approve, comment)
	if err != nil {
		return nil, err
	}

	suffix := ""
	if comment != nil && *comment != "" {
		suffix = fmt.Sprintf(" Comment: %s", *comment)
	}
	if approve {
		s.notifier.Notify(request.GuideID, "✅ Your bio and image changes have been approved."+suffix)
	} else {
		s.notifier.Notify(request.GuideID, "❌ Your profile change request has been rejected."+suffix)
	}
	return resolved, nil
}

func (s *GuideService) GetPendingGuideApprovals() ([]models.Guide, error) {
	return s.guides.ListPendingGuides()
}

// UpdateGuideApprovalStatus flips Guide.IsApproved and the owning user's role
// in one transaction, then notifies the guide.
func (s *GuideService) UpdateGuideApprovalStatus(guideID uuid.UUID, approved bool) (*models.Guide, error) {
	if _, err := s.guides.GetGuide(guideID); err != nil {
		return nil, err
	}
	if err := s.guides.SetGuideApproval(guideID, approved); err != nil {
		return nil, err
	}
	s.notifier.Notify(guideID, notifications.GuideApprovalMessage(approved))
	return s.guides.GetGuide(guideID)
}
