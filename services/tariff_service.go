package services

import (
	"github.com/google/uuid"

	"tourmarket/apperrors"
	"tourmarket/models"
	"tourmarket/repository"
)

// TariffService manages the pricing tiers of a program. Tiers of one program
// must not overlap; the store re-checks that inside the insert transaction.
type TariffService struct {
	tiers    repository.TariffStore
	programs repository.ProgramStore
}

func NewTariffService(tiers repository.TariffStore, programs repository.ProgramStore) *TariffService {
	return &TariffService{tiers: tiers, programs: programs}
}

type CreateTariffInput struct {
	Title          string
	Description    string
	MinPeople      int
	MaxPeople      int
	PricePerPerson float64
}

type UpdateTariffInput struct {
	Title          *string
	Description    *string
	MinPeople      *int
	MaxPeople      *int
	PricePerPerson *float64
	IsActive       *bool
}

func (s *TariffService) GetProgramTariffs(programID uuid.UUID) ([]models.PricingTier, error) {
	if _, err := s.programs.GetProgram(programID); err != nil {
		return nil, err
	}
	return s.tiers.ListTiers(programID)
}

func (s *TariffService) CreateProgramTariff(programID, guideID uuid.UUID, input CreateTariffInput) (*models.PricingTier, error) {
	program, err := s.programs.GetProgram(programID)
	if err != nil || program.GuideID != guideID {
		return nil, apperrors.NotFound("program not found or you are not authorized to add pricing tiers to it")
	}

	if input.Title == "" || input.MinPeople == 0 || input.MaxPeople == 0 || input.PricePerPerson == 0 {
		return nil, apperrors.BadRequest("title, minimum people, maximum people, and price per person are required")
	}
	if input.MinPeople < 1 {
		return nil, apperrors.BadRequest("minimum people must be at least 1")
	}
	if input.MaxPeople < input.MinPeople {
		return nil, apperrors.BadRequest("maximum people must be greater than or equal to minimum people")
	}
	if input.PricePerPerson <= 0 {
		return nil, apperrors.BadRequest("price per person must be greater than 0")
	}

	tier := models.PricingTier{
		ProgramID:      programID,
		Title:          input.Title,
		Description:    input.Description,
		MinPeople:      input.MinPeople,
		MaxPeople:      input.MaxPeople,
		PricePerPerson: input.PricePerPerson,
		IsActive:       true,
	}
	if err := s.tiers.CreateTier(&tier); err != nil {
		return nil, err
	}
	return &tier, nil
}

func (s *TariffService) UpdateProgramTariff(tariffID, guideID uuid.UUID, input UpdateTariffInput) (*models.PricingTier, error) {
	tier, err := s.tiers.GetTier(tariffID)
	if err != nil {
		return nil, err
	}
	if tier.Program.GuideID != guideID {
		return nil, apperrors.Forbidden("you are not authorized to update this pricing tier")
	}

	minPeople := tier.MinPeople
	maxPeople := tier.MaxPeople
	if input.MinPeople != nil {
		minPeople = *input.MinPeople
	}
	if input.MaxPeople != nil {
		maxPeople = *input.MaxPeople
	}
	if minPeople < 1 {
		return nil, apperrors.BadRequest("minimum people must be at least 1")
	}
	if maxPeople < minPeople {
		return nil, apperrors.BadRequest("maximum people must be greater than or equal to minimum people")
	}
	if input.PricePerPerson != nil && *input.PricePerPerson <= 0 {
		return nil, apperrors.BadRequest("price per person must be greater than 0")
	}

	return s.tiers.UpdateTier(tariffID, repository.TierPatch{
		Title:          input.Title,
		Description:    input.Description,
		MinPeople:      input.MinPeople,
		MaxPeople:      input.MaxPeople,
		PricePerPerson: input.PricePerPerson,
		IsActive:       input.IsActive,
	})
}

func (s *TariffService) DeleteProgramTariff(tariffID, guideID uuid.UUID) error {
	tier, err := s.tiers.GetTier(tariffID)
	if err != nil {
		return err
	}
	if tier.Program.GuideID != guideID {
		return apperrors.Forbidden("you are not authorized to delete this pricing tier")
	}
	return s.tiers.DeleteTier(tariffID)
}
