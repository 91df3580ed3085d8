package services

import (
	"github.com/google/uuid"

	"tourmarket/apperrors"
	"tourmarket/models"
	"tourmarket/repository"
)

// ProgramService handles the tour program catalog: guides author programs,
// admins approve them, tourists browse the approved set.
type ProgramService struct {
	programs repository.ProgramStore
}

func NewProgramService(programs repository.ProgramStore) *ProgramService {
	return &ProgramService{programs: programs}
}

type ProgramPointInput struct {
	OrderNumber int      `json:"order_number"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

type ProgramDayInput struct {
	DayNumber   int                 `json:"day_number"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Points      []ProgramPointInput `json:"points"`
}

type CreateProgramInput struct {
	Title        string
	Description  string
	BasePrice    float64
	DurationDays int
	BookingType  string
	Regions      []string
	Tags         []string
	Images       []string
	Days         []ProgramDayInput
}

var validBookingTypes = map[string]bool{
	models.BookingTypeDirectOnly:  true,
	models.BookingTypeAuctionOnly: true,
	models.BookingTypeBoth:        true,
}

// CreateProgram stores a new program with its day-by-day itinerary. Programs
// start unapproved and stay out of the public catalog until an admin approves
// them.
func (s *ProgramService) CreateProgram(guideID uuid.UUID, input CreateProgramInput) (*models.Program, error) {
	if input.Title == "" || input.BasePrice <= 0 {
		return nil, apperrors.BadRequest("title and a positive base price are required")
	}
	bookingType := input.BookingType
	if bookingType == "" {
		bookingType = models.BookingTypeBoth
	}
	if !validBookingTypes[bookingType] {
		return nil, apperrors.BadRequest("invalid booking type %q", bookingType)
	}
	durationDays := input.DurationDays
	if durationDays == 0 {
		durationDays = 1
	}

	program := models.Program{
		GuideID:      guideID,
		Title:        input.Title,
		Description:  input.Description,
		BasePrice:    input.BasePrice,
		DurationDays: durationDays,
		BookingType:  bookingType,
		Regions:      input.Regions,
		Tags:         input.Tags,
		Images:       input.Images,
		IsActive:     true,
	}
	for _, day := range input.Days {
		programDay := models.ProgramDay{
			DayNumber:   day.DayNumber,
			Title:       day.Title,
			Description: day.Description,
		}
		for _, point := range day.Points {
			programDay.Points = append(programDay.Points, models.ProgramPoint{
				OrderNumber: point.OrderNumber,
				Title:       point.Title,
				Description: point.Description,
				Latitude:    point.Latitude,
				Longitude:   point.Longitude,
			})
		}
		program.Days = append(program.Days, programDay)
	}

	if err := s.programs.CreateProgram(&program); err != nil {
		return nil, err
	}
	return &program, nil
}

func (s *ProgramService) GetProgram(id uuid.UUID) (*models.Program, error) {
	return s.programs.GetProgram(id)
}

func (s *ProgramService) ListPublishedPrograms() ([]models.Program, error) {
	return s.programs.ListPublishedPrograms()
}

func (s *ProgramService) UpdateProgramApprovalStatus(id uuid.UUID, approved bool) (*models.Program, error) {
	if _, err := s.programs.GetProgram(id); err != nil {
		return nil, err
	}
	if err := s.programs.SetProgramApproval(id, approved); err != nil {
		return nil, err
	}
	return s.programs.GetProgram(id)
}
