package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang-trading-journal/internal/api/dto"
	"golang-trading-journal/internal/api/repository"
	"golang-trading-journal/internal/entity"
	"golang-trading-journal/internal/metrics"
	"golang-trading-journal/pkg/logger"
	"golang-trading-journal/pkg/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// JournalService defines the interface for daily journals.
type JournalService interface {
	SaveJournal(ctx context.Context, userID uuid.UUID, date string, req *dto.JournalRequest) (*dto.JournalResponse, error)
	GetJournal(ctx context.Context, userID uuid.UUID, date string) (*dto.JournalResponse, error)
	ListJournals(ctx context.Context, userID uuid.UUID, from, to string) ([]*dto.JournalResponse, error)
	DeleteJournal(ctx context.Context, userID uuid.UUID, date string) error
}

// NewJournalService creates a new journal service.
func NewJournalService(
	journalRepo repository.JournalRepository,
	tradeRepo repository.TradeRepository,
	profileRepo repository.ProfileRepository,
	defaultTimeZone string,
	log *logger.Logger,
) JournalService {
	return &journalService{
		journalRepo: journalRepo,
		tradeRepo:   tradeRepo,
		locations:   newLocationResolver(profileRepo, defaultTimeZone),
		logger:      log,
	}
}

type journalService struct {
	journalRepo repository.JournalRepository
	tradeRepo   repository.TradeRepository
	locations   locationResolver
	logger      *logger.Logger
}

func checkDate(date string) error {
	if _, err := time.Parse(utils.DateLayout, date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	return nil
}

// SaveJournal writes the single entry of a day. Saving again replaces it.
func (s *journalService) SaveJournal(ctx context.Context, userID uuid.UUID, date string, req *dto.JournalRequest) (*dto.JournalResponse, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}

	goals := make([]entity.JournalGoal, 0, len(req.Goals))
	for _, g := range req.Goals {
		goals = append(goals, entity.JournalGoal{Text: g.Text, Done: g.Done})
	}
	journal := &entity.DailyJournal{
		UserID:           userID,
		Date:             date,
		PreMarketNotes:   req.PreMarketNotes,
		PostMarketNotes:  req.PostMarketNotes,
		Lessons:          req.Lessons,
		MoodRating:       req.MoodRating,
		FocusRating:      req.FocusRating,
		DisciplineRating: req.DisciplineRating,
		Goals:            datatypes.JSONSlice[entity.JournalGoal](goals),
	}
	if err := s.journalRepo.Upsert(ctx, journal); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save journal", logger.ErrorField(err), logger.StringField("date", date))
		return nil, err
	}
	return s.GetJournal(ctx, userID, date)
}

// GetJournal returns the day's entry with that day's trading result. A day without an entry still
// returns its result, with no id.
func (s *journalService) GetJournal(ctx context.Context, userID uuid.UUID, date string) (*dto.JournalResponse, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}

	journal, err := s.journalRepo.FindByDate(ctx, userID, date)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	day, err := s.dayResult(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if journal == nil {
		return &dto.JournalResponse{Date: date, Goals: []dto.JournalGoalDTO{}, Day: day}, nil
	}
	return mapToJournalResponse(journal, day), nil
}

// ListJournals returns the entries between from and to (inclusive) with their daily results.
func (s *journalService) ListJournals(ctx context.Context, userID uuid.UUID, from, to string) ([]*dto.JournalResponse, error) {
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if err := checkDate(d); err != nil {
			return nil, err
		}
	}

	journals, err := s.journalRepo.FindRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	trades, err := s.tradeRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	days := make(map[string]metrics.DayResult)
	for _, d := range metrics.DailyResults(entity.ToMetrics(trades), s.locations.resolve(ctx, userID)) {
		days[d.Date] = d
	}

	out := make([]*dto.JournalResponse, 0, len(journals))
	for i := range journals {
		day, ok := days[journals[i].Date]
		if !ok {
			day = metrics.DayResult{Date: journals[i].Date}
		}
		out = append(out, mapToJournalResponse(&journals[i], day))
	}
	return out, nil
}

func (s *journalService) DeleteJournal(ctx context.Context, userID uuid.UUID, date string) error {
	if err := checkDate(date); err != nil {
		return err
	}
	return s.journalRepo.Delete(ctx, userID, date)
}

func (s *journalService) dayResult(ctx context.Context, userID uuid.UUID, date string) (metrics.DayResult, error) {
	trades, err := s.tradeRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return metrics.DayResult{}, err
	}
	for _, d := range metrics.DailyResults(entity.ToMetrics(trades), s.locations.resolve(ctx, userID)) {
		if d.Date == date {
			return d, nil
		}
	}
	return metrics.DayResult{Date: date}, nil
}

func mapToJournalResponse(j *entity.DailyJournal, day metrics.DayResult) *dto.JournalResponse {
	goals := make([]dto.JournalGoalDTO, 0, len(j.Goals))
	for _, g := range j.Goals {
		goals = append(goals, dto.JournalGoalDTO{Text: g.Text, Done: g.Done})
	}
	return &dto.JournalResponse{
		ID:               utils.ToPointer(j.ID),
		Date:             j.Date,
		PreMarketNotes:   j.PreMarketNotes,
		PostMarketNotes:  j.PostMarketNotes,
		Lessons:          j.Lessons,
		MoodRating:       j.MoodRating,
		FocusRating:      j.FocusRating,
		DisciplineRating: j.DisciplineRating,
		Goals:            goals,
		Day:              day,
		UpdatedAt:        utils.ToPointer(j.UpdatedAt),
	}
}
