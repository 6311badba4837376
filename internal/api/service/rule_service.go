package service

import (
	"context"
	"fmt"
	"time"

	"golang-trading-journal/internal/api/dto"
	"golang-trading-journal/internal/api/repository"
	"golang-trading-journal/internal/entity"
	"golang-trading-journal/pkg/logger"
	"golang-trading-journal/pkg/utils"

	"github.com/google/uuid"
)

const defaultAdherenceDays = 30

// RuleService defines the interface for trading rules and adherence tracking.
type RuleService interface {
	CreateRule(ctx context.Context, userID uuid.UUID, req *dto.RuleRequest) (*dto.RuleResponse, error)
	GetAllRules(ctx context.Context, userID uuid.UUID) ([]*dto.RuleResponse, error)
	UpdateRule(ctx context.Context, userID, id uuid.UUID, req *dto.RuleRequest) (*dto.RuleResponse, error)
	DeleteRule(ctx context.Context, userID, id uuid.UUID) error
	CheckRule(ctx context.Context, userID, id uuid.UUID, req *dto.RuleCheckRequest) error
	Adherence(ctx context.Context, userID uuid.UUID, from, to string) (*dto.AdherenceResponse, error)
}

// NewRuleService creates a new rule service.
func NewRuleService(ruleRepo repository.RuleRepository, profileRepo repository.ProfileRepository, defaultTimeZone string, log *logger.Logger) RuleService {
	return &ruleService{
		ruleRepo:  ruleRepo,
		locations: newLocationResolver(profileRepo, defaultTimeZone),
		logger:    log,
		now:       time.Now,
	}
}

type ruleService struct {
	ruleRepo  repository.RuleRepository
	locations locationResolver
	logger    *logger.Logger
	now       func() time.Time
}

func (s *ruleService) CreateRule(ctx context.Context, userID uuid.UUID, req *dto.RuleRequest) (*dto.RuleResponse, error) {
	rule := &entity.UserRule{UserID: userID, Title: req.Title, Description: req.Description, IsActive: true}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	if err := s.ruleRepo.Create(ctx, rule); err != nil {
		s.logger.ErrorContext(ctx, "Failed to create rule", logger.ErrorField(err), logger.Field("user_id", userID))
		return nil, err
	}
	return mapToRuleResponse(rule), nil
}

func (s *ruleService) GetAllRules(ctx context.Context, userID uuid.UUID) ([]*dto.RuleResponse, error) {
	rules, err := s.ruleRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.RuleResponse, 0, len(rules))
	for i := range rules {
		out = append(out, mapToRuleResponse(&rules[i]))
	}
	return out, nil
}

func (s *ruleService) UpdateRule(ctx context.Context, userID, id uuid.UUID, req *dto.RuleRequest) (*dto.RuleResponse, error) {
	rule, err := s.ruleRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	rule.Title = req.Title
	rule.Description = req.Description
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	if err := s.ruleRepo.Update(ctx, rule); err != nil {
		return nil, err
	}
	return mapToRuleResponse(rule), nil
}

func (s *ruleService) DeleteRule(ctx context.Context, userID, id uuid.UUID) error {
	return s.ruleRepo.Delete(ctx, userID, id)
}

// CheckRule records whether the rule was followed on a day, today in the user's zone by default.
func (s *ruleService) CheckRule(ctx context.Context, userID, id uuid.UUID, req *dto.RuleCheckRequest) error {
	if _, err := s.ruleRepo.FindByID(ctx, userID, id); err != nil {
		return err
	}
	date := req.Date
	if date == "" {
		date = utils.FormatDate(s.now(), s.locations.resolve(ctx, userID))
	} else if err := checkDate(date); err != nil {
		return err
	}
	return s.ruleRepo.UpsertCheck(ctx, &entity.UserRuleCheck{
		UserID:   userID,
		RuleID:   id,
		Date:     date,
		Followed: req.Followed,
	})
}

// Adherence reports followed/checked percentages per rule and overall. The default range is the
// last 30 days up to today.
func (s *ruleService) Adherence(ctx context.Context, userID uuid.UUID, from, to string) (*dto.AdherenceResponse, error) {
	loc := s.locations.resolve(ctx, userID)
	if to == "" {
		to = utils.FormatDate(s.now(), loc)
	}
	if from == "" {
		end, err := utils.ParseDate(to, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: to must be YYYY-MM-DD", ErrValidation)
		}
		from = utils.FormatDate(end.AddDate(0, 0, -(defaultAdherenceDays-1)), loc)
	}
	for _, d := range []string{from, to} {
		if err := checkDate(d); err != nil {
			return nil, err
		}
	}

	rules, err := s.ruleRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	checks, err := s.ruleRepo.FindChecks(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	type tally struct{ checks, followed int }
	perRule := make(map[uuid.UUID]*tally, len(rules))
	for _, c := range checks {
		t, ok := perRule[c.RuleID]
		if !ok {
			t = &tally{}
			perRule[c.RuleID] = t
		}
		t.checks++
		if c.Followed {
			t.followed++
		}
	}

	resp := &dto.AdherenceResponse{From: from, To: to, Rules: make([]dto.RuleAdherence, 0, len(rules))}
	for _, r := range rules {
		t := perRule[r.ID]
		if t == nil {
			t = &tally{}
		}
		resp.Rules = append(resp.Rules, dto.RuleAdherence{
			RuleID:   r.ID,
			Title:    r.Title,
			Checks:   t.checks,
			Followed: t.followed,
			Percent:  percent(t.followed, t.checks),
		})
		resp.Checks += t.checks
		resp.Followed += t.followed
	}
	resp.Percent = percent(resp.Followed, resp.Checks)
	return resp, nil
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func mapToRuleResponse(r *entity.UserRule) *dto.RuleResponse {
	return &dto.RuleResponse{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
	}
}
