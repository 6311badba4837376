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

	"github.com/google/uuid"
)

// SquadService defines the interface for squads, their leaderboards and collective challenges.
type SquadService interface {
	CreateSquad(ctx context.Context, userID uuid.UUID, req *dto.SquadRequest) (*dto.SquadResponse, error)
	GetSquad(ctx context.Context, userID, id uuid.UUID) (*dto.SquadResponse, error)
	GetMySquads(ctx context.Context, userID uuid.UUID) ([]*dto.SquadResponse, error)
	JoinSquad(ctx context.Context, userID, id uuid.UUID) (*dto.SquadResponse, error)
	LeaveSquad(ctx context.Context, userID, id uuid.UUID) error
	SquadLeaderboard(ctx context.Context, userID, id uuid.UUID, q *dto.LeaderboardQuery) (*entity.LeaderboardSnapshot, error)
	SquadChallenges(ctx context.Context, userID, id uuid.UUID) (*dto.SquadChallengesResponse, error)
}

// NewSquadService creates a new squad service.
func NewSquadService(
	squadRepo repository.SquadRepository,
	profileRepo repository.ProfileRepository,
	tradeRepo repository.TradeRepository,
	minTrades int,
	defaultTimeZone string,
	log *logger.Logger,
) SquadService {
	return &squadService{
		squadRepo:   squadRepo,
		profileRepo: profileRepo,
		tradeRepo:   tradeRepo,
		minTrades:   minTrades,
		locations:   newLocationResolver(profileRepo, defaultTimeZone),
		logger:      log,
		now:         time.Now,
	}
}

type squadService struct {
	squadRepo   repository.SquadRepository
	profileRepo repository.ProfileRepository
	tradeRepo   repository.TradeRepository
	minTrades   int
	locations   locationResolver
	logger      *logger.Logger
	now         func() time.Time
}

// CreateSquad creates a squad owned by the caller.
func (s *squadService) CreateSquad(ctx context.Context, userID uuid.UUID, req *dto.SquadRequest) (*dto.SquadResponse, error) {
	squad := &entity.Squad{Name: req.Name, Description: req.Description, IsPrivate: req.IsPrivate, OwnerID: userID}
	if err := s.squadRepo.Create(ctx, squad); err != nil {
		s.logger.ErrorContext(ctx, "Failed to create squad", logger.ErrorField(err), logger.Field("user_id", userID))
		return nil, err
	}
	s.logger.InfoContext(ctx, "Squad created", logger.Field("squad_id", squad.ID), logger.Field("owner_id", userID))
	return s.GetSquad(ctx, userID, squad.ID)
}

// GetSquad returns a squad. Private squads are only visible to their members.
func (s *squadService) GetSquad(ctx context.Context, userID, id uuid.UUID) (*dto.SquadResponse, error) {
	squad, err := s.squadRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if squad.IsPrivate && !hasMember(squad, userID) {
		return nil, ErrForbidden
	}
	return s.mapToSquadResponse(ctx, squad)
}

func (s *squadService) GetMySquads(ctx context.Context, userID uuid.UUID) ([]*dto.SquadResponse, error) {
	squads, err := s.squadRepo.FindByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SquadResponse, 0, len(squads))
	for i := range squads {
		resp, err := s.mapToSquadResponse(ctx, &squads[i])
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// JoinSquad enrolls the caller in a public squad.
func (s *squadService) JoinSquad(ctx context.Context, userID, id uuid.UUID) (*dto.SquadResponse, error) {
	squad, err := s.squadRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if squad.IsPrivate {
		return nil, ErrForbidden
	}
	err = s.squadRepo.AddMember(ctx, &entity.SquadMember{SquadID: id, UserID: userID, Role: entity.SquadRoleMember})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: already a member", ErrConflict)
		}
		return nil, err
	}
	return s.GetSquad(ctx, userID, id)
}

// LeaveSquad removes the caller from a squad. The owner cannot leave.
func (s *squadService) LeaveSquad(ctx context.Context, userID, id uuid.UUID) error {
	squad, err := s.squadRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if squad.OwnerID == userID {
		return fmt.Errorf("%w: the owner cannot leave the squad", ErrValidation)
	}
	return s.squadRepo.RemoveMember(ctx, id, userID)
}

// SquadLeaderboard ranks the squad's members. Members see each other regardless of their public
// leaderboard setting.
func (s *squadService) SquadLeaderboard(ctx context.Context, userID, id uuid.UUID, q *dto.LeaderboardQuery) (*entity.LeaderboardSnapshot, error) {
	squad, err := s.memberSquad(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	period, metric, err := parseLeaderboardQuery(q)
	if err != nil {
		return nil, err
	}

	ids := memberIDs(squad)
	profiles, err := s.memberProfiles(ctx, ids)
	if err != nil {
		return nil, err
	}
	trades, err := s.tradeRepo.FindClosedByUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	snapshot := entity.NewLeaderboardSnapshot(profiles, trades, metrics.LeaderboardOptions{
		Period:    period,
		Metric:    metric,
		Now:       s.now(),
		MinTrades: s.minTrades,
	})
	return &snapshot, nil
}

// SquadChallenges evaluates the weekly squad goals over every member's trades this week.
func (s *squadService) SquadChallenges(ctx context.Context, userID, id uuid.UUID) (*dto.SquadChallengesResponse, error) {
	squad, err := s.memberSquad(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	loc := s.locations.resolve(ctx, userID)
	start, end := metrics.ChallengeWindow(metrics.ChallengeWeekly, s.now(), loc)

	trades, err := s.tradeRepo.FindClosedByUsers(ctx, memberIDs(squad))
	if err != nil {
		return nil, err
	}
	window := metrics.Between(entity.ToMetrics(trades), start, end)

	byUser := make(map[string][]metrics.Trade)
	for _, t := range window {
		byUser[t.UserID] = append(byUser[t.UserID], t)
	}
	stats := metrics.Stats{Summary: metrics.Summarize(window)}
	for _, own := range byUser {
		stats.GreenDays += metrics.GreenDays(metrics.DailyResults(own, loc))
	}

	return &dto.SquadChallengesResponse{
		SquadID:     squad.ID,
		WindowStart: start,
		WindowEnd:   end,
		Challenges:  metrics.Evaluate(metrics.SquadChallenges(), stats),
	}, nil
}

func (s *squadService) memberSquad(ctx context.Context, userID, id uuid.UUID) (*entity.Squad, error) {
	squad, err := s.squadRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !hasMember(squad, userID) {
		return nil, ErrForbidden
	}
	return squad, nil
}

// memberProfiles returns a profile per member, with an empty name for members who never created one.
func (s *squadService) memberProfiles(ctx context.Context, ids []uuid.UUID) ([]entity.Profile, error) {
	profiles, err := s.profileRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	seen := make(map[uuid.UUID]bool, len(profiles))
	for _, p := range profiles {
		seen[p.ID] = true
	}
	for _, id := range ids {
		if !seen[id] {
			profiles = append(profiles, entity.Profile{ID: id})
		}
	}
	return profiles, nil
}

func (s *squadService) mapToSquadResponse(ctx context.Context, squad *entity.Squad) (*dto.SquadResponse, error) {
	ids := memberIDs(squad)
	profiles, err := s.profileRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(profiles))
	for _, p := range profiles {
		names[p.ID] = p.Username
	}

	members := make([]dto.SquadMemberResponse, 0, len(squad.Members))
	for _, m := range squad.Members {
		members = append(members, dto.SquadMemberResponse{
			UserID:   m.UserID,
			Username: names[m.UserID],
			Role:     string(m.Role),
			JoinedAt: m.JoinedAt,
		})
	}
	return &dto.SquadResponse{
		ID:          squad.ID,
		Name:        squad.Name,
		Description: squad.Description,
		OwnerID:     squad.OwnerID,
		IsPrivate:   squad.IsPrivate,
		Members:     members,
		CreatedAt:   squad.CreatedAt,
	}, nil
}

func hasMember(squad *entity.Squad, userID uuid.UUID) bool {
	for _, m := range squad.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

func memberIDs(squad *entity.Squad) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(squad.Members))
	for _, m := range squad.Members {
		ids = append(ids, m.UserID)
	}
	return ids
}
