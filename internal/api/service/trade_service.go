package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang-trading-journal/internal/api/dto"
	"golang-trading-journal/internal/api/repository"
	"golang-trading-journal/internal/entity"
	"golang-trading-journal/pkg/logger"
	"golang-trading-journal/pkg/utils"
	"golang-trading-journal/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	defaultPerPage = 50
	maxImportRows  = 5000
)

// TradeService defines the interface for managing trades.
type TradeService interface {
	CreateTrade(ctx context.Context, userID uuid.UUID, req *dto.TradeRequest) (*dto.TradeResponse, error)
	GetTrade(ctx context.Context, userID, id uuid.UUID) (*dto.TradeResponse, error)
	UpdateTrade(ctx context.Context, userID, id uuid.UUID, req *dto.TradeRequest) (*dto.TradeResponse, error)
	DeleteTrade(ctx context.Context, userID, id uuid.UUID) error
	ListTrades(ctx context.Context, userID uuid.UUID, q *dto.TradeListQuery) (*dto.TradeListResponse, error)
	ReassignAccount(ctx context.Context, userID uuid.UUID, req *dto.ReassignAccountRequest) (*dto.ReassignAccountResponse, error)
	ImportCSV(ctx context.Context, userID uuid.UUID, r io.Reader) (*dto.ImportResult, error)
}

// NewTradeService creates a new trade service.
func NewTradeService(
	tradeRepo repository.TradeRepository,
	accountRepo repository.AccountRepository,
	setupRepo repository.SetupRepository,
	profileRepo repository.ProfileRepository,
	publisher TradeEventPublisher,
	defaultTimeZone string,
	log *logger.Logger,
) TradeService {
	return &tradeService{
		tradeRepo:   tradeRepo,
		accountRepo: accountRepo,
		setupRepo:   setupRepo,
		publisher:   publisher,
		locations:   newLocationResolver(profileRepo, defaultTimeZone),
		logger:      log,
		now:         time.Now,
	}
}

type tradeService struct {
	tradeRepo   repository.TradeRepository
	accountRepo repository.AccountRepository
	setupRepo   repository.SetupRepository
	publisher   TradeEventPublisher
	locations   locationResolver
	logger      *logger.Logger
	now         func() time.Time
}

// CreateTrade validates, derives and stores a new trade.
func (s *tradeService) CreateTrade(ctx context.Context, userID uuid.UUID, req *dto.TradeRequest) (*dto.TradeResponse, error) {
	trade := &entity.Trade{UserID: userID}
	if err := s.apply(ctx, trade, req); err != nil {
		return nil, err
	}

	if err := s.tradeRepo.Create(ctx, trade); err != nil {
		s.logger.ErrorContext(ctx, "Failed to create trade", logger.ErrorField(err), logger.Field("user_id", userID))
		return nil, err
	}

	s.publish(ctx, TradeEventCreated, userID, trade.ID)
	return mapToTradeResponse(trade), nil
}

// GetTrade retrieves one trade of the caller.
func (s *tradeService) GetTrade(ctx context.Context, userID, id uuid.UUID) (*dto.TradeResponse, error) {
	trade, err := s.tradeRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return mapToTradeResponse(trade), nil
}

// UpdateTrade replaces every editable field of a trade. Concurrent updates are last-write-wins.
func (s *tradeService) UpdateTrade(ctx context.Context, userID, id uuid.UUID, req *dto.TradeRequest) (*dto.TradeResponse, error) {
	trade, err := s.tradeRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, trade, req); err != nil {
		return nil, err
	}

	if err := s.tradeRepo.Update(ctx, trade); err != nil {
		s.logger.ErrorContext(ctx, "Failed to update trade", logger.ErrorField(err), logger.Field("trade_id", id))
		return nil, err
	}

	s.publish(ctx, TradeEventUpdated, userID, trade.ID)
	return mapToTradeResponse(trade), nil
}

// DeleteTrade removes a trade of the caller.
func (s *tradeService) DeleteTrade(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.tradeRepo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Trade deleted", logger.Field("trade_id", id), logger.Field("user_id", userID))
	s.publish(ctx, TradeEventDeleted, userID, id)
	return nil
}

// ListTrades fetches all of the caller's trades, filters them in memory and returns one page.
func (s *tradeService) ListTrades(ctx context.Context, userID uuid.UUID, q *dto.TradeListQuery) (*dto.TradeListResponse, error) {
	trades, err := s.tradeRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	filter, err := newTradeFilter(q, s.locations.resolve(ctx, userID))
	if err != nil {
		return nil, err
	}
	matched := make([]entity.Trade, 0, len(trades))
	for i := range trades {
		if filter.match(&trades[i]) {
			matched = append(matched, trades[i])
		}
	}

	page, perPage := q.Page, q.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	start := (page - 1) * perPage
	if start > len(matched) {
		start = len(matched)
	}
	end := start + perPage
	if end > len(matched) {
		end = len(matched)
	}

	data := make([]dto.TradeResponse, 0, end-start)
	for i := start; i < end; i++ {
		data = append(data, *mapToTradeResponse(&matched[i]))
	}
	return &dto.TradeListResponse{Data: data, Total: len(matched), Page: page, PerPage: perPage}, nil
}

// ReassignAccount moves a batch of the caller's trades to another account.
func (s *tradeService) ReassignAccount(ctx context.Context, userID uuid.UUID, req *dto.ReassignAccountRequest) (*dto.ReassignAccountResponse, error) {
	if req.AccountID != nil {
		if _, err := s.accountRepo.FindByID(ctx, userID, *req.AccountID); err != nil {
			return nil, fmt.Errorf("%w: unknown account", ErrValidation)
		}
	}

	n, err := s.tradeRepo.ReassignAccount(ctx, userID, req.TradeIDs, req.AccountID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to reassign trades", logger.ErrorField(err), logger.Field("user_id", userID))
		return nil, err
	}

	s.publish(ctx, TradeEventReassigned, userID, req.TradeIDs...)
	return &dto.ReassignAccountResponse{Updated: n}, nil
}

// ImportCSV turns header-led CSV records into trades. Invalid rows are reported and skipped; valid
// rows are stored.
func (s *tradeService) ImportCSV(ctx context.Context, userID uuid.UUID, r io.Reader) (*dto.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: csv needs a header row", ErrValidation)
	}

	parser, err := newCSVTradeParser(header, s.locations.resolve(ctx, userID))
	if err != nil {
		return nil, err
	}

	result := &dto.ImportResult{Errors: []dto.ImportRowError{}}
	trades := make([]entity.Trade, 0)
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		var parseErr *csv.ParseError
		if err != nil && !errors.As(err, &parseErr) {
			return nil, err
		}
		if row > maxImportRows {
			return nil, fmt.Errorf("%w: at most %d rows per import", ErrValidation, maxImportRows)
		}
		var req *dto.TradeRequest
		if err == nil {
			req, err = parser.parse(record)
		}
		if err == nil {
			trade := entity.Trade{UserID: userID}
			if err = s.apply(ctx, &trade, req); err == nil {
				trade.ID = uuid.New()
				trades = append(trades, trade)
				continue
			}
		}
		result.Errors = append(result.Errors, dto.ImportRowError{Row: row, Error: err.Error()})
	}
	if len(trades) == 0 && len(result.Errors) == 0 {
		return nil, fmt.Errorf("%w: csv has no trade rows", ErrValidation)
	}

	if err := s.tradeRepo.CreateBatch(ctx, trades); err != nil {
		s.logger.ErrorContext(ctx, "Failed to store imported trades", logger.ErrorField(err), logger.IntField("rows", len(trades)))
		return nil, err
	}

	result.Imported = len(trades)
	result.Failed = len(result.Errors)
	s.logger.InfoContext(ctx, "Trades imported",
		logger.Field("user_id", userID),
		logger.IntField("imported", result.Imported),
		logger.IntField("failed", result.Failed))

	if len(trades) > 0 {
		ids := make([]uuid.UUID, 0, len(trades))
		for _, t := range trades {
			ids = append(ids, t.ID)
		}
		s.publish(ctx, TradeEventImported, userID, ids...)
	}
	return result, nil
}

// apply copies a request onto a trade, checks references and derives the computed fields.
func (s *tradeService) apply(ctx context.Context, trade *entity.Trade, req *dto.TradeRequest) error {
	if err := validateTradeRequest(req); err != nil {
		return err
	}
	if req.AccountID != nil {
		if _, err := s.accountRepo.FindByID(ctx, trade.UserID, *req.AccountID); err != nil {
			return fmt.Errorf("%w: unknown account", ErrValidation)
		}
	}
	if req.SetupID != nil {
		if _, err := s.setupRepo.FindByID(ctx, trade.UserID, *req.SetupID); err != nil {
			return fmt.Errorf("%w: unknown setup", ErrValidation)
		}
	}

	trade.AccountID = req.AccountID
	trade.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))
	trade.Side = entity.TradeSide(req.Side)
	trade.EntryTime = req.EntryTime.UTC()
	trade.EntryPrice = req.EntryPrice
	trade.EntrySize = req.EntrySize
	trade.ExitTime = nil
	if req.ExitTime != nil {
		trade.ExitTime = utils.ToPointer(req.ExitTime.UTC())
	}
	trade.ExitPrice = nullDecimal(req.ExitPrice)
	trade.ExitSize = nullDecimal(req.ExitSize)
	trade.StopLoss = nullDecimal(req.StopLoss)
	trade.TakeProfit = nullDecimal(req.TakeProfit)
	trade.GrossPnL = nullDecimal(req.GrossPnL)
	trade.Commission = req.Commission
	trade.Fees = req.Fees
	trade.SetupID = req.SetupID
	trade.Session = req.Session
	trade.EmotionTags = datatypes.JSONSlice[string](req.EmotionTags)
	trade.EntryRating = req.EntryRating
	trade.ExitRating = req.ExitRating
	trade.ManagementRating = req.ManagementRating
	trade.Notes = req.Notes
	trade.IsPublic = req.IsPublic

	trade.Derive()
	return nil
}

// tradeRules applies the request's struct tags to rows that never pass through the HTTP binder.
var tradeRules = validator.New()

func validateTradeRequest(req *dto.TradeRequest) error {
	if err := tradeRules.Validate(req); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, validator.Describe(err))
	}
	if strings.TrimSpace(req.Symbol) == "" {
		return fmt.Errorf("%w: symbol is required", ErrValidation)
	}
	if req.Side != string(entity.SideLong) && req.Side != string(entity.SideShort) {
		return fmt.Errorf("%w: side must be long or short", ErrValidation)
	}
	if req.EntryTime.IsZero() {
		return fmt.Errorf("%w: entry_time is required", ErrValidation)
	}
	if !req.EntryPrice.IsPositive() {
		return fmt.Errorf("%w: entry_price must be positive", ErrValidation)
	}
	if !req.EntrySize.IsPositive() {
		return fmt.Errorf("%w: entry_size must be positive", ErrValidation)
	}
	if req.ExitPrice != nil && !req.ExitPrice.IsPositive() {
		return fmt.Errorf("%w: exit_price must be positive", ErrValidation)
	}
	if req.ExitSize != nil && req.ExitSize.IsNegative() {
		return fmt.Errorf("%w: exit_size must not be negative", ErrValidation)
	}
	if req.StopLoss != nil && req.StopLoss.IsNegative() {
		return fmt.Errorf("%w: stop_loss must not be negative", ErrValidation)
	}
	if req.ExitTime != nil && req.ExitTime.Before(req.EntryTime) {
		return fmt.Errorf("%w: exit_time is before entry_time", ErrValidation)
	}
	if req.Commission.IsNegative() || req.Fees.IsNegative() {
		return fmt.Errorf("%w: commission and fees must not be negative", ErrValidation)
	}
	return nil
}

func (s *tradeService) publish(ctx context.Context, typ TradeEventType, userID uuid.UUID, ids ...uuid.UUID) {
	event := TradeEvent{Type: typ, UserID: userID, TradeIDs: ids, OccurredAt: s.now()}
	if err := s.publisher.Publish(ctx, event); err != nil {
		// the write already happened; the worker catches up on the next scheduled refresh
		s.logger.ErrorContext(ctx, "Failed to publish trade event", logger.ErrorField(err), logger.StringField("type", string(typ)))
	}
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func decimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	return utils.ToPointer(d.Decimal)
}

func mapToTradeResponse(t *entity.Trade) *dto.TradeResponse {
	tags := []string(t.EmotionTags)
	if tags == nil {
		tags = []string{}
	}
	return &dto.TradeResponse{
		ID:               t.ID,
		AccountID:        t.AccountID,
		Symbol:           t.Symbol,
		Side:             string(t.Side),
		Status:           string(t.Status),
		EntryTime:        t.EntryTime,
		EntryPrice:       t.EntryPrice,
		EntrySize:        t.EntrySize,
		ExitTime:         t.ExitTime,
		ExitPrice:        decimalPtr(t.ExitPrice),
		ExitSize:         decimalPtr(t.ExitSize),
		StopLoss:         decimalPtr(t.StopLoss),
		TakeProfit:       decimalPtr(t.TakeProfit),
		GrossPnL:         decimalPtr(t.GrossPnL),
		Commission:       t.Commission,
		Fees:             t.Fees,
		NetPnL:           decimalPtr(t.NetPnL),
		RMultiple:        decimalPtr(t.RMultiple),
		SetupID:          t.SetupID,
		Session:          t.Session,
		EmotionTags:      tags,
		EntryRating:      t.EntryRating,
		ExitRating:       t.ExitRating,
		ManagementRating: t.ManagementRating,
		Notes:            t.Notes,
		IsPublic:         t.IsPublic,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}
