package service

import (
	"fmt"
	"strings"
	"time"

	"golang-trading-journal/internal/api/dto"

	"github.com/shopspring/decimal"
)

// csvColumns maps accepted header spellings onto trade fields.
var csvColumns = map[string]string{
	"symbol":      "symbol",
	"ticker":      "symbol",
	"instrument":  "symbol",
	"side":        "side",
	"direction":   "side",
	"entry_time":  "entry_time",
	"entry_date":  "entry_time",
	"open_time":   "entry_time",
	"date":        "entry_time",
	"entry_price": "entry_price",
	"entry":       "entry_price",
	"quantity":    "entry_size",
	"qty":         "entry_size",
	"size":        "entry_size",
	"entry_size":  "entry_size",
	"units":       "entry_size",
	"exit_time":   "exit_time",
	"exit_date":   "exit_time",
	"close_time":  "exit_time",
	"exit_price":  "exit_price",
	"exit":        "exit_price",
	"exit_size":   "exit_size",
	"stop_loss":   "stop_loss",
	"stop":        "stop_loss",
	"take_profit": "take_profit",
	"target":      "take_profit",
	"gross_pnl":   "gross_pnl",
	"pnl":         "gross_pnl",
	"commission":  "commission",
	"fees":        "fees",
	"session":     "session",
	"notes":       "notes",
}

var csvRequired = []string{"symbol", "side", "entry_time", "entry_price", "entry_size"}

var csvTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"01/02/2006 15:04",
	"2006-01-02",
}

// csvTradeParser converts one CSV record into a TradeRequest according to the header.
type csvTradeParser struct {
	index map[string]int
	loc   *time.Location
}

func newCSVTradeParser(header []string, loc *time.Location) (*csvTradeParser, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		key = strings.ReplaceAll(key, " ", "_")
		if field, ok := csvColumns[key]; ok {
			if _, dup := index[field]; !dup {
				index[field] = i
			}
		}
	}

	var missing []string
	for _, f := range csvRequired {
		if _, ok := index[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: csv header is missing %s", ErrValidation, strings.Join(missing, ", "))
	}
	return &csvTradeParser{index: index, loc: loc}, nil
}

func (p *csvTradeParser) value(record []string, field string) string {
	i, ok := p.index[field]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func (p *csvTradeParser) parse(record []string) (*dto.TradeRequest, error) {
	req := &dto.TradeRequest{
		Symbol:  p.value(record, "symbol"),
		Session: p.value(record, "session"),
		Notes:   p.value(record, "notes"),
	}

	switch strings.ToLower(p.value(record, "side")) {
	case "long", "buy", "b":
		req.Side = "long"
	case "short", "sell", "s":
		req.Side = "short"
	default:
		return nil, fmt.Errorf("%w: side %q is not long or short", ErrValidation, p.value(record, "side"))
	}

	var err error
	if req.EntryTime, err = p.parseTime(p.value(record, "entry_time")); err != nil {
		return nil, fmt.Errorf("%w: entry_time: %v", ErrValidation, err)
	}
	if req.EntryPrice, err = parseDecimal(p.value(record, "entry_price")); err != nil {
		return nil, fmt.Errorf("%w: entry_price: %v", ErrValidation, err)
	}
	if req.EntrySize, err = parseDecimal(p.value(record, "entry_size")); err != nil {
		return nil, fmt.Errorf("%w: entry_size: %v", ErrValidation, err)
	}
	if req.Commission, err = parseOptionalDecimal(p.value(record, "commission")); err != nil {
		return nil, fmt.Errorf("%w: commission: %v", ErrValidation, err)
	}
	if req.Fees, err = parseOptionalDecimal(p.value(record, "fees")); err != nil {
		return nil, fmt.Errorf("%w: fees: %v", ErrValidation, err)
	}

	if v := p.value(record, "exit_time"); v != "" {
		t, err := p.parseTime(v)
		if err != nil {
			return nil, fmt.Errorf("%w: exit_time: %v", ErrValidation, err)
		}
		req.ExitTime = &t
	}

	optional := []struct {
		field string
		dst   **decimal.Decimal
	}{
		{"exit_price", &req.ExitPrice},
		{"exit_size", &req.ExitSize},
		{"stop_loss", &req.StopLoss},
		{"take_profit", &req.TakeProfit},
		{"gross_pnl", &req.GrossPnL},
	}
	for _, o := range optional {
		v := p.value(record, o.field)
		if v == "" {
			continue
		}
		d, err := parseDecimal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrValidation, o.field, err)
		}
		*o.dst = &d
	}
	return req, nil
}

func (p *csvTradeParser) parseTime(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, fmt.Errorf("empty")
	}
	for _, layout := range csvTimeLayouts {
		if t, err := time.ParseInLocation(layout, v, p.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", v)
}

func parseDecimal(v string) (decimal.Decimal, error) {
	v = strings.ReplaceAll(strings.TrimPrefix(v, "$"), ",", "")
	return decimal.NewFromString(v)
}

func parseOptionalDecimal(v string) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	return parseDecimal(v)
}
