package dto

import (
	"time"

	"golang-trading-journal/internal/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRequest is the DTO for creating or updating an account.
type AccountRequest struct {
	Name            string          `json:"name" validate:"required,max=100"`
	Broker          string          `json:"broker" validate:"max=100"`
	StartingBalance decimal.Decimal `json:"starting_balance" swaggertype:"number"`
	CurrentBalance  decimal.Decimal `json:"current_balance" swaggertype:"number"`
	IsDefault       bool            `json:"is_default"`
}

// AccountResponse is the DTO for API responses containing account details.
type AccountResponse struct {
	ID              uuid.UUID       `json:"id" swaggertype:"string" format:"uuid"`
	Name            string          `json:"name"`
	Broker          string          `json:"broker"`
	StartingBalance decimal.Decimal `json:"starting_balance" swaggertype:"number"`
	CurrentBalance  decimal.Decimal `json:"current_balance" swaggertype:"number"`
	IsDefault       bool            `json:"is_default"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// SetupRequest is the DTO for creating or updating a setup.
type SetupRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	Rules       string `json:"rules"`
}

// SetupResponse carries a setup with its performance computed on read.
type SetupResponse struct {
	ID          uuid.UUID       `json:"id" swaggertype:"string" format:"uuid"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Rules       string          `json:"rules"`
	Stats       metrics.Summary `json:"stats"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
