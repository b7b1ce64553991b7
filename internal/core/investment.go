package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	FixedIncome InvestmentType = "fixed_income"
	Stocks      InvestmentType = "stocks"
	Fund        InvestmentType = "fund"
	Crypto      InvestmentType = "crypto"
	OtherAsset  InvestmentType = "other"
)

type (
	// InvestmentType is the closed set of investment classes.
	InvestmentType string

	// Investment tracks a position: what went in, what it is worth now, and
	// the monthly rate used for projections. MonthlyRate is a plain fraction
	// (0.008 = 0.8%), not a Money.
	Investment struct {
		ID            string         `json:"id"`
		Name          string         `json:"name"`
		Type          InvestmentType `json:"type"`
		InitialAmount Money          `json:"initial_amount"`
		CurrentAmount Money          `json:"current_amount"`
		MonthlyRate   float64        `json:"monthly_rate"`
		UserID        string         `json:"user_id"`
		StartDate     time.Time      `json:"start_date"`
		Notes         string         `json:"notes"`
	}

	// InvestmentUpdate carries only the fields to change; nil pointers leave
	// the current value untouched.
	InvestmentUpdate struct {
		Name          *string
		CurrentAmount *Money
		MonthlyRate   *float64
		Notes         *string
	}
)

func (t InvestmentType) Valid() bool {
	switch t {
	case FixedIncome, Stocks, Fund, Crypto, OtherAsset:
		return true
	}
	return false
}

// NewInvestment validates and builds an investment. A zero startDate defaults
// to the current UTC time. Callers that want "current = initial" pass the
// initial amount for both.
func NewInvestment(name string, typ InvestmentType, initial, current Money, monthlyRate float64, userID string, startDate time.Time, notes string) (Investment, error) {
	if startDate.IsZero() {
		startDate = time.Now().UTC()
	}
	inv := Investment{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(name),
		Type:          typ,
		InitialAmount: initial,
		CurrentAmount: current,
		MonthlyRate:   monthlyRate,
		UserID:        strings.TrimSpace(userID),
		StartDate:     startDate.UTC(),
		Notes:         strings.TrimSpace(notes),
	}
	if err := inv.Validate(); err != nil {
		return Investment{}, err
	}
	return inv, nil
}

func (i Investment) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyField
	}
	if !i.Type.Valid() {
		return ErrInvalidInvestmentType
	}
	if !i.InitialAmount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if i.CurrentAmount.IsNegative() {
		return ErrNegativeAmount
	}
	if strings.TrimSpace(i.UserID) == "" {
		return ErrEmptyOwner
	}
	return nil
}

// Profit is current minus initial; negative means a loss.
func (i Investment) Profit() Money {
	return i.CurrentAmount.Sub(i.InitialAmount)
}

// ProfitPercent is profit over initial, as a percentage. The zero-initial
// guard is unreachable for validated investments (initial must be positive)
// but protects against records deserialized from hand-edited files.
func (i Investment) ProfitPercent() float64 {
	if i.InitialAmount.IsZero() {
		return 0
	}
	pct, _ := i.Profit().Decimal().Div(i.InitialAmount.Decimal()).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}

// Apply returns a copy with the update's non-nil fields replaced. The ID and
// all untouched fields carry over; the result is re-validated.
func (i Investment) Apply(u InvestmentUpdate) (Investment, error) {
	if u.Name != nil {
		i.Name = strings.TrimSpace(*u.Name)
	}
	if u.CurrentAmount != nil {
		i.CurrentAmount = *u.CurrentAmount
	}
	if u.MonthlyRate != nil {
		i.MonthlyRate = *u.MonthlyRate
	}
	if u.Notes != nil {
		i.Notes = strings.TrimSpace(*u.Notes)
	}
	if err := i.Validate(); err != nil {
		return Investment{}, err
	}
	return i, nil
}
