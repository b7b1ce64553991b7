package core

import (
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type (
	// MonthlyProjection is one step of a simulation: the state after the
	// month's interest and contribution have been applied.
	MonthlyProjection struct {
		Month              int   `json:"month"`
		Contribution       Money `json:"contribution"`
		AccumulatedBalance Money `json:"accumulated_balance"`
		Profit             Money `json:"profit"`
	}

	// SimulationResult is the full, immutable outcome of one simulation run.
	SimulationResult struct {
		InitialAmount    Money               `json:"initial_amount"`
		MonthlyRate      float64             `json:"monthly_rate"`
		TotalMonths      int                 `json:"total_months"`
		Projections      []MonthlyProjection `json:"projections"`
		TotalContributed Money               `json:"total_contributed"`
		FinalBalance     Money               `json:"final_balance"`
		TotalProfit      Money               `json:"total_profit"`
	}
)

// step advances the balance by one month: interest first, then contribution.
// The interest term is quantized to 2 decimals BEFORE it is added, so the
// recurrence compounds on rounded interest. This matches the historical
// behavior downstream consumers rely on; do not switch to full-precision
// compounding.
func step(balance, contribution Money, rate decimal.Decimal) Money {
	interest := NewMoneyFromDecimal(balance.Decimal().Mul(rate))
	return balance.Add(interest).Add(contribution)
}

// SimulateFixedContribution runs the month-by-month recurrence with the same
// contribution every month. Month 0 records the initial deposit with zero
// profit. Returns ErrInvalidHorizon when months is not positive.
func SimulateFixedContribution(initial, contribution Money, monthlyRate float64, months int) (SimulationResult, error) {
	if months <= 0 {
		return SimulationResult{}, ErrInvalidHorizon
	}
	contributions := make([]Money, months)
	for i := range contributions {
		contributions[i] = contribution
	}
	return simulate(initial, contributions, monthlyRate)
}

// SimulateVariableContribution runs the recurrence with one contribution per
// month; the horizon is the length of the sequence. Returns ErrInvalidHorizon
// for an empty sequence.
func SimulateVariableContribution(initial Money, contributions []Money, monthlyRate float64) (SimulationResult, error) {
	if len(contributions) == 0 {
		return SimulationResult{}, ErrInvalidHorizon
	}
	return simulate(initial, contributions, monthlyRate)
}

func simulate(initial Money, contributions []Money, monthlyRate float64) (SimulationResult, error) {
	rate := decimal.NewFromFloat(monthlyRate)

	projections := make([]MonthlyProjection, 0, len(contributions)+1)
	balance := initial
	totalContributed := initial

	projections = append(projections, MonthlyProjection{
		Month:              0,
		Contribution:       initial,
		AccumulatedBalance: balance,
		Profit:             ZeroMoney(),
	})

	for month, contribution := range contributions {
		balance = step(balance, contribution, rate)
		totalContributed = totalContributed.Add(contribution)
		projections = append(projections, MonthlyProjection{
			Month:              month + 1,
			Contribution:       contribution,
			AccumulatedBalance: balance,
			Profit:             balance.Sub(totalContributed),
		})
	}

	return SimulationResult{
		InitialAmount:    initial,
		MonthlyRate:      monthlyRate,
		TotalMonths:      len(contributions),
		Projections:      projections,
		TotalContributed: totalContributed,
		FinalBalance:     balance,
		TotalProfit:      balance.Sub(totalContributed),
	}, nil
}

// CompareScenarios runs one fixed-contribution simulation per candidate
// contribution over the same initial amount, rate and horizon. Scenarios are
// independent pure computations, so they run in parallel; each result is
// numerically identical to calling SimulateFixedContribution directly. Keys
// are the quantized contribution strings.
func CompareScenarios(initial Money, contributions []Money, monthlyRate float64, months int) (map[string]SimulationResult, error) {
	if months <= 0 {
		return nil, ErrInvalidHorizon
	}

	results := make([]SimulationResult, len(contributions))
	var g errgroup.Group
	for i, contribution := range contributions {
		g.Go(func() error {
			res, err := SimulateFixedContribution(initial, contribution, monthlyRate, months)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	scenarios := make(map[string]SimulationResult, len(contributions))
	for i, contribution := range contributions {
		scenarios[contribution.String()] = results[i]
	}
	return scenarios, nil
}
