package services

import (
	"context"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// SimulationService runs contribution projections. It is stateless; the
// wrapper exists so the handlers and the CLI share one logging seam.
type SimulationService struct {
	logger *log.Logger
}

func NewSimulationService(logger *log.Logger) *SimulationService {
	return &SimulationService{logger: logger.WithComponent(log.ComponentSimulation)}
}

func (s *SimulationService) FixedProjection(ctx context.Context, initial, contribution core.Money, monthlyRate float64, months int) (core.SimulationResult, error) {
	res, err := core.SimulateFixedContribution(initial, contribution, monthlyRate, months)
	if err != nil {
		return core.SimulationResult{}, err
	}
	s.logger.DebugContext(ctx, "fixed projection",
		"months", months, "final_balance", res.FinalBalance.String())
	return res, nil
}

func (s *SimulationService) VariableProjection(ctx context.Context, initial core.Money, contributions []core.Money, monthlyRate float64) (core.SimulationResult, error) {
	return core.SimulateVariableContribution(initial, contributions, monthlyRate)
}

// Compare runs one fixed projection per candidate contribution, keyed by the
// contribution's canonical string.
func (s *SimulationService) Compare(ctx context.Context, initial core.Money, contributions []core.Money, monthlyRate float64, months int) (map[string]core.SimulationResult, error) {
	return core.CompareScenarios(initial, contributions, monthlyRate, months)
}
