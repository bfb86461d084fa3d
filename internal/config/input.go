package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/debtsim/payoff-calculator/internal/domain"
)

// Input is the top-level structure of a plan file: one base plan, optional
// named strategy variations, and optional Monte Carlo settings.
type Input struct {
	Plan       domain.PlanConfig `yaml:"plan"`
	Strategies []domain.Strategy `yaml:"strategies"`
	MonteCarlo *MonteCarloInput  `yaml:"monte_carlo"`
}

// MonteCarloInput configures the optional randomized-return analysis.
type MonteCarloInput struct {
	NumSimulations   int     `yaml:"num_simulations"`
	Seed             int64   `yaml:"seed"`
	AnnualVolatility float64 `yaml:"annual_volatility"`
}

// InputParser handles parsing of plan configuration files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan from a YAML file, applies defaults, and
// validates it. Validation failures surface before any simulation begins.
func (ip *InputParser) LoadFromFile(filename string) (*Input, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var input Input
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.ApplyDefaults(&input)

	if err := ip.ValidateInput(&input); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &input, nil
}

// ApplyDefaults fills omitted values: the investment type defaults to CD
// and a zero target payment defaults to the minimum payment, mirroring how
// the plan would be presented to a user.
func (ip *InputParser) ApplyDefaults(input *Input) {
	plan := &input.Plan
	plan.InvestmentType = NormalizeInvestmentType(string(plan.InvestmentType))
	if plan.TargetPayment.IsZero() && plan.Principal.IsPositive() {
		plan.TargetPayment = domain.MinimumPayment(plan.Principal, plan.AnnualLoanRate, plan.TermMonths)
	}
	for i := range input.Strategies {
		if input.Strategies[i].InvestmentType != nil {
			normalized := NormalizeInvestmentType(string(*input.Strategies[i].InvestmentType))
			input.Strategies[i].InvestmentType = &normalized
		}
	}
}

// ValidateInput validates the base plan and every strategy's applied plan.
func (ip *InputParser) ValidateInput(input *Input) error {
	if err := input.Plan.Validate(); err != nil {
		return fmt.Errorf("plan validation failed: %w", err)
	}

	seen := make(map[string]bool, len(input.Strategies))
	for i := range input.Strategies {
		s := &input.Strategies[i]
		if s.Name == "" {
			return fmt.Errorf("strategy %d has no name", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate strategy name %q", s.Name)
		}
		seen[s.Name] = true

		applied := s.Apply(input.Plan)
		if err := applied.Validate(); err != nil {
			return fmt.Errorf("strategy %q validation failed: %w", s.Name, err)
		}
	}

	if mc := input.MonteCarlo; mc != nil {
		if mc.NumSimulations < 0 {
			return fmt.Errorf("monte carlo num_simulations cannot be negative, got %d", mc.NumSimulations)
		}
		if mc.AnnualVolatility < 0 {
			return fmt.Errorf("monte carlo annual_volatility cannot be negative, got %v", mc.AnnualVolatility)
		}
	}

	return nil
}

// NormalizeInvestmentType maps user-friendly spellings onto the two known
// investment types. Unknown spellings pass through so validation can name
// them; an empty value defaults to CD.
func NormalizeInvestmentType(raw string) domain.InvestmentType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "cd", "certificate of deposit":
		return domain.InvestmentCD
	case "stock", "stocks", "equity":
		return domain.InvestmentStock
	default:
		return domain.InvestmentType(raw)
	}
}
