// Package password contains the password strength and form readiness use cases.
package password

import (
	"context"

	"github.com/sparked/backend/internal/application/adapter"
	"github.com/sparked/backend/internal/domain/valueobject"
)

// EvaluateStrengthInput represents the input for a strength check.
type EvaluateStrengthInput struct {
	Password string
}

// EvaluateStrengthOutput represents the outcome of a strength check.
type EvaluateStrengthOutput struct {
	Evaluation  valueobject.PasswordEvaluation
	Level       valueobject.StrengthLevel
	Indicators  []valueobject.GroupIndicator
	EntropyBits float64
}

// EvaluateStrengthUseCase scores a password without storing anything.
type EvaluateStrengthUseCase struct {
	passwordService adapter.PasswordService
	entropy         adapter.EntropyEstimator
}

// NewEvaluateStrengthUseCase creates a new EvaluateStrengthUseCase instance.
// entropy may be nil, in which case EntropyBits is zero.
func NewEvaluateStrengthUseCase(passwordService adapter.PasswordService, entropy adapter.EntropyEstimator) *EvaluateStrengthUseCase {
	return &EvaluateStrengthUseCase{
		passwordService: passwordService,
		entropy:         entropy,
	}
}

// Execute evaluates the password.
func (uc *EvaluateStrengthUseCase) Execute(_ context.Context, input EvaluateStrengthInput) (*EvaluateStrengthOutput, error) {
	evaluation := uc.passwordService.EvaluateStrength(input.Password)

	out := &EvaluateStrengthOutput{
		Evaluation: evaluation,
		Level:      evaluation.Level(),
		Indicators: evaluation.Indicators(),
	}
	if uc.entropy != nil && input.Password != "" {
		out.EntropyBits = uc.entropy.EstimateEntropy(input.Password)
	}
	return out, nil
}
