package password

import (
	"context"

	"github.com/sparked/backend/internal/domain/valueobject"
)

// CheckReadinessInput mirrors the registration form's current values.
// ChangedField optionally names the field the user just edited.
type CheckReadinessInput struct {
	Fields       valueobject.RegistrationFields
	Extended     bool
	ChangedField valueobject.FormField
}

// CheckReadinessOutput reports whether the form may be submitted.
// Reevaluated is false when ChangedField is not watched by the form variant,
// in which case the client keeps its previous state.
type CheckReadinessOutput struct {
	Readiness   valueobject.FormReadiness
	Level       valueobject.StrengthLevel
	Reevaluated bool
}

var replayFields = []valueobject.FormField{
	valueobject.FieldFullName,
	valueobject.FieldEmail,
	valueobject.FieldPhone,
	valueobject.FieldPassword,
	valueobject.FieldConfirm,
}

// CheckReadinessUseCase runs the registration form gate.
type CheckReadinessUseCase struct{}

// NewCheckReadinessUseCase creates a new CheckReadinessUseCase instance.
func NewCheckReadinessUseCase() *CheckReadinessUseCase {
	return &CheckReadinessUseCase{}
}

// Execute replays the snapshot through a FormWatcher, applying ChangedField last,
// and returns the state the watcher last published.
func (uc *CheckReadinessUseCase) Execute(_ context.Context, input CheckReadinessInput) (*CheckReadinessOutput, error) {
	variant := valueobject.VariantBase
	if input.Extended {
		variant = valueobject.VariantExtended
	}

	watcher := valueobject.NewFormWatcher(variant)
	var last valueobject.FormState
	watcher.Subscribe(func(state valueobject.FormState) {
		last = state
	})

	for _, field := range replayOrder(input.ChangedField) {
		if !watcher.Watches(field) {
			continue
		}
		if _, err := watcher.OnChange(field, input.Fields.Value(field)); err != nil {
			return nil, err
		}
	}

	return &CheckReadinessOutput{
		Readiness:   last.Readiness,
		Level:       last.Readiness.Level(),
		Reevaluated: input.ChangedField == "" || watcher.Watches(input.ChangedField),
	}, nil
}

// replayOrder lists the form fields with changed moved to the end.
func replayOrder(changed valueobject.FormField) []valueobject.FormField {
	order := make([]valueobject.FormField, 0, len(replayFields))
	for _, field := range replayFields {
		if field != changed {
			order = append(order, field)
		}
	}
	if changed != "" {
		order = append(order, changed)
	}
	return order
}
