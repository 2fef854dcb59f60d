package dto

import (
	"github.com/sparked/backend/internal/domain/valueobject"
)

// PasswordStrengthRequest carries the password being typed.
type PasswordStrengthRequest struct {
	Password string `json:"password" form:"password"`
}

// RequirementResponse is one requirement group indicator.
type RequirementResponse struct {
	Name      string `json:"name"`
	Satisfied bool   `json:"satisfied"`
	Color     string `json:"color"`
}

// PasswordStrengthResponse is what the strength bar renders.
type PasswordStrengthResponse struct {
	Score        int                   `json:"score"`
	Label        string                `json:"label"`
	Weight       string                `json:"weight"`
	Color        string                `json:"color"`
	Requirements []RequirementResponse `json:"requirements"`
	EntropyBits  float64               `json:"entropy_bits,omitempty"`
}

// FormReadinessRequest is a snapshot of the registration form.
type FormReadinessRequest struct {
	FullName        string `json:"full_name" form:"full_name"`
	Email           string `json:"email" form:"email"`
	Phone           string `json:"phone" form:"phone"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
	Extended        bool   `json:"extended" form:"extended"`
	ChangedField    string `json:"changed_field" form:"changed_field"`
}

// FormReadinessResponse tells the client whether to enable submit.
type FormReadinessResponse struct {
	Ready          bool                     `json:"ready"`
	MatchIndicator string                   `json:"match_indicator"`
	MissingFields  []string                 `json:"missing_fields"`
	Strength       PasswordStrengthResponse `json:"strength"`
	Reevaluated    bool                     `json:"reevaluated"`
}

// ToPasswordStrengthResponse converts an evaluation into its wire form.
func ToPasswordStrengthResponse(eval valueobject.PasswordEvaluation, entropyBits float64) PasswordStrengthResponse {
	level := eval.Level()
	indicators := eval.Indicators()

	requirements := make([]RequirementResponse, 0, len(indicators))
	for _, ind := range indicators {
		requirements = append(requirements, RequirementResponse{
			Name:      string(ind.Group),
			Satisfied: ind.Satisfied,
			Color:     ind.Color,
		})
	}

	return PasswordStrengthResponse{
		Score:        level.Score,
		Label:        level.Label,
		Weight:       level.WeightPercent(),
		Color:        level.Color,
		Requirements: requirements,
		EntropyBits:  entropyBits,
	}
}

// ToFormReadinessResponse converts a readiness result into its wire form.
func ToFormReadinessResponse(r valueobject.FormReadiness) FormReadinessResponse {
	missing := r.MissingFields
	if missing == nil {
		missing = []string{}
	}
	return FormReadinessResponse{
		Ready:          r.Ready,
		MatchIndicator: string(r.Match),
		MissingFields:  missing,
		Strength:       ToPasswordStrengthResponse(r.Strength, 0),
	}
}

// Fields converts the request into the evaluator's snapshot.
func (r FormReadinessRequest) Fields() valueobject.RegistrationFields {
	return valueobject.RegistrationFields{
		FullName:        r.FullName,
		Email:           r.Email,
		Phone:           r.Phone,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
	}
}
