package valueobject

import "strings"

// FormVariant selects which fields gate a registration form.
type FormVariant int

const (
	// VariantBase gates on password strength and confirmation only.
	VariantBase FormVariant = iota
	// VariantExtended additionally requires full name, email and phone.
	VariantExtended
)

// MatchIndicator is the glyph shown next to the confirmation field.
type MatchIndicator string

const (
	MatchNone     MatchIndicator = "none"
	MatchOK       MatchIndicator = "match"
	MatchMismatch MatchIndicator = "mismatch"
)

// RegistrationFields is a snapshot of the registration form's current values.
type RegistrationFields struct {
	FullName        string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

// FormReadiness is the outcome of evaluating a registration form snapshot.
type FormReadiness struct {
	Ready          bool
	Match          MatchIndicator
	Strength       PasswordEvaluation
	MissingFields  []string
	PasswordsMatch bool
}

// Level returns the strength level of the evaluated password.
func (r FormReadiness) Level() StrengthLevel {
	return r.Strength.Level()
}

// EvaluateForm decides whether the submit action is enabled for the given snapshot.
// It reads nothing but its arguments and may be called on every keystroke.
func EvaluateForm(fields RegistrationFields, variant FormVariant) FormReadiness {
	strength := EvaluatePassword(fields.Password)

	confirmSet := fields.ConfirmPassword != ""
	match := confirmSet && fields.Password != "" && fields.Password == fields.ConfirmPassword

	r := FormReadiness{
		Strength:       strength,
		PasswordsMatch: match,
		Match:          MatchNone,
	}

	switch {
	case confirmSet && !match:
		r.Match = MatchMismatch
	case confirmSet && match && variant == VariantExtended:
		r.Match = MatchOK
	}

	if variant == VariantExtended {
		r.MissingFields = missingFields(fields)
	}

	r.Ready = strength.IsStrong() && match && len(r.MissingFields) == 0
	return r
}

func missingFields(fields RegistrationFields) []string {
	var missing []string
	if strings.TrimSpace(fields.FullName) == "" {
		missing = append(missing, "full_name")
	}
	if strings.TrimSpace(fields.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(fields.Phone) == "" {
		missing = append(missing, "phone")
	}
	return missing
}
