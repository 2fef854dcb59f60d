package valueobject

import (
	"errors"
	"fmt"
)

// FormField names a watched registration form field.
type FormField string

const (
	FieldFullName FormField = "full_name"
	FieldEmail    FormField = "email"
	FieldPhone    FormField = "phone"
	FieldPassword FormField = "password"
	FieldConfirm  FormField = "confirm_password"
)

// ErrFieldNotWatched is returned when a change arrives for a field that was never watched.
var ErrFieldNotWatched = errors.New("field is not watched")

// FormState is delivered to subscribers after every evaluation.
type FormState struct {
	Field     FormField
	Fields    RegistrationFields
	Readiness FormReadiness
}

// FormHandler receives the recomputed state of a form.
type FormHandler func(FormState)

// FormWatcher re-evaluates a registration form whenever one of its watched fields changes
// and reports the result to subscribers. It is not safe for concurrent use.
type FormWatcher struct {
	variant  FormVariant
	watched  map[FormField]bool
	fields   RegistrationFields
	handlers []FormHandler
}

// NewFormWatcher creates a watcher for the given variant. The password and confirmation
// fields are always watched; the extended variant also watches name, email and phone.
func NewFormWatcher(variant FormVariant) *FormWatcher {
	w := &FormWatcher{
		variant: variant,
		watched: make(map[FormField]bool),
	}
	w.Watch(FieldPassword)
	w.Watch(FieldConfirm)
	if variant == VariantExtended {
		w.Watch(FieldFullName)
		w.Watch(FieldEmail)
		w.Watch(FieldPhone)
	}
	return w
}

// Watch registers a field-change stream.
func (w *FormWatcher) Watch(field FormField) {
	w.watched[field] = true
}

// Watches reports whether changes to field trigger a re-evaluation.
func (w *FormWatcher) Watches(field FormField) bool {
	return w.watched[field]
}

// Subscribe adds a handler. Handlers run synchronously in registration order.
func (w *FormWatcher) Subscribe(h FormHandler) {
	w.handlers = append(w.handlers, h)
}

// OnChange records a new value for field, re-evaluates the form and notifies subscribers.
func (w *FormWatcher) OnChange(field FormField, value string) (FormReadiness, error) {
	if !w.watched[field] {
		return FormReadiness{}, fmt.Errorf("%w: %s", ErrFieldNotWatched, field)
	}

	switch field {
	case FieldFullName:
		w.fields.FullName = value
	case FieldEmail:
		w.fields.Email = value
	case FieldPhone:
		w.fields.Phone = value
	case FieldPassword:
		w.fields.Password = value
	case FieldConfirm:
		w.fields.ConfirmPassword = value
	default:
		return FormReadiness{}, fmt.Errorf("%w: %s", ErrFieldNotWatched, field)
	}

	return w.emit(field), nil
}

// Evaluate re-runs the evaluation on the current snapshot and notifies subscribers,
// matching the initial render of a freshly loaded form.
func (w *FormWatcher) Evaluate() FormReadiness {
	return w.emit("")
}

// Value returns the snapshot's value for field, or "" for an unknown field.
func (f RegistrationFields) Value(field FormField) string {
	switch field {
	case FieldFullName:
		return f.FullName
	case FieldEmail:
		return f.Email
	case FieldPhone:
		return f.Phone
	case FieldPassword:
		return f.Password
	case FieldConfirm:
		return f.ConfirmPassword
	}
	return ""
}

// Fields returns the current snapshot.
func (w *FormWatcher) Fields() RegistrationFields {
	return w.fields
}

func (w *FormWatcher) emit(field FormField) FormReadiness {
	readiness := EvaluateForm(w.fields, w.variant)
	state := FormState{Field: field, Fields: w.fields, Readiness: readiness}
	for _, h := range w.handlers {
		h(state)
	}
	return readiness
}
