package model

// Form field keys, as submitted by the invoice forms.
const (
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
)

// FieldErrors maps a form field to its validation messages.
type FieldErrors map[string][]string

// Add appends message to field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// State is what a failed form action hands back to the client so the form
// can be re-rendered with per-field messages and a summary.
type State struct {
	Errors  FieldErrors `json:"errors,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ActionResult is the outcome of a form action: either a State to render,
// or a path to redirect to.
type ActionResult struct {
	State    *State
	Redirect string
}

// Failed reports whether the action produced a State instead of a redirect.
func (r ActionResult) Failed() bool {
	return r.State != nil
}

// HasFieldErrors reports whether the failure was a validation failure.
func (r ActionResult) HasFieldErrors() bool {
	return r.State != nil && len(r.State.Errors) > 0
}

// Fail builds a failed ActionResult.
func Fail(errors FieldErrors, message string) ActionResult {
	return ActionResult{State: &State{Errors: errors, Message: message}}
}

// RedirectTo builds a successful ActionResult.
func RedirectTo(path string) ActionResult {
	return ActionResult{Redirect: path}
}
