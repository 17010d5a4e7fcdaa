package moderation

import (
	"fmt"
	"strings"

	"modboard/domain/core"
)

// Reason is an entry of the rejection/revision taxonomy
type Reason string

const (
	ReasonProhibited  Reason = "Запрещенный товар"
	ReasonCategory    Reason = "Неверная категория"
	ReasonDescription Reason = "Некорректное описание"
	ReasonPhotos      Reason = "Проблемы с фото"
	ReasonFraud       Reason = "Подозрение на мошенничество"
	// ReasonOther requires free text and is never sent verbatim
	ReasonOther Reason = "Другое"
)

// Reasons lists the taxonomy in dialog order, ReasonOther last
func Reasons() []Reason {
	return []Reason{ReasonProhibited, ReasonCategory, ReasonDescription, ReasonPhotos, ReasonFraud, ReasonOther}
}

func knownReason(r Reason) bool {
	for _, known := range Reasons() {
		if r == known {
			return true
		}
	}
	return false
}

// FormState is where a ReasonForm is in its lifecycle
type FormState int

const (
	FormCollecting FormState = iota
	FormValidated
	FormSubmitted
)

func (s FormState) String() string {
	switch s {
	case FormCollecting:
		return "collecting"
	case FormValidated:
		return "validated"
	case FormSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("FormState(%d)", int(s))
	}
}

// Decision is what a reject or request-changes call sends upstream
type Decision struct {
	Reason  string `json:"reason"`
	Comment string `json:"comment"`
}

// ReasonForm collects reasons for a reject or revision request.
// collecting -> validated -> submitted; any edit returns it to collecting.
type ReasonForm struct {
	state    FormState
	selected []Reason
	custom   string
	comment  string
}

// NewReasonForm starts an empty form in the collecting state
func NewReasonForm() *ReasonForm {
	return &ReasonForm{}
}

// State returns the current lifecycle state
func (f *ReasonForm) State() FormState { return f.state }

// Selected returns the checked reasons in the order they were checked
func (f *ReasonForm) Selected() []Reason {
	return append([]Reason(nil), f.selected...)
}

func (f *ReasonForm) edit() error {
	if f.state == FormSubmitted {
		return fmt.Errorf("%w: form already submitted", core.ErrFormState)
	}
	f.state = FormCollecting
	return nil
}

// Toggle checks or unchecks a reason
func (f *ReasonForm) Toggle(r Reason, checked bool) error {
	if !knownReason(r) {
		return core.NewValidationError("reason", fmt.Sprintf("unknown reason %q", r))
	}
	if err := f.edit(); err != nil {
		return err
	}

	idx := -1
	for i, s := range f.selected {
		if s == r {
			idx = i
			break
		}
	}
	switch {
	case checked && idx < 0:
		f.selected = append(f.selected, r)
	case !checked && idx >= 0:
		f.selected = append(f.selected[:idx], f.selected[idx+1:]...)
	}
	return nil
}

// SetCustom sets the free text that accompanies ReasonOther
func (f *ReasonForm) SetCustom(text string) error {
	if err := f.edit(); err != nil {
		return err
	}
	f.custom = text
	return nil
}

// SetComment sets the optional moderator comment
func (f *ReasonForm) SetComment(text string) error {
	if err := f.edit(); err != nil {
		return err
	}
	f.comment = text
	return nil
}

func (f *ReasonForm) hasOther() bool {
	for _, s := range f.selected {
		if s == ReasonOther {
			return true
		}
	}
	return false
}

// Validate requires at least one reason, and custom text when ReasonOther
// is checked.
func (f *ReasonForm) Validate() error {
	if f.state == FormSubmitted {
		return fmt.Errorf("%w: form already submitted", core.ErrFormState)
	}
	if len(f.selected) == 0 {
		f.state = FormCollecting
		return core.ErrNoReasons
	}
	if f.hasOther() && strings.TrimSpace(f.custom) == "" {
		f.state = FormCollecting
		return core.ErrOtherReasonEmpty
	}
	f.state = FormValidated
	return nil
}

// Submit produces the decision payload. The form must be validated.
func (f *ReasonForm) Submit() (Decision, error) {
	if f.state != FormValidated {
		return Decision{}, fmt.Errorf("%w: submit from %s", core.ErrFormState, f.state)
	}

	parts := make([]string, 0, len(f.selected)+1)
	for _, s := range f.selected {
		if s != ReasonOther {
			parts = append(parts, string(s))
		}
	}
	if custom := strings.TrimSpace(f.custom); f.hasOther() && custom != "" {
		parts = append(parts, custom)
	}

	f.state = FormSubmitted
	return Decision{Reason: strings.Join(parts, ", "), Comment: f.comment}, nil
}

// Reset clears the form back to collecting
func (f *ReasonForm) Reset() {
	*f = ReasonForm{}
}

// FormInput is the wire shape of a filled-in reason dialog
type FormInput struct {
	Reasons []Reason `json:"reasons"`
	Custom  string   `json:"custom"`
	Comment string   `json:"comment"`
}

// DecisionFromInput runs a FormInput through a fresh ReasonForm.
func DecisionFromInput(in FormInput) (Decision, error) {
	form := NewReasonForm()
	for _, r := range in.Reasons {
		if err := form.Toggle(r, true); err != nil {
			return Decision{}, err
		}
	}
	if err := form.SetCustom(in.Custom); err != nil {
		return Decision{}, err
	}
	if err := form.SetComment(in.Comment); err != nil {
		return Decision{}, err
	}
	if err := form.Validate(); err != nil {
		return Decision{}, err
	}
	return form.Submit()
}
