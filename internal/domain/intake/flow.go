// Package intake implements the add-new-patient modal flow: a local
// draft edited field by field, validated at save time, and normalized
// into a roster intake record on success.
package intake

import (
	"errors"

	"github.com/frontdesk/frontdesk/internal/domain/roster"
)

// Validation errors surfaced to the user as a blocking alert. Only the
// name fields are enforced; the remaining fields are optional at save
// time even though the form marks them required.
var (
	ErrFirstNameRequired = errors.New("first name is required")
	ErrLastNameRequired  = errors.New("last name is required")
	ErrFlowClosed        = errors.New("intake flow is closed")
)

// State is the flow's lifecycle state.
type State string

const (
	StateEditing State = "editing"
	StateClosed  State = "closed"
)

// TitleOptions is the closed list offered by the title select.
var TitleOptions = []string{"Mr", "Mrs", "Miss"}

// Draft holds the form fields while the flow is editing. PatientID is
// a generated read-only placeholder shown to the registrar.
type Draft struct {
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`
	Title      string `json:"title"`
	DOB        string `json:"dob"`
	Gender     string `json:"gender"`
	Phone      string `json:"phone"`
	PatientID  string `json:"patient_id"`
	IsNew      bool   `json:"is_new"`
}

// newbornAge is the age placeholder stamped on every normalized intake.
const newbornAge = "0days"

// Flow is the two-state intake machine. It starts Editing and reaches
// Closed through Cancel or a successful Submit; a failed Submit leaves
// it Editing with the draft intact.
type Flow struct {
	state State
	draft Draft
	save  func(roster.Intake)
}

// NewFlow opens an intake flow. save is invoked exactly once per
// successful submission with the normalized record; it must not be nil.
// patientID is the pre-generated identifier placeholder.
func NewFlow(patientID string, save func(roster.Intake)) *Flow {
	return &Flow{
		state: StateEditing,
		draft: Draft{PatientID: patientID},
		save:  save,
	}
}

// State returns the current lifecycle state.
func (f *Flow) State() State { return f.state }

// Draft returns a copy of the current draft.
func (f *Flow) Draft() Draft { return f.draft }

// Update replaces the editable draft fields. The generated patient
// identifier is preserved regardless of what the caller sends.
func (f *Flow) Update(d Draft) error {
	if f.state != StateEditing {
		return ErrFlowClosed
	}
	d.PatientID = f.draft.PatientID
	f.draft = d
	return nil
}

// SetIsNew flips the new-to-facility toggle.
func (f *Flow) SetIsNew(isNew bool) error {
	if f.state != StateEditing {
		return ErrFlowClosed
	}
	f.draft.IsNew = isNew
	return nil
}

// Submit validates the draft and, on success, hands the normalized
// intake to the save callback and closes the flow. On validation
// failure the flow stays Editing and nothing is saved.
func (f *Flow) Submit() error {
	if f.state != StateEditing {
		return ErrFlowClosed
	}
	if f.draft.FirstName == "" {
		return ErrFirstNameRequired
	}
	if f.draft.LastName == "" {
		return ErrLastNameRequired
	}

	gender := roster.Gender(f.draft.Gender)
	if gender != roster.GenderMale && gender != roster.GenderFemale {
		gender = roster.GenderFemale
	}

	f.save(roster.Intake{
		FirstName:  f.draft.FirstName,
		MiddleName: f.draft.MiddleName,
		LastName:   f.draft.LastName,
		Title:      f.draft.Title,
		DOB:        f.draft.DOB,
		Phone:      f.draft.Phone,
		PatientID:  f.draft.PatientID,
		Gender:     gender,
		Age:        newbornAge,
		IsNew:      f.draft.IsNew,
	})
	f.state = StateClosed
	return nil
}

// Cancel closes the flow unconditionally, discarding the draft.
func (f *Flow) Cancel() {
	f.state = StateClosed
}

// IsValidationError reports whether err is one of the intake field
// validation errors (as opposed to a lifecycle error).
func IsValidationError(err error) bool {
	return errors.Is(err, ErrFirstNameRequired) || errors.Is(err, ErrLastNameRequired)
}
