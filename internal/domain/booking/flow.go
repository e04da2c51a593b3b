// Package booking implements the add-new-appointment modal flow: a
// patient search over the live roster, clinic and appointment-type
// pickers, and an embedded month calendar, all feeding one transient
// booking draft.
package booking

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/frontdesk/frontdesk/internal/domain/calendar"
	"github.com/frontdesk/frontdesk/internal/domain/roster"
)

// Clinics is the closed clinic option list.
var Clinics = []string{
	"Accident and Emergency", "Neurology", "Cardiology",
	"Gastroenterology", "Renal", "Ear, Nose & Throat",
}

// AppointmentTypes is the closed appointment-type option list.
var AppointmentTypes = []string{
	"Walk-in", "Referral", "Consult",
	"Follow-up", "For Medical Exam",
}

// DetailHintOption is the one option that shows a has-more-detail
// affordance while unselected. Display hint only; no behavior.
const DetailHintOption = "Consult"

// RepeatDisplay is the static repeat-field value; recurrence is not
// implemented.
const RepeatDisplay = "Does not repeat"

// timeRefreshInterval is how often the displayed time-of-day is
// re-read while the flow stays open.
const timeRefreshInterval = time.Minute

var (
	ErrFlowClosed     = errors.New("booking flow is closed")
	ErrUnknownPatient = errors.New("patient is not in the roster")
	ErrUnknownOption  = errors.New("option is not in the list")
	ErrNoPickerOpen   = errors.New("no selection picker is open")
	ErrPickerNoSearch = errors.New("this picker does not support search")
	ErrDraftNotWired  = errors.New("booking draft is not wired to any store")
)

// Picker names the full-screen selection sub-state currently open.
type Picker string

const (
	PickerNone   Picker = ""
	PickerClinic Picker = "clinic"
	PickerType   Picker = "type"
)

// Option is one picker row as presented to the user.
type Option struct {
	Label      string `json:"label"`
	Selected   bool   `json:"selected"`
	DetailHint bool   `json:"detail_hint"`
}

// Snapshot supplies the live roster projection. It is called on every
// search so a registration made while the flow is open is immediately
// findable.
type Snapshot func() []roster.Summary

// Flow is one open booking modal. All state is draft-scoped: closing
// the flow discards everything, and nothing is ever written back to
// the roster.
type Flow struct {
	mu     sync.Mutex
	closed bool

	snapshot Snapshot
	now      func() time.Time

	search      string
	showResults bool
	selected    *roster.Summary

	clinic   string
	apptType string

	picker       Picker
	pickerSearch string

	view         calendar.View
	selectedDate time.Time
	timeText     string

	stopTick chan struct{}
}

// NewFlow opens a booking flow over the given roster snapshot. The
// selected date defaults to the current date and the displayed time to
// the current time, refreshed once a minute until Close.
func NewFlow(snapshot Snapshot, now func() time.Time) *Flow {
	if now == nil {
		now = time.Now
	}
	n := now()
	f := &Flow{
		snapshot:     snapshot,
		now:          now,
		view:         calendar.ViewOf(n),
		selectedDate: n,
		timeText:     roster.FormatTime(n),
		stopTick:     make(chan struct{}),
	}
	go f.tick()
	return f
}

func (f *Flow) tick() {
	t := time.NewTicker(timeRefreshInterval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			f.RefreshTime()
		case <-f.stopTick:
			return
		}
	}
}

// RefreshTime re-reads the clock into the displayed time-of-day.
func (f *Flow) RefreshTime() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.timeText = roster.FormatTime(f.now())
}

// Close tears the flow down, discarding the draft and stopping the
// time refresher. Safe to call more than once.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	close(f.stopTick)
}

// Closed reports whether the flow has been torn down.
func (f *Flow) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// -- Patient search --

// SetSearch updates the search box text. Typing clears any committed
// selection and opens the results list.
func (f *Flow) SetSearch(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrFlowClosed
	}
	f.search = text
	f.selected = nil
	f.showResults = true
	return nil
}

// Focus opens the results list without changing the text.
func (f *Flow) Focus() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrFlowClosed
	}
	f.showResults = true
	return nil
}

// DismissResults closes the results list, e.g. on a pointer-down
// outside the search region. A committed selection is kept.
func (f *Flow) DismissResults() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrFlowClosed
	}
	f.showResults = false
	return nil
}

// ResultsVisible reports whether the results list is showing: the
// field holds non-empty text, nothing is committed, and the list has
// not been dismissed.
func (f *Flow) ResultsVisible() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.closed && f.showResults && f.search != "" && f.selected == nil
}

// Results filters the live roster snapshot by the current search text.
// It returns nil when the list is not visible; an empty non-nil slice
// is the explicit no-results state.
func (f *Flow) Results() []roster.Summary {
	if !f.ResultsVisible() {
		return nil
	}
	f.mu.Lock()
	search := f.search
	snapshot := f.snapshot
	f.mu.Unlock()
	return roster.FilterSummaries(snapshot(), search)
}

// SelectPatient commits the identified patient, replaces the box text
// with the patient's name and closes the results list.
func (f *Flow) SelectPatient(id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrFlowClosed
	}
	for _, s := range f.snapshot() {
		if s.ID == id {
			sel := s
			f.selected = &sel
			f.search = s.Name
			f.showResults = false
			return nil
		}
	}
	return ErrUnknownPatient
}

// Selected returns the committed patient, or nil.
func (f *Flow) Selected() *roster.Summary {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.selected == nil {
		return nil
	}
	sel := *f.selected
	return &sel
}

// Search returns the current search box text.
func (f *Flow) Search() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.search
}

// -- Clinic and appointment-type pickers --

// OpenClinicPicker opens the clinic selection sub-state with a fresh
// search box.
func (f *Flow) OpenClinicPicker() error {
	return f.openPicker(PickerClinic)
}

// OpenTypePicker opens the appointment-type selection sub-state.
func (f *Flow) OpenTypePicker() error {
	return f.openPicker(PickerType)
}

func (f *Flow) openPicker(p Picker) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrFlowClosed
	}
	f.picker = p
	f.pickerSearch = ""
	return nil
}

// ClosePicker returns to the parent flow without committing.
func (f *Flow) ClosePicker() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrFlowClosed
	}
	f.picker = PickerNone
	f.pickerSearch = ""
	return nil
}

// OpenPicker reports which selection sub-state is showing.
func (f *Flow) OpenPicker() Picker {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.picker
}

// SetPickerSearch filters the clinic list. The appointment-type list
// is short and fixed and has no search box.
func (f *Flow) SetPickerSearch(q string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrFlowClosed
	}
	switch f.picker {
	case PickerClinic:
		f.pickerSearch = q
		return nil
	case PickerType:
		return ErrPickerNoSearch
	default:
		return ErrNoPickerOpen
	}
}

// PickerOptions returns the rows of the open picker: the option list
// filtered by the picker search, with the committed value marked and
// the detail hint shown only on its unselected option.
func (f *Flow) PickerOptions() ([]Option, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, ErrFlowClosed
	}

	var labels []string
	var committed string
	switch f.picker {
	case PickerClinic:
		labels = filterLabels(Clinics, f.pickerSearch)
		committed = f.clinic
	case PickerType:
		labels = AppointmentTypes
		committed = f.apptType
	default:
		return nil, ErrNoPickerOpen
	}

	opts := make([]Option, len(labels))
	for i, l := range labels {
		opts[i] = Option{
			Label:      l,
			Selected:   l == committed,
			DetailHint: l == DetailHintOption && l != committed,
		}
	}
	return opts, nil
}

// SelectOption commits the labeled option of the open picker and
// returns to the parent flow.
func (f *Flow) SelectOption(label string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrFlowClosed
	}

	switch f.picker {
	case PickerClinic:
		if !contains(Clinics, label) {
			return ErrUnknownOption
		}
		f.clinic = label
	case PickerType:
		if !contains(AppointmentTypes, label) {
			return ErrUnknownOption
		}
		f.apptType = label
	default:
		return ErrNoPickerOpen
	}
	f.picker = PickerNone
	f.pickerSearch = ""
	return nil
}

// Clinic returns the committed clinic, empty until one is selected.
func (f *Flow) Clinic() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clinic
}

// AppointmentType returns the committed appointment type.
func (f *Flow) AppointmentType() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.apptType
}

// -- Calendar --

// View returns the displayed month.
func (f *Flow) View() calendar.View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view
}

// Grid returns the 42-cell grid of the displayed month.
func (f *Flow) Grid() []calendar.Day {
	return f.View().Grid()
}

// PrevMonth steps the displayed month back by one.
func (f *Flow) PrevMonth() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrFlowClosed
	}
	f.view = f.view.Prev()
	return nil
}

// NextMonth steps the displayed month forward by one.
func (f *Flow) NextMonth() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrFlowClosed
	}
	f.view = f.view.Next()
	return nil
}

// SelectDay sets the selection to the clicked day of the displayed
// month. Clicking a cell from an adjacent month is a silent no-op.
func (f *Flow) SelectDay(day int, inMonth bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrFlowClosed
	}
	if !inMonth {
		return nil
	}
	f.selectedDate = time.Date(f.view.Year, f.view.Month, day, 0, 0, 0, 0, time.UTC)
	return nil
}

// JumpToToday resets the selection, not the displayed month, to the
// current date.
func (f *Flow) JumpToToday() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrFlowClosed
	}
	f.selectedDate = f.now()
	return nil
}

// SelectedDate returns the currently selected date.
func (f *Flow) SelectedDate() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.selectedDate
}

// DaySelected reports whether the grid cell is the current selection:
// an in-month cell whose day matches the selection inside the
// displayed month.
func (f *Flow) DaySelected(day int, inMonth bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return inMonth &&
		day == f.selectedDate.Day() &&
		f.view.Contains(f.selectedDate)
}

// DateText renders the selected date for the time row.
func (f *Flow) DateText() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return roster.FormatDate(f.selectedDate)
}

// TimeText returns the displayed time-of-day, refreshed once a minute.
func (f *Flow) TimeText() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.timeText
}

// -- Terminal actions --

// SaveAndClose discards the draft and closes the flow. Despite the
// label, the draft is not persisted anywhere; there is no store for it
// to reach.
func (f *Flow) SaveAndClose() {
	f.Close()
}

// CreateInvoice is a declared action with no effect yet. It reports
// the missing integration instead of fabricating one.
func (f *Flow) CreateInvoice() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrFlowClosed
	}
	return ErrDraftNotWired
}

func filterLabels(labels []string, q string) []string {
	if q == "" {
		return labels
	}
	lq := strings.ToLower(q)
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if strings.Contains(strings.ToLower(l), lq) {
			out = append(out, l)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, l := range list {
		if l == v {
			return true
		}
	}
	return false
}
