package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/frontdesk/frontdesk/internal/domain/roster"
)

func fixedClock() func() time.Time {
	at := time.Date(2025, time.September, 22, 14, 30, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func testRoster() []roster.Summary {
	return []roster.Summary{
		{ID: 1, Name: "Akpopodion Endurance", PatientID: "HOSP29384756"},
		{ID: 2, Name: "Folake Adebayo", PatientID: "HOSP87654321"},
		{ID: 3, Name: "Emeka Okonkwo", PatientID: "HOSP11223344"},
	}
}

func newTestFlow(t *testing.T) *Flow {
	t.Helper()
	f := NewFlow(func() []roster.Summary { return testRoster() }, fixedClock())
	t.Cleanup(f.Close)
	return f
}

func TestNewFlow_Defaults(t *testing.T) {
	f := newTestFlow(t)

	if got := f.SelectedDate(); got.Year() != 2025 || got.Month() != time.September || got.Day() != 22 {
		t.Fatalf("selected date = %v, want 22 Sep 2025", got)
	}
	if v := f.View(); v.Year != 2025 || v.Month != time.September {
		t.Fatalf("view = %v %v, want September 2025", v.Month, v.Year)
	}
	if got := f.TimeText(); got != "02:30 PM" {
		t.Fatalf("time text = %q, want %q", got, "02:30 PM")
	}
	if got := f.DateText(); got != "22 Sep 2025" {
		t.Fatalf("date text = %q, want %q", got, "22 Sep 2025")
	}
	if f.Clinic() != "" || f.AppointmentType() != "" {
		t.Fatal("clinic and type should start unselected")
	}
	if f.Selected() != nil {
		t.Fatal("no patient should be committed at open")
	}
}

func TestSetSearch_ShowsResults(t *testing.T) {
	f := newTestFlow(t)

	if f.ResultsVisible() {
		t.Fatal("results visible before any text")
	}
	if err := f.SetSearch("Akpo"); err != nil {
		t.Fatalf("SetSearch: %v", err)
	}
	if !f.ResultsVisible() {
		t.Fatal("results should be visible with non-empty text")
	}
	res := f.Results()
	if len(res) != 1 || res[0].Name != "Akpopodion Endurance" {
		t.Fatalf("results = %v, want the one Akpopodion match", res)
	}
}

func TestResults_NoMatchIsEmptyNotNil(t *testing.T) {
	f := newTestFlow(t)

	if err := f.SetSearch("zzz"); err != nil {
		t.Fatalf("SetSearch: %v", err)
	}
	res := f.Results()
	if res == nil {
		t.Fatal("no-match state should be an empty list, not a hidden one")
	}
	if len(res) != 0 {
		t.Fatalf("results = %v, want none", res)
	}
}

func TestSelectPatient_CommitsAndClosesList(t *testing.T) {
	f := newTestFlow(t)

	if err := f.SetSearch("Fol"); err != nil {
		t.Fatalf("SetSearch: %v", err)
	}
	if err := f.SelectPatient(2); err != nil {
		t.Fatalf("SelectPatient: %v", err)
	}
	sel := f.Selected()
	if sel == nil || sel.ID != 2 {
		t.Fatalf("selected = %v, want patient 2", sel)
	}
	if got := f.Search(); got != "Folake Adebayo" {
		t.Fatalf("search box = %q, want the selected name", got)
	}
	if f.ResultsVisible() {
		t.Fatal("results should close on selection")
	}
}

func TestSelectPatient_Unknown(t *testing.T) {
	f := newTestFlow(t)

	if err := f.SelectPatient(99); !errors.Is(err, ErrUnknownPatient) {
		t.Fatalf("err = %v, want ErrUnknownPatient", err)
	}
}

func TestSetSearch_TypingClearsSelection(t *testing.T) {
	f := newTestFlow(t)

	if err := f.SelectPatient(1); err != nil {
		t.Fatalf("SelectPatient: %v", err)
	}
	if err := f.SetSearch("Eme"); err != nil {
		t.Fatalf("SetSearch: %v", err)
	}
	if f.Selected() != nil {
		t.Fatal("typing should clear the committed selection")
	}
	if !f.ResultsVisible() {
		t.Fatal("typing should reopen the results list")
	}
}

func TestDismissResults_KeepsSelection(t *testing.T) {
	f := newTestFlow(t)

	if err := f.SelectPatient(3); err != nil {
		t.Fatalf("SelectPatient: %v", err)
	}
	if err := f.Focus(); err != nil {
		t.Fatalf("Focus: %v", err)
	}
	if err := f.DismissResults(); err != nil {
		t.Fatalf("DismissResults: %v", err)
	}
	if f.ResultsVisible() {
		t.Fatal("results should be dismissed")
	}
	if sel := f.Selected(); sel == nil || sel.ID != 3 {
		t.Fatal("dismissing the list must not drop the selection")
	}
}

func TestResults_SeeLiveRoster(t *testing.T) {
	records := testRoster()
	f := NewFlow(func() []roster.Summary { return records }, fixedClock())
	defer f.Close()

	if err := f.SetSearch("Ngozi"); err != nil {
		t.Fatalf("SetSearch: %v", err)
	}
	if got := f.Results(); len(got) != 0 {
		t.Fatalf("results = %v, want none before registration", got)
	}

	records = append([]roster.Summary{{ID: 4, Name: "Ngozi Eze", PatientID: "HOSP99887766"}}, records...)
	got := f.Results()
	if len(got) != 1 || got[0].ID != 4 {
		t.Fatalf("results = %v, want the newly registered patient", got)
	}
}

func TestClinicPicker_SearchAndSelect(t *testing.T) {
	f := newTestFlow(t)

	if err := f.OpenClinicPicker(); err != nil {
		t.Fatalf("OpenClinicPicker: %v", err)
	}
	if got := f.OpenPicker(); got != PickerClinic {
		t.Fatalf("picker = %q, want clinic", got)
	}

	opts, err := f.PickerOptions()
	if err != nil {
		t.Fatalf("PickerOptions: %v", err)
	}
	if len(opts) != len(Clinics) {
		t.Fatalf("got %d options, want all %d clinics", len(opts), len(Clinics))
	}

	if err := f.SetPickerSearch("neuro"); err != nil {
		t.Fatalf("SetPickerSearch: %v", err)
	}
	opts, err = f.PickerOptions()
	if err != nil {
		t.Fatalf("PickerOptions: %v", err)
	}
	if len(opts) != 1 || opts[0].Label != "Neurology" {
		t.Fatalf("filtered options = %v, want just Neurology", opts)
	}

	if err := f.SelectOption("Neurology"); err != nil {
		t.Fatalf("SelectOption: %v", err)
	}
	if got := f.Clinic(); got != "Neurology" {
		t.Fatalf("clinic = %q, want Neurology", got)
	}
	if got := f.OpenPicker(); got != PickerNone {
		t.Fatalf("picker = %q, want closed after commit", got)
	}
}

func TestClinicPicker_ResetsSearchOnReopen(t *testing.T) {
	f := newTestFlow(t)

	if err := f.OpenClinicPicker(); err != nil {
		t.Fatalf("OpenClinicPicker: %v", err)
	}
	if err := f.SetPickerSearch("renal"); err != nil {
		t.Fatalf("SetPickerSearch: %v", err)
	}
	if err := f.ClosePicker(); err != nil {
		t.Fatalf("ClosePicker: %v", err)
	}
	if err := f.OpenClinicPicker(); err != nil {
		t.Fatalf("OpenClinicPicker: %v", err)
	}
	opts, err := f.PickerOptions()
	if err != nil {
		t.Fatalf("PickerOptions: %v", err)
	}
	if len(opts) != len(Clinics) {
		t.Fatalf("got %d options, want the unfiltered list on reopen", len(opts))
	}
}

func TestTypePicker_NoSearchAndDetailHint(t *testing.T) {
	f := newTestFlow(t)

	if err := f.OpenTypePicker(); err != nil {
		t.Fatalf("OpenTypePicker: %v", err)
	}
	if err := f.SetPickerSearch("walk"); !errors.Is(err, ErrPickerNoSearch) {
		t.Fatalf("err = %v, want ErrPickerNoSearch", err)
	}

	opts, err := f.PickerOptions()
	if err != nil {
		t.Fatalf("PickerOptions: %v", err)
	}
	for _, o := range opts {
		if o.DetailHint != (o.Label == DetailHintOption) {
			t.Fatalf("detail hint on %q = %v", o.Label, o.DetailHint)
		}
	}

	if err := f.SelectOption("Consult"); err != nil {
		t.Fatalf("SelectOption: %v", err)
	}
	if got := f.AppointmentType(); got != "Consult" {
		t.Fatalf("type = %q, want Consult", got)
	}

	// The hint marks only the unselected Consult row.
	if err := f.OpenTypePicker(); err != nil {
		t.Fatalf("OpenTypePicker: %v", err)
	}
	opts, err = f.PickerOptions()
	if err != nil {
		t.Fatalf("PickerOptions: %v", err)
	}
	for _, o := range opts {
		if o.Label == "Consult" {
			if !o.Selected || o.DetailHint {
				t.Fatalf("Consult row = %+v, want selected with no hint", o)
			}
		}
	}
}

func TestSelectOption_Unknown(t *testing.T) {
	f := newTestFlow(t)

	if err := f.OpenClinicPicker(); err != nil {
		t.Fatalf("OpenClinicPicker: %v", err)
	}
	if err := f.SelectOption("Dermatology"); !errors.Is(err, ErrUnknownOption) {
		t.Fatalf("err = %v, want ErrUnknownOption", err)
	}
}

func TestSelectOption_NoPickerOpen(t *testing.T) {
	f := newTestFlow(t)

	if err := f.SelectOption("Renal"); !errors.Is(err, ErrNoPickerOpen) {
		t.Fatalf("err = %v, want ErrNoPickerOpen", err)
	}
	if _, err := f.PickerOptions(); !errors.Is(err, ErrNoPickerOpen) {
		t.Fatalf("err = %v, want ErrNoPickerOpen", err)
	}
}

func TestCalendar_SelectDay(t *testing.T) {
	f := newTestFlow(t)

	if err := f.SelectDay(5, true); err != nil {
		t.Fatalf("SelectDay: %v", err)
	}
	got := f.SelectedDate()
	if got.Day() != 5 || got.Month() != time.September || got.Year() != 2025 {
		t.Fatalf("selected = %v, want 5 Sep 2025", got)
	}
	if !f.DaySelected(5, true) {
		t.Fatal("DaySelected should report the chosen cell")
	}
	if got := f.DateText(); got != "5 Sep 2025" {
		t.Fatalf("date text = %q, want %q", got, "5 Sep 2025")
	}
}

func TestCalendar_AdjacentMonthCellIsNoOp(t *testing.T) {
	f := newTestFlow(t)

	before := f.SelectedDate()
	if err := f.SelectDay(31, false); err != nil {
		t.Fatalf("SelectDay: %v", err)
	}
	if got := f.SelectedDate(); !got.Equal(before) {
		t.Fatalf("selection moved to %v on an out-of-month cell", got)
	}
}

func TestCalendar_NavigationKeepsSelection(t *testing.T) {
	f := newTestFlow(t)

	if err := f.SelectDay(10, true); err != nil {
		t.Fatalf("SelectDay: %v", err)
	}
	if err := f.NextMonth(); err != nil {
		t.Fatalf("NextMonth: %v", err)
	}
	if v := f.View(); v.Month != time.October {
		t.Fatalf("view month = %v, want October", v.Month)
	}
	// Selection still points at Sep 10, which the October view does
	// not highlight.
	if f.DaySelected(10, true) {
		t.Fatal("October 10 must not appear selected")
	}
	if got := f.SelectedDate(); got.Month() != time.September || got.Day() != 10 {
		t.Fatalf("selection = %v, want unchanged Sep 10", got)
	}

	if err := f.PrevMonth(); err != nil {
		t.Fatalf("PrevMonth: %v", err)
	}
	if !f.DaySelected(10, true) {
		t.Fatal("returning to September should highlight the selection again")
	}
}

func TestJumpToToday_ResetsSelectionNotView(t *testing.T) {
	f := newTestFlow(t)

	if err := f.NextMonth(); err != nil {
		t.Fatalf("NextMonth: %v", err)
	}
	if err := f.JumpToToday(); err != nil {
		t.Fatalf("JumpToToday: %v", err)
	}
	if got := f.SelectedDate(); got.Day() != 22 || got.Month() != time.September {
		t.Fatalf("selection = %v, want today", got)
	}
	if v := f.View(); v.Month != time.October {
		t.Fatalf("view month = %v, want unchanged October", v.Month)
	}
}

func TestRefreshTime(t *testing.T) {
	at := time.Date(2025, time.September, 22, 14, 30, 0, 0, time.UTC)
	f := NewFlow(func() []roster.Summary { return nil }, func() time.Time { return at })
	defer f.Close()

	at = at.Add(7 * time.Minute)
	f.RefreshTime()
	if got := f.TimeText(); got != "02:37 PM" {
		t.Fatalf("time text = %q, want %q", got, "02:37 PM")
	}
}

func TestClose_RejectsFurtherEvents(t *testing.T) {
	f := NewFlow(func() []roster.Summary { return testRoster() }, fixedClock())
	f.Close()
	f.Close() // idempotent

	if !f.Closed() {
		t.Fatal("flow should report closed")
	}
	if err := f.SetSearch("x"); !errors.Is(err, ErrFlowClosed) {
		t.Fatalf("SetSearch err = %v, want ErrFlowClosed", err)
	}
	if err := f.NextMonth(); !errors.Is(err, ErrFlowClosed) {
		t.Fatalf("NextMonth err = %v, want ErrFlowClosed", err)
	}
	if err := f.OpenClinicPicker(); !errors.Is(err, ErrFlowClosed) {
		t.Fatalf("OpenClinicPicker err = %v, want ErrFlowClosed", err)
	}
}

func TestCreateInvoice_NotWired(t *testing.T) {
	f := newTestFlow(t)

	if err := f.CreateInvoice(); !errors.Is(err, ErrDraftNotWired) {
		t.Fatalf("err = %v, want ErrDraftNotWired", err)
	}
}

func TestSaveAndClose_Discards(t *testing.T) {
	f := NewFlow(func() []roster.Summary { return testRoster() }, fixedClock())

	if err := f.SelectPatient(1); err != nil {
		t.Fatalf("SelectPatient: %v", err)
	}
	f.SaveAndClose()
	if !f.Closed() {
		t.Fatal("SaveAndClose should close the flow")
	}
}
