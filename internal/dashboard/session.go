// Package dashboard holds the front-desk session controller: per-session
// roster state, the intake and booking modal flows, and the HTTP surface
// that drives them one UI event at a time.
package dashboard

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/frontdesk/frontdesk/internal/domain/booking"
	"github.com/frontdesk/frontdesk/internal/domain/intake"
	"github.com/frontdesk/frontdesk/internal/domain/roster"
)

// newPatientID is the display placeholder assigned to every intake
// draft. Real hospital-number allocation is out of scope.
const newPatientID = "HOSP98765433"

var (
	ErrSessionClosed  = errors.New("session is closed")
	ErrNoIntakeOpen   = errors.New("no intake modal is open")
	ErrNoBookingOpen  = errors.New("no booking modal is open")
	ErrUnknownPatient = errors.New("patient is not in the roster")
)

// Header is the dashboard chrome: the formatted server date and time,
// computed on read rather than pushed by a ticker.
type Header struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// Session is one front desk's working state. Every mutation funnels
// through its mutex, so a registration and a roster read never
// interleave. The modal flows are mutually exclusive: opening one
// discards the other.
type Session struct {
	mu sync.Mutex

	id    uuid.UUID
	store *roster.Store
	now   func() time.Time

	search   string
	expanded *int

	intake  *intake.Flow
	booking *booking.Flow

	lastSeen time.Time
	closed   bool
}

// NewSession builds a session over its own roster store seeded from
// the given records.
func NewSession(initial []roster.Patient, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{
		id:       uuid.New(),
		store:    roster.NewStore(initial, now),
		now:      now,
		lastSeen: now(),
	}
}

func (s *Session) ID() uuid.UUID { return s.id }

// Touch marks the session as recently used for the TTL sweep.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = s.now()
}

// LastSeen returns the time of the last event on this session.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Header renders the dashboard date and time at the moment of the read.
func (s *Session) Header() Header {
	n := s.now()
	return Header{Date: roster.FormatDate(n), Time: roster.FormatTime(n)}
}

// Close tears the session down, stopping any open booking flow.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.booking != nil {
		s.booking.Close()
		s.booking = nil
	}
	s.intake = nil
}

// Closed reports whether Close has run.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// -- Roster view --

// SetSearch replaces the roster search term.
func (s *Session) SetSearch(q string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.search = q
	return nil
}

// Search returns the current roster search term.
func (s *Session) Search() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search
}

// Roster returns the visible roster: the full store contents filtered
// by the session search term, newest registration first. A term that
// matches nothing yields an empty list, never an error.
func (s *Session) Roster() []roster.Patient {
	s.mu.Lock()
	q := s.search
	s.mu.Unlock()
	return roster.Filter(s.store.List(), q)
}

// ToggleRow expands the identified patient's detail row, collapsing
// whichever row was open. Re-clicking the open row collapses it, back
// to the fully collapsed state.
func (s *Session) ToggleRow(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if _, ok := s.store.Get(id); !ok {
		return ErrUnknownPatient
	}
	if s.expanded != nil && *s.expanded == id {
		s.expanded = nil
		return nil
	}
	s.expanded = &id
	return nil
}

// Expanded returns the id of the expanded row, or nil when collapsed.
func (s *Session) Expanded() *int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.expanded == nil {
		return nil
	}
	id := *s.expanded
	return &id
}

// -- Intake modal --

// OpenIntake opens the register-patient modal with a fresh draft. Any
// open booking flow is discarded first.
func (s *Session) OpenIntake() (*intake.Flow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}
	if s.booking != nil {
		s.booking.Close()
		s.booking = nil
	}
	s.intake = intake.NewFlow(newPatientID, func(in roster.Intake) {
		s.store.Register(in)
	})
	return s.intake, nil
}

// Intake returns the open intake flow.
func (s *Session) Intake() (*intake.Flow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}
	if s.intake == nil {
		return nil, ErrNoIntakeOpen
	}
	return s.intake, nil
}

// SubmitIntake validates and commits the draft. On success it returns
// the record registered at the head of the roster and the modal
// closes; a validation failure leaves the modal open with the draft
// intact.
func (s *Session) SubmitIntake() (roster.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return roster.Patient{}, ErrSessionClosed
	}
	if s.intake == nil {
		return roster.Patient{}, ErrNoIntakeOpen
	}
	if err := s.intake.Submit(); err != nil {
		return roster.Patient{}, err
	}
	s.intake = nil
	return s.store.List()[0], nil
}

// CancelIntake discards the draft and closes the modal.
func (s *Session) CancelIntake() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if s.intake == nil {
		return ErrNoIntakeOpen
	}
	s.intake.Cancel()
	s.intake = nil
	return nil
}

// -- Booking modal --

// OpenBooking opens the add-appointment modal over a live view of the
// roster. Any open intake draft is discarded first.
func (s *Session) OpenBooking() (*booking.Flow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}
	s.intake = nil
	if s.booking != nil {
		s.booking.Close()
	}
	s.booking = booking.NewFlow(s.store.Summaries, s.now)
	return s.booking, nil
}

// Booking returns the open booking flow.
func (s *Session) Booking() (*booking.Flow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}
	if s.booking == nil {
		return nil, ErrNoBookingOpen
	}
	return s.booking, nil
}

// CloseBooking discards the booking draft and stops its time
// refresher.
func (s *Session) CloseBooking() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if s.booking == nil {
		return ErrNoBookingOpen
	}
	s.booking.Close()
	s.booking = nil
	return nil
}
