package roster

import (
	"sync"
	"time"
)

// Store is the canonical ordered patient collection. Display order is
// insertion order with the newest registration first. The store is
// append-only: no update or delete is exposed, so a handed-out record
// is never invalidated.
//
// IDs come from a monotonically increasing counter seeded past the
// initial records. The original dashboard derived new ids from the
// current collection size, which reuses ids if records are ever
// removed; the counter avoids that without changing observable
// behavior for the append-only workflow.
type Store struct {
	mu      sync.RWMutex
	records []Patient
	nextID  int
	now     func() time.Time
}

// NewStore builds a store over the given initial records, newest
// first. The records are copied; the caller's slice is not retained.
// now supplies registration timestamps and defaults to time.Now.
func NewStore(initial []Patient, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	records := make([]Patient, len(initial))
	copy(records, initial)
	next := 1
	for _, p := range records {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return &Store{records: records, nextID: next, now: now}
}

// List returns the records in display order. The returned slice is a
// copy; callers may not mutate the store through it.
func (s *Store) List() []Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Patient, len(s.records))
	copy(out, s.records)
	return out
}

// Summaries returns the read-only projection the booking flow searches
// over, in display order.
func (s *Store) Summaries() []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Summary, len(s.records))
	for i, p := range s.records {
		out[i] = Summary{ID: p.ID, Name: p.Name, PatientID: p.PatientID}
	}
	return out
}

// Count returns the number of records.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Get returns the record with the given id.
func (s *Store) Get(id int) (Patient, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.records {
		if p.ID == id {
			return p, true
		}
	}
	return Patient{}, false
}

// Register builds a full patient record from the intake data and
// prepends it so it is the most prominent row. Fields the intake flow
// does not collect get deterministic defaults; the scheduling time is
// the registration instant. Returns the stored record.
func (s *Store) Register(in Intake) Patient {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	gender := in.Gender
	if gender == "" {
		gender = GenderFemale
	}
	p := Patient{
		ID:            s.nextID,
		Name:          in.FirstName + " " + in.LastName,
		PatientID:     in.PatientID,
		Gender:        gender,
		Age:           DefaultAge,
		IsNew:         in.IsNew,
		Clinic:        DefaultClinic,
		WalletBalance: 0,
		Time:          FormatTime(now),
		Date:          FormatDate(now),
		Status:        StatusNotArrived,
		AvatarColor:   DefaultAvatarColor,
	}
	s.nextID++
	s.records = append([]Patient{p}, s.records...)
	return p
}
