// Package roster holds the front-desk patient roster: the canonical
// in-memory patient collection, the free-text filter over it, and the
// seed records that stand in for a backing store.
package roster

import "time"

// Status is the front-desk workflow state shown on a roster row.
type Status string

const (
	StatusProcessing     Status = "Processing"
	StatusNotArrived     Status = "Not arrived"
	StatusAwaitingVitals Status = "Awaiting vitals"
	StatusAwaitingDoctor Status = "Awaiting doctor"
	StatusAdmitted       Status = "Admitted to ward"
	StatusTransferredAE  Status = "Transferred to A&E"
	StatusSeenDoctor     Status = "Seen doctor"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{
	StatusProcessing,
	StatusNotArrived,
	StatusAwaitingVitals,
	StatusAwaitingDoctor,
	StatusAdmitted,
	StatusTransferredAE,
	StatusSeenDoctor,
}

// Valid reports whether s is one of the closed status set.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Gender is the closed gender enum used on patient records.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Patient is one roster row. ID is a numeric sequence value assigned at
// registration, unique within a Store and never reused; records are
// immutable once created.
type Patient struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	PatientID     string `json:"patient_id"`
	Gender        Gender `json:"gender"`
	Age           string `json:"age"`
	IsNew         bool   `json:"is_new"`
	Clinic        string `json:"clinic"`
	ClinicBadge   string `json:"clinic_badge,omitempty"`
	WalletBalance int    `json:"wallet_balance"`
	Time          string `json:"time"`
	Date          string `json:"date"`
	Status        Status `json:"status"`
	AvatarColor   string `json:"avatar_color"`
}

// Summary is the read-only projection handed to the booking flow. It
// carries just enough to search and commit a selection by identity.
type Summary struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	PatientID string `json:"patient_id"`
}

// Intake is the normalized output of the patient intake flow.
type Intake struct {
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name,omitempty"`
	LastName   string `json:"last_name"`
	Title      string `json:"title,omitempty"`
	DOB        string `json:"dob,omitempty"`
	Phone      string `json:"phone,omitempty"`
	PatientID  string `json:"patient_id"`
	Gender     Gender `json:"gender"`
	Age        string `json:"age"`
	IsNew      bool   `json:"is_new"`
}

// Registration defaults. A freshly registered patient has not been
// triaged, so the clinic, wallet and age are placeholders until the
// demographic workflows fill them in.
const (
	DefaultClinic      = "General Practice"
	DefaultAge         = "25yrs"
	DefaultAvatarColor = "bg-purple-200"
)

// timeLayout and dateLayout match the display strings the dashboard
// renders, e.g. "11:30 AM" and "22 Sep 2025".
const (
	timeLayout = "03:04 PM"
	dateLayout = "2 Jan 2006"
)

// FormatTime renders a clock reading the way roster rows display it.
func FormatTime(t time.Time) string {
	return t.Format(timeLayout)
}

// FormatDate renders a date the way roster rows display it.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
