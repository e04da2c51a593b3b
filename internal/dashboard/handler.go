package dashboard

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/frontdesk/frontdesk/internal/domain/booking"
	"github.com/frontdesk/frontdesk/internal/domain/calendar"
	"github.com/frontdesk/frontdesk/internal/domain/intake"
	"github.com/frontdesk/frontdesk/internal/domain/roster"
	"github.com/frontdesk/frontdesk/pkg/pagination"
)

// Handler exposes one endpoint per dashboard UI event against a
// session registry.
type Handler struct {
	mgr *Manager
}

func NewHandler(mgr *Manager) *Handler {
	return &Handler{mgr: mgr}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/sessions", h.OpenSession)
	api.DELETE("/sessions/:id", h.CloseSession)

	api.GET("/sessions/:id/roster", h.RosterView)
	api.PUT("/sessions/:id/roster/search", h.SetRosterSearch)
	api.POST("/sessions/:id/roster/:patient/toggle", h.ToggleRow)

	api.POST("/sessions/:id/intake", h.OpenIntake)
	api.GET("/sessions/:id/intake", h.IntakeView)
	api.PUT("/sessions/:id/intake", h.UpdateIntake)
	api.POST("/sessions/:id/intake/submit", h.SubmitIntake)
	api.DELETE("/sessions/:id/intake", h.CancelIntake)

	api.POST("/sessions/:id/booking", h.OpenBooking)
	api.GET("/sessions/:id/booking", h.BookingView)
	api.DELETE("/sessions/:id/booking", h.CloseBooking)
	api.PUT("/sessions/:id/booking/search", h.BookingSearch)
	api.POST("/sessions/:id/booking/search/focus", h.BookingFocus)
	api.POST("/sessions/:id/booking/search/dismiss", h.BookingDismiss)
	api.POST("/sessions/:id/booking/patient", h.BookingSelectPatient)
	api.POST("/sessions/:id/booking/picker/:kind", h.OpenPicker)
	api.DELETE("/sessions/:id/booking/picker", h.ClosePicker)
	api.PUT("/sessions/:id/booking/picker/search", h.PickerSearch)
	api.POST("/sessions/:id/booking/picker/select", h.PickerSelect)
	api.POST("/sessions/:id/booking/calendar/prev", h.CalendarPrev)
	api.POST("/sessions/:id/booking/calendar/next", h.CalendarNext)
	api.POST("/sessions/:id/booking/calendar/today", h.CalendarToday)
	api.POST("/sessions/:id/booking/calendar/day", h.CalendarSelectDay)
	api.POST("/sessions/:id/booking/save", h.BookingSaveAndClose)
	api.POST("/sessions/:id/booking/invoice", h.BookingCreateInvoice)
}

// -- Session lifecycle --

type sessionResponse struct {
	SessionID string `json:"session_id"`
	Header    Header `json:"header"`
}

func (h *Handler) OpenSession(c echo.Context) error {
	s, err := h.mgr.Open()
	if err != nil {
		if errors.Is(err, ErrTooManySessions) {
			return echo.NewHTTPError(http.StatusTooManyRequests, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, sessionResponse{
		SessionID: s.ID().String(),
		Header:    s.Header(),
	})
}

func (h *Handler) CloseSession(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid session id")
	}
	if err := h.mgr.Close(id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) session(c echo.Context) (*Session, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid session id")
	}
	s, err := h.mgr.Get(id)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return s, nil
}

// -- Roster --

type rosterView struct {
	Header   Header               `json:"header"`
	Search   string               `json:"search"`
	Expanded *int                 `json:"expanded_id,omitempty"`
	Patients *pagination.Response `json:"patients"`
}

// RosterView returns the visible roster page. A `query` parameter
// replaces the session's stored search term before the read; zero
// matches is a normal 200 with an empty page, as is paging past the
// end of the roster.
func (h *Handler) RosterView(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	if q := c.QueryParams(); q.Has("query") {
		if err := s.SetSearch(q.Get("query")); err != nil {
			return sessionError(err)
		}
	}

	pg := pagination.FromContext(c)
	visible := s.Roster()
	total := len(visible)
	// Clamp the low bound before deriving the high one so an extreme
	// offset cannot overflow the sum.
	low := pg.Offset
	if low > total {
		low = total
	}
	high := low + pg.Limit
	if high > total {
		high = total
	}
	page := visible[low:high]

	return c.JSON(http.StatusOK, rosterView{
		Header:   s.Header(),
		Search:   s.Search(),
		Expanded: s.Expanded(),
		Patients: pagination.NewResponse(page, total, pg.Limit, pg.Offset),
	})
}

type searchRequest struct {
	Query string `json:"query"`
}

func (h *Handler) SetRosterSearch(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := s.SetSearch(req.Query); err != nil {
		return sessionError(err)
	}
	return c.JSON(http.StatusOK, rosterView{
		Header:   s.Header(),
		Search:   s.Search(),
		Expanded: s.Expanded(),
		Patients: pagination.NewResponse(s.Roster(), len(s.Roster()), pagination.DefaultLimit, 0),
	})
}

func (h *Handler) ToggleRow(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	pid, err := strconv.Atoi(c.Param("patient"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	if err := s.ToggleRow(pid); err != nil {
		if errors.Is(err, ErrUnknownPatient) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return sessionError(err)
	}
	return c.JSON(http.StatusOK, map[string]*int{"expanded_id": s.Expanded()})
}

// -- Intake --

type intakeView struct {
	State intake.State `json:"state"`
	Draft intake.Draft `json:"draft"`
}

func (h *Handler) OpenIntake(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	f, err := s.OpenIntake()
	if err != nil {
		return sessionError(err)
	}
	return c.JSON(http.StatusCreated, intakeView{State: f.State(), Draft: f.Draft()})
}

func (h *Handler) IntakeView(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	f, err := s.Intake()
	if err != nil {
		return sessionError(err)
	}
	return c.JSON(http.StatusOK, intakeView{State: f.State(), Draft: f.Draft()})
}

func (h *Handler) UpdateIntake(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	f, err := s.Intake()
	if err != nil {
		return sessionError(err)
	}
	var d intake.Draft
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := f.Update(d); err != nil {
		return sessionError(err)
	}
	return c.JSON(http.StatusOK, intakeView{State: f.State(), Draft: f.Draft()})
}

// SubmitIntake commits the draft. A validation failure is a 400 with
// the field error and leaves the modal open.
func (h *Handler) SubmitIntake(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	p, err := s.SubmitIntake()
	if err != nil {
		if intake.IsValidationError(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return sessionError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) CancelIntake(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	if err := s.CancelIntake(); err != nil {
		return sessionError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Booking --

type dayView struct {
	Number   int  `json:"number"`
	InMonth  bool `json:"in_month"`
	Selected bool `json:"selected"`
}

type calendarViewPayload struct {
	Month    string    `json:"month"`
	Year     int       `json:"year"`
	Weekdays []string  `json:"weekdays"`
	Days     []dayView `json:"days"`
}

type bookingViewPayload struct {
	Search        string              `json:"search"`
	Selected      *roster.Summary     `json:"selected_patient,omitempty"`
	ResultsShown  bool                `json:"results_shown"`
	Results       []roster.Summary    `json:"results"`
	Clinic        string              `json:"clinic"`
	Type          string              `json:"appointment_type"`
	Repeat        string              `json:"repeat"`
	Picker        booking.Picker      `json:"picker,omitempty"`
	PickerOptions []booking.Option    `json:"picker_options,omitempty"`
	Calendar      calendarViewPayload `json:"calendar"`
	DateText      string              `json:"date_text"`
	TimeText      string              `json:"time_text"`
}

func bookingView(f *booking.Flow) bookingViewPayload {
	view := f.View()
	grid := view.Grid()
	days := make([]dayView, len(grid))
	for i, d := range grid {
		days[i] = dayView{
			Number:   d.Number,
			InMonth:  d.InMonth,
			Selected: f.DaySelected(d.Number, d.InMonth),
		}
	}

	results := f.Results()
	shown := f.ResultsVisible()
	if shown && results == nil {
		results = []roster.Summary{}
	}

	p := bookingViewPayload{
		Search:       f.Search(),
		Selected:     f.Selected(),
		ResultsShown: shown,
		Results:      results,
		Clinic:       f.Clinic(),
		Type:         f.AppointmentType(),
		Repeat:       booking.RepeatDisplay,
		Picker:       f.OpenPicker(),
		Calendar: calendarViewPayload{
			Month:    view.Name(),
			Year:     view.Year,
			Weekdays: calendar.WeekdayLabels,
			Days:     days,
		},
		DateText: f.DateText(),
		TimeText: f.TimeText(),
	}
	if p.Picker != booking.PickerNone {
		if opts, err := f.PickerOptions(); err == nil {
			p.PickerOptions = opts
		}
	}
	return p
}

func (h *Handler) OpenBooking(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	f, err := s.OpenBooking()
	if err != nil {
		return sessionError(err)
	}
	return c.JSON(http.StatusCreated, bookingView(f))
}

func (h *Handler) BookingView(c echo.Context) error {
	f, err := h.booking(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookingView(f))
}

func (h *Handler) CloseBooking(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	if err := s.CloseBooking(); err != nil {
		return sessionError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) booking(c echo.Context) (*booking.Flow, error) {
	s, err := h.session(c)
	if err != nil {
		return nil, err
	}
	f, err := s.Booking()
	if err != nil {
		return nil, sessionError(err)
	}
	return f, nil
}

type bookingSearchRequest struct {
	Text string `json:"text"`
}

func (h *Handler) BookingSearch(c echo.Context) error {
	f, err := h.booking(c)
	if err != nil {
		return err
	}
	var req bookingSearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := f.SetSearch(req.Text); err != nil {
		return bookingError(err)
	}
	return c.JSON(http.StatusOK, bookingView(f))
}

func (h *Handler) BookingFocus(c echo.Context) error {
	f, err := h.booking(c)
	if err != nil {
		return err
	}
	if err := f.Focus(); err != nil {
		return bookingError(err)
	}
	return c.JSON(http.StatusOK, bookingView(f))
}

func (h *Handler) BookingDismiss(c echo.Context) error {
	f, err := h.booking(c)
	if err != nil {
		return err
	}
	if err := f.DismissResults(); err != nil {
		return bookingError(err)
	}
	return c.JSON(http.StatusOK, bookingView(f))
}

type selectPatientRequest struct {
	ID int `json:"id"`
}

func (h *Handler) BookingSelectPatient(c echo.Context) error {
	f, err := h.booking(c)
	if err != nil {
		return err
	}
	var req selectPatientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := f.SelectPatient(req.ID); err != nil {
		return bookingError(err)
	}
	return c.JSON(http.StatusOK, bookingView(f))
}

func (h *Handler) OpenPicker(c echo.Context) error {
	f, err := h.booking(c)
	if err != nil {
		return err
	}
	switch c.Param("kind") {
	case "clinic":
		err = f.OpenClinicPicker()
	case "type":
		err = f.OpenTypePicker()
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown picker kind")
	}
	if err != nil {
		return bookingError(err)
	}
	return c.JSON(http.StatusOK, bookingView(f))
}

func (h *Handler) ClosePicker(c echo.Context) error {
	f, err := h.booking(c)
	if err != nil {
		return err
	}
	if err := f.ClosePicker(); err != nil {
		return bookingError(err)
	}
	return c.JSON(http.StatusOK, bookingView(f))
}

func (h *Handler) PickerSearch(c echo.Context) error {
	f, err := h.booking(c)
	if err != nil {
		return err
	}
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := f.SetPickerSearch(req.Query); err != nil {
		return bookingError(err)
	}
	return c.JSON(http.StatusOK, bookingView(f))
}

type pickerSelectRequest struct {
	Label string `json:"label"`
}

func (h *Handler) PickerSelect(c echo.Context) error {
	f, err := h.booking(c)
	if err != nil {
		return err
	}
	var req pickerSelectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := f.SelectOption(req.Label); err != nil {
		return bookingError(err)
	}
	return c.JSON(http.StatusOK, bookingView(f))
}

func (h *Handler) CalendarPrev(c echo.Context) error {
	return h.calendarNav(c, (*booking.Flow).PrevMonth)
}

func (h *Handler) CalendarNext(c echo.Context) error {
	return h.calendarNav(c, (*booking.Flow).NextMonth)
}

func (h *Handler) CalendarToday(c echo.Context) error {
	return h.calendarNav(c, (*booking.Flow).JumpToToday)
}

func (h *Handler) calendarNav(c echo.Context, op func(*booking.Flow) error) error {
	f, err := h.booking(c)
	if err != nil {
		return err
	}
	if err := op(f); err != nil {
		return bookingError(err)
	}
	return c.JSON(http.StatusOK, bookingView(f))
}

type selectDayRequest struct {
	Day     int  `json:"day"`
	InMonth bool `json:"in_month"`
}

func (h *Handler) CalendarSelectDay(c echo.Context) error {
	f, err := h.booking(c)
	if err != nil {
		return err
	}
	var req selectDayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := f.SelectDay(req.Day, req.InMonth); err != nil {
		return bookingError(err)
	}
	return c.JSON(http.StatusOK, bookingView(f))
}

func (h *Handler) BookingSaveAndClose(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	f, err := s.Booking()
	if err != nil {
		return sessionError(err)
	}
	f.SaveAndClose()
	if err := s.CloseBooking(); err != nil && !errors.Is(err, ErrNoBookingOpen) {
		return sessionError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// BookingCreateInvoice reports the unimplemented invoice integration
// as 501 rather than pretending to succeed.
func (h *Handler) BookingCreateInvoice(c echo.Context) error {
	f, err := h.booking(c)
	if err != nil {
		return err
	}
	if err := f.CreateInvoice(); err != nil {
		if errors.Is(err, booking.ErrDraftNotWired) {
			return echo.NewHTTPError(http.StatusNotImplemented, err.Error())
		}
		return bookingError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Error mapping --

func sessionError(err error) error {
	switch {
	case errors.Is(err, ErrSessionClosed):
		return echo.NewHTTPError(http.StatusGone, err.Error())
	case errors.Is(err, ErrNoIntakeOpen), errors.Is(err, ErrNoBookingOpen):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, intake.ErrFlowClosed):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func bookingError(err error) error {
	switch {
	case errors.Is(err, booking.ErrUnknownPatient):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, booking.ErrUnknownOption),
		errors.Is(err, booking.ErrPickerNoSearch),
		errors.Is(err, booking.ErrNoPickerOpen):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, booking.ErrFlowClosed):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
