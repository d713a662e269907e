package api

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"smartparking/internal/auth"
	"smartparking/internal/entities"
	apperrors "smartparking/internal/errors"
	"smartparking/internal/service"
	"smartparking/internal/utils"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type BookingHandler struct {
	parking  *service.ParkingService
	bookings *service.BookingService
	auth     *service.AuthService
	render   *Renderer
	secure   bool
	log      *zap.Logger
	now      func() time.Time
}

func NewBookingHandler(parking *service.ParkingService, bookings *service.BookingService, authSvc *service.AuthService, render *Renderer, secure bool, log *zap.Logger) *BookingHandler {
	return &BookingHandler{parking: parking, bookings: bookings, auth: authSvc, render: render, secure: secure, log: log, now: time.Now}
}

type bookingPage struct {
	Lot          *entities.ParkingLot
	Form         entities.BookingForm
	VehicleTypes []utils.VehicleType
	Quote        entities.Quote
	ShowQuote    bool
	Success      bool
}

func (h *BookingHandler) newBookingPage(lot *entities.ParkingLot, form entities.BookingForm) *bookingPage {
	if form.VehicleType == "" {
		form.VehicleType = utils.DefaultVehicleType
	}
	bp := &bookingPage{Lot: lot, Form: form, VehicleTypes: utils.VehicleTypes}
	if lot != nil && form.StartTime != "" && form.EndTime != "" {
		bp.Quote = h.bookings.Quote(form.StartTime, form.EndTime, lot.PricePerHour)
		bp.ShowQuote = true
	}
	return bp
}

func lotID(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}

func (h *BookingHandler) BookForm(w http.ResponseWriter, r *http.Request) {
	p := page{Title: "Book Parking", Session: auth.FromContext(r.Context())}

	lot, err := h.parking.Lot(r.Context(), lotID(r))
	if err != nil {
		p.Error = apperrors.Message(err, "Failed to load parking lot")
		p.Data = h.newBookingPage(nil, entities.BookingForm{})
		h.render.HTML(w, r, http.StatusOK, "book", p)
		return
	}
	p.Data = h.newBookingPage(lot, h.defaultForm())
	h.render.HTML(w, r, http.StatusOK, "book", p)
}

// defaultForm proposes a one hour stay starting at the next full hour of
// the booking location.
func (h *BookingHandler) defaultForm() entities.BookingForm {
	loc := h.bookings.Location()
	now := h.now().In(loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), now.Hour()+1, 0, 0, 0, loc)
	return entities.BookingForm{
		StartTime:   utils.FormatLocalDateTime(start, loc),
		EndTime:     utils.FormatLocalDateTime(start.Add(time.Hour), loc),
		VehicleType: utils.DefaultVehicleType,
	}
}

func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	sess := auth.FromContext(r.Context())
	p := page{Title: "Book Parking", Session: sess}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	form := entities.BookingForm{
		StartTime:     r.PostForm.Get("start_time"),
		EndTime:       r.PostForm.Get("end_time"),
		VehicleNumber: r.PostForm.Get("vehicle_number"),
		VehicleType:   r.PostForm.Get("vehicle_type"),
	}

	lot, err := h.parking.Lot(r.Context(), lotID(r))
	if err != nil {
		p.Error = apperrors.Message(err, "Failed to load parking lot")
		p.Data = h.newBookingPage(nil, form)
		h.render.HTML(w, r, http.StatusOK, "book", p)
		return
	}

	bp := h.newBookingPage(lot, form)
	p.Data = bp

	if _, err := h.bookings.Create(r.Context(), sess, *lot, form); err != nil {
		if h.expired(w, r, err) {
			return
		}
		p.Error = apperrors.Message(err, "Booking failed")
		h.render.HTML(w, r, http.StatusOK, "book", p)
		return
	}

	bp.Success = true
	p.RedirectTo = "/dashboard"
	h.render.HTML(w, r, http.StatusOK, "book", p)
}

// Quote answers the booking page's live total display.
func (h *BookingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	lot, err := h.parking.Lot(r.Context(), lotID(r))
	if err != nil {
		status := apperrors.StatusOf(err)
		if status == 0 {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, map[string]string{"error": apperrors.Message(err, "")})
		return
	}
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, h.bookings.Quote(q.Get("start_time"), q.Get("end_time"), lot.PricePerHour))
}

func (h *BookingHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess := auth.FromContext(r.Context())
	p := page{Title: "Dashboard", Session: sess}

	bookings, err := h.bookings.List(r.Context(), sess)
	if err != nil {
		if h.expired(w, r, err) {
			return
		}
		p.Error = apperrors.Message(err, "Failed to load bookings")
		h.render.HTML(w, r, http.StatusOK, "dashboard", p)
		return
	}
	p.Data = bookings
	h.render.HTML(w, r, http.StatusOK, "dashboard", p)
}

// expired ends the session when the backend no longer accepts its token and
// sends the user back to the login page.
func (h *BookingHandler) expired(w http.ResponseWriter, r *http.Request, err error) bool {
	if !apperrors.IsUnauthorized(err) {
		return false
	}
	if sess := auth.FromContext(r.Context()); sess != nil {
		if err := h.auth.Logout(r.Context(), sess.ID); err != nil {
			h.log.Warn("failed to drop rejected session",
				zap.String("request_id", RequestID(r.Context())),
				zap.Error(err))
		}
	}
	auth.ClearCookie(w, h.secure)
	http.Redirect(w, r, "/login?expired=1&redirect="+url.QueryEscape(r.URL.Path), http.StatusSeeOther)
	return true
}
