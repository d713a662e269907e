package api

import (
	"net/http"
	"strconv"

	"smartparking/internal/auth"
	apperrors "smartparking/internal/errors"
	"smartparking/internal/repository"
	"smartparking/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type ParkingHandler struct {
	parking *service.ParkingService
	render  *Renderer
	log     *zap.Logger
}

func NewParkingHandler(parking *service.ParkingService, render *Renderer, log *zap.Logger) *ParkingHandler {
	return &ParkingHandler{parking: parking, render: render, log: log}
}

func (h *ParkingHandler) Home(w http.ResponseWriter, r *http.Request) {
	p := page{Session: auth.FromContext(r.Context()), Heading: "All Parking Lots", RetryURL: "/"}

	data, err := h.parking.Home(r.Context())
	if err != nil {
		p.Error = apperrors.Message(err, "Failed to load parking lots")
		p.Data = &service.HomeData{}
		h.render.HTML(w, r, http.StatusOK, "home", p)
		return
	}
	p.Data = data
	h.render.HTML(w, r, http.StatusOK, "home", p)
}

func (h *ParkingHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := page{
		Title:    "Nearby",
		Session:  auth.FromContext(r.Context()),
		Heading:  "Parking Lots Near You",
		RetryURL: r.URL.RequestURI(),
		Data:     &service.HomeData{},
	}

	lat, errLat := strconv.ParseFloat(q.Get("latitude"), 64)
	lon, errLon := strconv.ParseFloat(q.Get("longitude"), 64)
	if errLat != nil || errLon != nil {
		p.Error = "Latitude and longitude are required"
		p.RetryURL = "/"
		h.render.HTML(w, r, http.StatusBadRequest, "home", p)
		return
	}
	radius := repository.DefaultNearbyRadiusKm
	if v := q.Get("radius_km"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			radius = parsed
		}
	}

	lots, err := h.parking.Nearby(r.Context(), lat, lon, radius)
	if err != nil {
		p.Error = apperrors.Message(err, "Failed to load parking lots")
		h.render.HTML(w, r, http.StatusOK, "home", p)
		return
	}
	p.Data = &service.HomeData{Lots: lots}
	h.render.HTML(w, r, http.StatusOK, "home", p)
}

func (h *ParkingHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	p := page{Title: "Parking Lot", Session: auth.FromContext(r.Context())}

	detail, err := h.parking.Detail(r.Context(), id)
	if err != nil {
		p.Error = apperrors.Message(err, "Failed to load parking lot")
		h.render.HTML(w, r, http.StatusOK, "lot", p)
		return
	}
	p.Title = detail.Lot.Name
	p.Data = detail
	h.render.HTML(w, r, http.StatusOK, "lot", p)
}
