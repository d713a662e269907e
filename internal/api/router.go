package api

import (
	"net/http"

	"smartparking/internal/auth"
	"smartparking/internal/service"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Services struct {
	Parking  *service.ParkingService
	Bookings *service.BookingService
	Auth     *service.AuthService
	Live     *service.LiveService
}

// NewRouter wires every page route. secure marks cookies Secure.
func NewRouter(svc Services, render *Renderer, secure bool, log *zap.Logger) http.Handler {
	parkingHandler := NewParkingHandler(svc.Parking, render, log)
	bookingHandler := NewBookingHandler(svc.Parking, svc.Bookings, svc.Auth, render, secure, log)
	authHandler := NewAuthHandler(svc.Auth, render, secure, log)
	liveHandler := NewLiveHandler(svc.Live, log)

	r := mux.NewRouter()
	r.Use(auth.SessionMiddleware(svc.Auth, secure, log))

	r.HandleFunc("/health", Health).Methods("GET")

	// Public pages
	r.HandleFunc("/", parkingHandler.Home).Methods("GET")
	r.HandleFunc("/nearby", parkingHandler.Nearby).Methods("GET")
	r.HandleFunc("/parking-lots/{id:[0-9]+}", parkingHandler.Detail).Methods("GET")
	r.HandleFunc("/parking-lots/{id:[0-9]+}/quote", bookingHandler.Quote).Methods("GET")
	r.HandleFunc("/parking-lots/{id:[0-9]+}/live", liveHandler.Feed).Methods("GET")
	r.HandleFunc("/login", authHandler.LoginPage).Methods("GET")
	r.HandleFunc("/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/register", authHandler.RegisterPage).Methods("GET")
	r.HandleFunc("/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/logout", authHandler.Logout).Methods("POST")

	// Signed-in pages
	withReturn := auth.RequireSession(true)
	r.Handle("/parking-lots/{id:[0-9]+}/book", withReturn(http.HandlerFunc(bookingHandler.BookForm))).Methods("GET")
	r.Handle("/parking-lots/{id:[0-9]+}/book", withReturn(http.HandlerFunc(bookingHandler.Book))).Methods("POST")
	r.Handle("/dashboard", auth.RequireSession(false)(http.HandlerFunc(bookingHandler.Dashboard))).Methods("GET")

	var h http.Handler = r
	h = handlers.CompressHandler(h)
	h = RequestLogger(log)(h)
	h = handlers.ProxyHeaders(h)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(zap.NewStdLog(log)), handlers.PrintRecoveryStack(true))(h)
	return h
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
