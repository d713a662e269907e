package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"smartparking/internal/entities"
	"smartparking/internal/templates"

	"go.uber.org/zap"
)

var pages = []string{"home", "lot", "book", "dashboard", "login", "register"}

// page is the data every view receives. Data holds the view specific part.
type page struct {
	Title      string
	Session    *entities.Session
	Error      string
	Notice     string
	RetryURL   string
	Heading    string
	RedirectTo string
	Data       interface{}
}

type Renderer struct {
	pages map[string]*template.Template
	log   *zap.Logger
}

func NewRenderer(loc *time.Location, log *zap.Logger) (*Renderer, error) {
	funcs := template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("₹%.2f", v) },
		"rating": func(l entities.ParkingLot) string {
			return fmt.Sprintf("%.1f", l.Rating())
		},
		"localTime": func(t time.Time) string {
			return t.In(loc).Format("02 Jan 2006, 15:04")
		},
		"slotClass": slotClass,
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages)), log: log}
	for _, name := range pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(templates.FS, "layout.html", name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func slotClass(status string) string {
	switch status {
	case entities.SlotAvailable:
		return "slot-available"
	case entities.SlotOccupied:
		return "slot-occupied"
	case entities.SlotReserved:
		return "slot-reserved"
	default:
		return "slot-unknown"
	}
}

// HTML renders name inside the layout. Output is buffered; a template
// failure yields a 500.
func (rd *Renderer) HTML(w http.ResponseWriter, r *http.Request, status int, name string, p page) {
	t, ok := rd.pages[name]
	if !ok {
		rd.log.Error("unknown template", zap.String("template", name), zap.String("request_id", RequestID(r.Context())))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		rd.log.Error("failed to render template",
			zap.String("template", name),
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
