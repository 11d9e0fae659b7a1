package api

import (
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/Menuscore/internal/dataset"
)

type ScoresHandler struct {
	svc *dataset.Service
}

func NewScoresHandler(svc *dataset.Service) *ScoresHandler {
	return &ScoresHandler{svc: svc}
}

// ScoresResponse is the ranking over the filtered record set. Calorie
// bounds are omitted when nothing was ranked.
type ScoresResponse struct {
	Restaurants []dataset.ScoreSummary `json:"restaurants"`
	MinCalories *float64               `json:"min_calories,omitempty"`
	MaxCalories *float64               `json:"max_calories,omitempty"`
}

func (h *ScoresHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.Analyze(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "analysis interrupted")
		return
	}

	resp := ScoresResponse{Restaurants: dataset.Summaries(res)}
	if res != nil {
		resp.MinCalories = &res.MinCalories
		resp.MaxCalories = &res.MaxCalories
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ScoresHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "restaurant")
	res, err := h.svc.Analysis(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "analysis interrupted")
		return
	}
	if res == nil {
		writeError(w, http.StatusNotFound, "restaurant not ranked")
		return
	}
	score, ok := res.Find(name)
	if !ok {
		writeError(w, http.StatusNotFound, "restaurant not ranked")
		return
	}
	writeJSON(w, http.StatusOK, score)
}

type badQuery string

func (e badQuery) Error() string { return string(e) }

func parseFilter(r *http.Request) (dataset.Filter, error) {
	q := r.URL.Query()
	f := dataset.Filter{Restaurant: q.Get("restaurant")}

	var err error
	if f.MinCalories, err = optionalFloat(q.Get("min_calories")); err != nil {
		return f, badQuery("invalid min_calories")
	}
	if f.MaxCalories, err = optionalFloat(q.Get("max_calories")); err != nil {
		return f, badQuery("invalid max_calories")
	}
	return f, nil
}

func optionalFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, strconv.ErrSyntax
	}
	return &v, nil
}
