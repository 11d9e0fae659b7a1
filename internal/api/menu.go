package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/Menuscore/internal/dataset"
)

type MenuHandler struct {
	svc *dataset.Service
}

func NewMenuHandler(svc *dataset.Service) *MenuHandler {
	return &MenuHandler{svc: svc}
}

func (h *MenuHandler) Restaurants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Restaurants())
}

func (h *MenuHandler) Items(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	items := h.svc.ItemsByRestaurant(name)
	if len(items) == 0 {
		writeError(w, http.StatusNotFound, "restaurant not found")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *MenuHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Stats())
}
