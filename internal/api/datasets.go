package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/MikeSquared-Agency/Menuscore/internal/dataset"
	"github.com/MikeSquared-Agency/Menuscore/internal/nutrition"
)

type DatasetsHandler struct {
	svc    *dataset.Service
	logger *slog.Logger
}

func NewDatasetsHandler(svc *dataset.Service, logger *slog.Logger) *DatasetsHandler {
	return &DatasetsHandler{svc: svc, logger: logger}
}

// Create imports a CSV request body as the current dataset. The optional
// source query parameter labels the import.
func (h *DatasetsHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
		return
	}
	if strings.TrimSpace(string(body)) == "" {
		writeError(w, http.StatusBadRequest, "empty csv body")
		return
	}

	source := r.URL.Query().Get("source")
	if source == "" {
		source = "upload"
	}

	ds, err := h.svc.Import(r.Context(), string(body), source)
	if err != nil {
		var pe *nutrition.ParseError
		if errors.As(err, &pe) {
			writeError(w, http.StatusUnprocessableEntity, pe.Error())
			return
		}
		h.logger.Error("dataset import failed", "source", source, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to import dataset")
		return
	}
	writeJSON(w, http.StatusCreated, ds)
}

func (h *DatasetsHandler) Current(w http.ResponseWriter, r *http.Request) {
	ds := h.svc.Current()
	if ds == nil {
		writeError(w, http.StatusNotFound, "no dataset loaded")
		return
	}
	writeJSON(w, http.StatusOK, ds)
}
