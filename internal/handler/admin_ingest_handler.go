package handler

import (
	"encoding/json"
	"net/http"

	"generosml/internal/service"

	"github.com/go-chi/chi/v5"
)

// AdminIngestHandler expone los endpoints de ingesta de datos (admin).
type AdminIngestHandler struct {
	svc *service.IngestService
}

// NewAdminIngestHandler crea el handler.
func NewAdminIngestHandler(svc *service.IngestService) *AdminIngestHandler {
	return &AdminIngestHandler{svc: svc}
}

// @Summary Resumen del store en memoria
// @Description Conteos de usuarios, películas y perfiles vacíos del motor.
// @Tags admin-ingest
// @Security BearerAuth
// @Produce json
// @Success 200 {object} recommender.Stats
// @Router /admin/ingest/summary [get]
// GET /admin/ingest/summary
func (h *AdminIngestHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Summary())
}

// @Summary Ingestar catálogo desde el dataset HTML
// @Description Scrapea todas las páginas del catálogo, persiste en Mongo y reconstruye los perfiles.
// @Tags admin-ingest
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.IngestCatalogResult
// @Failure 500 {string} string "error interno"
// @Router /admin/ingest/catalog [post]
// POST /admin/ingest/catalog
func (h *AdminIngestHandler) PostIngestCatalog(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.IngestCatalog(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type ingestRatingsRequest struct {
	MovieIDs []int `json:"movieIds"` // vacío = todas las del catálogo
}

// @Summary Ingestar ratings desde el dataset HTML
// @Description Scrapea las páginas de ratings y mezcla el resultado al store (merge por usuario completo).
// @Tags admin-ingest
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body ingestRatingsRequest true "películas a scrapear (vacío = todas)"
// @Success 200 {object} models.IngestRatingsResult
// @Failure 400 {string} string "body inválido"
// @Failure 500 {string} string "error interno"
// @Router /admin/ingest/ratings [post]
// POST /admin/ingest/ratings
func (h *AdminIngestHandler) PostIngestRatings(w http.ResponseWriter, r *http.Request) {
	var req ingestRatingsRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "body inválido", http.StatusBadRequest)
			return
		}
	}

	res, err := h.svc.IngestRatings(r.Context(), req.MovieIDs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// MountAdminIngestRoutes registra las rutas de ingesta bajo /admin/ingest.
func MountAdminIngestRoutes(r chi.Router, h *AdminIngestHandler) {
	r.Route("/admin/ingest", func(r chi.Router) {
		r.Get("/summary", h.GetSummary)
		r.Post("/catalog", h.PostIngestCatalog)
		r.Post("/ratings", h.PostIngestRatings)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
