package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"generosml/internal/recommender"
	"generosml/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

type RecommendHandler struct {
	svc *service.RecommendService
}

func NewRecommendHandler(s *service.RecommendService) *RecommendHandler {
	return &RecommendHandler{svc: s}
}

// @Summary Usuario con gustos más parecidos
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Param id path int true "userId"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {object} models.SimilarUser
// @Failure 404 {object} map[string]string
// @Router /users/{id}/similar-user [get]
func (h *RecommendHandler) GetSimilarUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	refresh := r.URL.Query().Get("refresh") == "true"

	h.similarUser(w, r, userID, refresh)
}

// @Summary Mi usuario más parecido
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {object} models.SimilarUser
// @Router /me/similar-user [get]
func (h *RecommendHandler) GetMySimilarUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	refresh := r.URL.Query().Get("refresh") == "true"
	h.similarUser(w, r, UserIDFromContext(r.Context()), refresh)
}

func (h *RecommendHandler) similarUser(w http.ResponseWriter, r *http.Request, userID int, refresh bool) {
	result, err := h.svc.SimilarUser(r.Context(), userID, refresh)
	if err != nil {
		if errors.Is(err, recommender.ErrUserNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(result)
}

// @Summary Recomendaciones para un usuario
// @Description Hasta 5 títulos tomados de los ratings del usuario `from`,
// @Description filtrados por los dos géneros favoritos del receptor.
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Param id path int true "userId receptor"
// @Param from query int true "userId recomendador"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {array} string
// @Failure 404 {object} map[string]string
// @Router /users/{id}/recommendations [get]
func (h *RecommendHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	recipientID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	recommenderID, _ := strconv.Atoi(r.URL.Query().Get("from"))
	refresh := r.URL.Query().Get("refresh") == "true"

	h.recommend(w, r, recommenderID, recipientID, refresh)
}

// @Summary Mis recomendaciones
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Param from query int true "userId recomendador"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {array} string
// @Router /me/recommendations [get]
func (h *RecommendHandler) GetMyRecommendations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	recommenderID, _ := strconv.Atoi(r.URL.Query().Get("from"))
	refresh := r.URL.Query().Get("refresh") == "true"

	h.recommend(w, r, recommenderID, UserIDFromContext(r.Context()), refresh)
}

func (h *RecommendHandler) recommend(w http.ResponseWriter, r *http.Request, recommenderID, recipientID int, refresh bool) {
	titles, err := h.svc.Recommend(r.Context(), recommenderID, recipientID, refresh)
	if err != nil {
		if errors.Is(err, recommender.ErrUserNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(titles)
}

// @Summary Historial de recomendaciones de un usuario
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Param id path int true "userId"
// @Param limit query int false "límite (default: 20)"
// @Success 200 {array} models.Recommendation
// @Router /users/{id}/recommendations/history [get]
func (h *RecommendHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 20
	}

	recs, err := h.svc.History(r.Context(), userID, int64(limit))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(recs)
}

// upgrader global (no afecta a swagger)
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary Recomendaciones en tiempo real (WebSocket)
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Param id path int true "userId receptor"
// @Param from query int true "userId recomendador"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/ws/recommendations [get]
func (h *RecommendHandler) GetRecommendationsWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "No se pudo abrir WebSocket", 400)
		return
	}
	defer conn.Close()

	recipientID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	recommenderID, _ := strconv.Atoi(r.URL.Query().Get("from"))
	refresh := r.URL.Query().Get("refresh") == "true"

	// Mensaje inicial
	conn.WriteJSON(map[string]any{
		"type": "start",
		"msg":  "Conexión WS abierta, iniciando cálculo…",
	})

	// Progreso por etapa del pipeline
	stages := []string{"perfil del receptor", "géneros favoritos", "filtrado de candidatos", "ranking final"}
	for i, stage := range stages {
		time.Sleep(300 * time.Millisecond)
		conn.WriteJSON(map[string]any{
			"type":  "progress",
			"stage": i + 1,
			"msg":   stage,
		})
	}

	titles, err := h.svc.Recommend(r.Context(), recommenderID, recipientID, refresh)
	if err != nil {
		conn.WriteJSON(map[string]any{
			"type":  "error",
			"error": err.Error(),
		})
		return
	}

	// Mensaje final con recomendaciones
	conn.WriteJSON(map[string]any{
		"type":        "recommendations",
		"userId":      recipientID,
		"fromUserId":  recommenderID,
		"titles":      titles,
		"generatedAt": time.Now(),
	})
}
