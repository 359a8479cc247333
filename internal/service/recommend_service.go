package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"generosml/internal/cache"
	"generosml/internal/models"
	"generosml/internal/recommender"
	"generosml/internal/repository"
)

// TTL del cache de recomendaciones / usuario similar (1 hora)
const cacheTTLSeconds = 60 * 60

// RecommendService es el dueño del motor en memoria: lo construye al arrancar
// desde Mongo (catálogo + ratings) y coordina cache Redis, historial y las
// ingestas que llegan después.
type RecommendService struct {
	engine  *recommender.Engine
	ratings *repository.RatingRepository
	movies  *repository.MovieRepository
	recRepo *repository.RecommendationRepository
}

func NewRecommendService(
	ctx context.Context,
	ratings *repository.RatingRepository,
	movies *repository.MovieRepository,
	recRepo *repository.RecommendationRepository,
) (*RecommendService, error) {

	catalog, err := movies.LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargando catálogo: %w", err)
	}
	allRatings, err := ratings.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargando ratings: %w", err)
	}

	log.Printf("[recommend] motor listo: %d películas, %d usuarios", len(catalog), len(allRatings))

	return &RecommendService{
		engine:  recommender.NewEngine(catalog, allRatings),
		ratings: ratings,
		movies:  movies,
		recRepo: recRepo,
	}, nil
}

func similarCacheKey(userID int) string {
	return fmt.Sprintf("sim:user:%d", userID)
}

func recommendCacheKey(fromID, toID int) string {
	return fmt.Sprintf("rec:from:%d:to:%d", fromID, toID)
}

// SimilarUser busca al usuario con gustos más parecidos. refresh saltea el
// cache Redis.
func (s *RecommendService) SimilarUser(ctx context.Context, userID int, refresh bool) (*models.SimilarUser, error) {
	var cached models.SimilarUser
	if !refresh {
		if ok, err := cache.GetJSON(ctx, similarCacheKey(userID), &cached); err == nil && ok {
			return &cached, nil
		}
	}

	matchID, found, err := s.engine.FindSimilarUser(userID)
	if err != nil {
		return nil, err
	}

	result := &models.SimilarUser{UserID: userID, Found: found}
	if found {
		result.SimilarUserID = matchID
	}

	if err := cache.SetJSON(ctx, similarCacheKey(userID), result, cacheTTLSeconds); err != nil {
		log.Printf("[recommend] error cacheando usuario similar: %v", err)
	}
	return result, nil
}

// Recommend genera hasta 5 títulos para recipientID desde los ratings de
// recommenderID, guarda el historial en Mongo y cachea el resultado.
func (s *RecommendService) Recommend(ctx context.Context, recommenderID, recipientID int, refresh bool) ([]string, error) {
	var cached []string
	if !refresh {
		if ok, err := cache.GetJSON(ctx, recommendCacheKey(recommenderID, recipientID), &cached); err == nil && ok {
			return cached, nil
		}
	}

	titles, err := s.engine.Recommend(recommenderID, recipientID)
	if err != nil {
		return nil, err
	}

	// historial en Mongo (no rompemos la respuesta si falla)
	if s.recRepo != nil && len(titles) > 0 {
		hist := &models.Recommendation{
			UserID:     recipientID,
			FromUserID: recommenderID,
			Algo:       "genre-profile",
			Similarity: "cosine",
			Titles:     titles,
			CreatedAt:  time.Now(),
		}
		if err := s.recRepo.Insert(ctx, hist); err != nil {
			log.Printf("[recommend] error guardando historial en Mongo: %v", err)
		}
	}

	if err := cache.SetJSON(ctx, recommendCacheKey(recommenderID, recipientID), titles, cacheTTLSeconds); err != nil {
		log.Printf("[recommend] error cacheando recomendación: %v", err)
	}
	return titles, nil
}

// History lista recomendaciones pasadas de un usuario.
func (s *RecommendService) History(ctx context.Context, userID int, limit int64) ([]models.Recommendation, error) {
	return s.recRepo.FindByUser(ctx, userID, limit)
}

// RefreshUser vuelve a leer TODOS los ratings de un usuario desde Mongo y los
// mezcla al motor como una entrada completa (el merge de ingesta reemplaza al
// usuario entero, nunca rating por rating).
func (s *RecommendService) RefreshUser(ctx context.Context, userID int) error {
	userRatings, err := s.ratings.GetRatingsMap(ctx, userID)
	if err != nil {
		return err
	}
	s.engine.Ingest(recommender.Ratings{userID: userRatings})

	// el perfil cambió: lo cacheado para este usuario ya no vale
	if err := cache.Del(ctx, similarCacheKey(userID)); err != nil {
		log.Printf("[recommend] error invalidando cache: %v", err)
	}
	return nil
}

// IngestRatings persiste un batch scrapeado en Mongo y lo mezcla al motor.
func (s *RecommendService) IngestRatings(ctx context.Context, newRatings recommender.Ratings) (*models.IngestRatingsResult, error) {
	total, err := s.ratings.BulkUpsert(ctx, newRatings)
	if err != nil {
		return nil, err
	}
	s.engine.Ingest(newRatings)

	keys := make([]string, 0, len(newRatings))
	for userID := range newRatings {
		keys = append(keys, similarCacheKey(userID))
	}
	if err := cache.Del(ctx, keys...); err != nil {
		log.Printf("[recommend] error invalidando cache: %v", err)
	}

	return &models.IngestRatingsResult{Users: len(newRatings), Ratings: total}, nil
}

// ReloadCatalog recarga el catálogo desde Mongo y reconstruye los perfiles.
func (s *RecommendService) ReloadCatalog(ctx context.Context) (int, error) {
	catalog, err := s.movies.LoadCatalog(ctx)
	if err != nil {
		return 0, err
	}
	s.engine.ReplaceCatalog(catalog)
	return len(catalog), nil
}

// Stats expone el resumen del store para el endpoint admin.
func (s *RecommendService) Stats() recommender.Stats {
	return s.engine.Stats()
}
