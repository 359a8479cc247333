package service

import (
	"context"
	"log"
	"time"

	"generosml/internal/models"
	"generosml/internal/recommender"
	"generosml/internal/repository"
	"generosml/internal/scraper"
)

// IngestService orquesta la adquisición de datos nuevos: scrapea el dataset
// HTML, persiste en Mongo y mezcla al motor en memoria.
type IngestService struct {
	scraper   *scraper.Client
	movies    *repository.MovieRepository
	recommend *RecommendService
}

func NewIngestService(sc *scraper.Client, movies *repository.MovieRepository, rec *RecommendService) *IngestService {
	return &IngestService{
		scraper:   sc,
		movies:    movies,
		recommend: rec,
	}
}

// Summary devuelve el estado del store en memoria.
func (s *IngestService) Summary() recommender.Stats {
	return s.recommend.Stats()
}

// IngestCatalog scrapea el catálogo completo, lo upsertea en Mongo y
// reemplaza el catálogo del motor (reconstruye todos los perfiles).
func (s *IngestService) IngestCatalog(ctx context.Context) (*models.IngestCatalogResult, error) {
	start := time.Now()

	catalog, err := s.scraper.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	log.Printf("[ingest] catálogo scrapeado: %d películas en %s", len(catalog), time.Since(start))

	now := time.Now().UTC().Format(time.RFC3339)
	for movieID, info := range catalog {
		if err := s.movies.UpsertInfo(ctx, movieID, info, now); err != nil {
			return nil, err
		}
	}

	// recargamos desde Mongo, no desde lo scrapeado: así las películas
	// creadas a mano por un admin no se pierden
	total, err := s.recommend.ReloadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return &models.IngestCatalogResult{Movies: total}, nil
}

// IngestRatings scrapea las páginas de ratings de las películas dadas (todas
// las del catálogo si movieIDs viene vacío) y mezcla el resultado al store:
// usuarios nuevos se agregan, usuarios repetidos se reemplazan completos.
func (s *IngestService) IngestRatings(ctx context.Context, movieIDs []int) (*models.IngestRatingsResult, error) {
	if len(movieIDs) == 0 {
		catalog, err := s.movies.LoadCatalog(ctx)
		if err != nil {
			return nil, err
		}
		for id := range catalog {
			movieIDs = append(movieIDs, id)
		}
	}

	start := time.Now()
	newRatings, err := s.scraper.FetchRatings(ctx, movieIDs)
	if err != nil {
		return nil, err
	}
	log.Printf("[ingest] ratings scrapeados: %d usuarios en %s", len(newRatings), time.Since(start))

	return s.recommend.IngestRatings(ctx, newRatings)
}
