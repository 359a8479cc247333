package main

import (
	"context"
	"log"
	"os"
	"sort"
	"time"

	"generosml/internal/config"
	"generosml/internal/db"
	"generosml/internal/repository"
	"generosml/internal/scraper"
)

// Worker de adquisición: scrapea el dataset HTML (catálogo paginado +
// páginas de ratings) y deja todo en Mongo para que la API arme su motor.
func main() {
	cfg := config.Load()
	db.InitMongo(cfg)

	base := os.Getenv("DATASET_URL")
	if base == "" {
		base = cfg.DatasetURL
	}

	log.Printf("[scraper] dataset en %s", base)

	sc := scraper.New(base)
	movieRepo := repository.NewMovieRepository()
	ratingRepo := repository.NewRatingRepository()

	ctx := context.Background()

	// 1) Catálogo
	start := time.Now()
	catalog, err := sc.FetchCatalog(ctx)
	if err != nil {
		log.Fatalf("[scraper] catálogo: %v", err)
	}
	log.Printf("[scraper] catálogo: %d películas en %s", len(catalog), time.Since(start))

	now := time.Now().UTC().Format(time.RFC3339)
	for movieID, info := range catalog {
		if err := movieRepo.UpsertInfo(ctx, movieID, info, now); err != nil {
			log.Fatalf("[scraper] guardando movie %d: %v", movieID, err)
		}
	}

	// 2) Ratings de cada película del catálogo
	movieIDs := make([]int, 0, len(catalog))
	for id := range catalog {
		movieIDs = append(movieIDs, id)
	}
	sort.Ints(movieIDs)

	start = time.Now()
	ratings, err := sc.FetchRatings(ctx, movieIDs)
	if err != nil {
		log.Fatalf("[scraper] ratings: %v", err)
	}
	log.Printf("[scraper] ratings: %d usuarios en %s", len(ratings), time.Since(start))

	total, err := ratingRepo.BulkUpsert(ctx, ratings)
	if err != nil {
		log.Fatalf("[scraper] guardando ratings: %v", err)
	}

	log.Printf("[scraper] listo: %d películas, %d usuarios, %d ratings", len(catalog), len(ratings), total)
}
