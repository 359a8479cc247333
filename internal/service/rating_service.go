package service

import (
	"context"
	"fmt"
	"time"

	"generosml/internal/models"
	"generosml/internal/repository"
)

type RatingService struct {
	ratings   *repository.RatingRepository
	movies    *repository.MovieRepository
	recommend *RecommendService
}

func NewRatingService(r *repository.RatingRepository, m *repository.MovieRepository, rec *RecommendService) *RatingService {
	return &RatingService{
		ratings:   r,
		movies:    m,
		recommend: rec,
	}
}

func (s *RatingService) AddOrUpdate(ctx context.Context, userID, movieID int, rating float64) error {
	// 1) Ver si ya existía un rating previo
	prev, err := s.ratings.GetOne(ctx, userID, movieID)
	if err != nil {
		return err
	}
	existedBefore := prev != nil

	// 2) Upsert del rating (guarda timestamp como epoch)
	if err := s.ratings.UpsertRating(ctx, userID, movieID, rating); err != nil {
		return err
	}

	// 3) Actualizar stats de la película
	movie, err := s.movies.GetByID(ctx, movieID)
	if err != nil {
		return err
	}
	if movie == nil {
		return fmt.Errorf("movie %d no encontrada", movieID)
	}

	if movie.RatingStats == nil {
		movie.RatingStats = &models.RatingStats{
			Average: 0,
			Count:   0,
		}
	}
	rs := movie.RatingStats

	// count siempre > 0 si ya hay ratings; usamos fórmulas en float64
	if !existedBefore {
		// Nuevo rating
		total := rs.Average*float64(rs.Count) + rating
		rs.Count++
		if rs.Count > 0 {
			rs.Average = total / float64(rs.Count)
		}
	} else {
		// Update de rating existente
		total := rs.Average*float64(rs.Count) - prev.Rating + rating
		if rs.Count > 0 {
			rs.Average = total / float64(rs.Count)
		}
		// rs.Count no cambia
	}

	nowStr := time.Now().Format(time.RFC3339)
	rs.LastRatedAt = nowStr
	movie.UpdatedAt = nowStr

	if err := s.movies.Update(ctx, movie); err != nil {
		return err
	}

	// 4) Resincronizar el perfil del usuario en el motor
	return s.recommend.RefreshUser(ctx, userID)
}

func (s *RatingService) GetByUser(ctx context.Context, userID, limit, offset int) ([]models.RatingDoc, error) {
	return s.ratings.GetByUser(ctx, userID, limit, offset)
}
