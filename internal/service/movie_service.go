package service

import (
	"context"
	"fmt"
	"time"

	"generosml/internal/models"
	"generosml/internal/repository"
)

type MovieService struct {
	movies    *repository.MovieRepository
	recommend *RecommendService
}

func NewMovieService(m *repository.MovieRepository, rec *RecommendService) *MovieService {
	return &MovieService{movies: m, recommend: rec}
}

func (s *MovieService) GetMovie(ctx context.Context, id int) (*models.MovieDoc, error) {
	return s.movies.GetByID(ctx, id)
}

func (s *MovieService) Search(
	ctx context.Context,
	q, genre string,
	yearFrom, yearTo, limit, offset int,
) ([]models.MovieDoc, error) {
	return s.movies.Search(ctx, q, genre, yearFrom, yearTo, limit, offset)
}

func (s *MovieService) Top(ctx context.Context, metric string, limit int) ([]models.MovieDoc, error) {
	return s.movies.Top(ctx, metric, limit)
}

// Create da de alta una película (admin) y recarga el catálogo del motor
// para que las próximas recomendaciones ya la vean.
func (s *MovieService) Create(ctx context.Context, req *models.MovieCreateRequest) (*models.MovieDoc, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("title es obligatorio")
	}

	nextID, err := s.movies.GetNextMovieID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	m := &models.MovieDoc{
		MovieID:   nextID,
		Title:     req.Title,
		Year:      req.Year,
		Genres:    req.Genres,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.movies.Insert(ctx, m); err != nil {
		return nil, err
	}

	if _, err := s.recommend.ReloadCatalog(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// UpdateMovie aplica cambios parciales y recarga el catálogo del motor.
func (s *MovieService) UpdateMovie(ctx context.Context, movieID int, req *models.MovieUpdateRequest) (*models.MovieDoc, error) {
	m, err := s.movies.GetByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, fmt.Errorf("title no puede ser vacío")
		}
		m.Title = *req.Title
	}
	if req.Year != nil {
		m.Year = req.Year
	}
	if req.Genres != nil {
		m.Genres = req.Genres
	}
	m.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := s.movies.Update(ctx, m); err != nil {
		return nil, err
	}
	if _, err := s.recommend.ReloadCatalog(ctx); err != nil {
		return nil, err
	}
	return m, nil
}
