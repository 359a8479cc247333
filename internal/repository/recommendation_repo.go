package repository

import (
	"context"
	"time"

	"generosml/internal/db"
	"generosml/internal/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RecommendationRepository struct {
	col *mongo.Collection
}

func NewRecommendationRepository() *RecommendationRepository {
	return &RecommendationRepository{
		col: db.DB().Collection("recommendations"),
	}
}

func (r *RecommendationRepository) Insert(ctx context.Context, rec *models.Recommendation) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := r.col.InsertOne(ctx, rec)
	return err
}

// FindByUser lista el historial de recomendaciones recibidas por un usuario.
func (r *RecommendationRepository) FindByUser(ctx context.Context, userID int, limit int64) ([]models.Recommendation, error) {
	opts := options.Find().SetLimit(limit)
	cur, err := r.col.Find(ctx, map[string]any{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Recommendation
	for cur.Next(ctx) {
		var rec models.Recommendation
		if err := cur.Decode(&rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, cur.Err()
}
