package repository

import (
	"context"
	"time"

	"generosml/internal/db"
	"generosml/internal/models"
	"generosml/internal/recommender"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RatingRepository struct {
	col *mongo.Collection
}

func NewRatingRepository() *RatingRepository {
	return &RatingRepository{col: db.DB().Collection("ratings")}
}

func (r *RatingRepository) UpsertRating(ctx context.Context, userID, movieID int, rating float64) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"userId": userID, "movieId": movieID},
		bson.M{"$set": bson.M{
			"rating": rating,
			// guardamos epoch (int64)
			"timestamp": time.Now().Unix(),
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

// BulkUpsert persiste un batch completo userId -> movieId -> rating
// (salida del scraper) antes de mezclarlo al motor.
func (r *RatingRepository) BulkUpsert(ctx context.Context, ratings recommender.Ratings) (int, error) {
	now := time.Now().Unix()
	total := 0
	for userID, userRatings := range ratings {
		for movieID, rating := range userRatings {
			_, err := r.col.UpdateOne(ctx,
				bson.M{"userId": userID, "movieId": movieID},
				bson.M{"$set": bson.M{"rating": rating, "timestamp": now}},
				options.Update().SetUpsert(true),
			)
			if err != nil {
				return total, err
			}
			total++
		}
	}
	return total, nil
}

// helpers de casteo seguro
func asInt(v any) int {
	switch x := v.(type) {
	case int32:
		return int(x)
	case int64:
		return int(x)
	case float64:
		return int(x)
	default:
		return 0
	}
}

func asInt64(v any) int64 {
	switch x := v.(type) {
	case int32:
		return int64(x)
	case int64:
		return x
	case float64:
		return int64(x)
	default:
		return 0
	}
}

func asFloat64(v any) float64 {
	switch x := v.(type) {
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case float64:
		return x
	default:
		return 0
	}
}

func (r *RatingRepository) GetOne(ctx context.Context, userID, movieID int) (*models.RatingDoc, error) {
	var raw bson.M
	err := r.col.FindOne(ctx, bson.M{"userId": userID, "movieId": movieID}).Decode(&raw)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &models.RatingDoc{
		UserID:    asInt(raw["userId"]),
		MovieID:   asInt(raw["movieId"]),
		Rating:    asFloat64(raw["rating"]),
		Timestamp: asInt64(raw["timestamp"]),
	}, nil
}

func (r *RatingRepository) GetByUser(ctx context.Context, userID, limit, offset int) ([]models.RatingDoc, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"userId": userID},
		options.Find().SetLimit(int64(limit)).SetSkip(int64(offset)),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.RatingDoc
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, err
		}

		rd := models.RatingDoc{
			UserID:    asInt(raw["userId"]),
			MovieID:   asInt(raw["movieId"]),
			Rating:    asFloat64(raw["rating"]),
			Timestamp: asInt64(raw["timestamp"]),
		}
		out = append(out, rd)
	}
	return out, cur.Err()
}

// GetRatingsMap devuelve los ratings de un usuario en la forma que consume
// el motor (movieId -> rating).
func (r *RatingRepository) GetRatingsMap(ctx context.Context, userID int) (map[int]float64, error) {
	docs, err := r.GetByUser(ctx, userID, 10000, 0)
	if err != nil {
		return nil, err
	}
	out := make(map[int]float64, len(docs))
	for _, d := range docs {
		out[d.MovieID] = d.Rating
	}
	return out, nil
}

// LoadAll carga todos los ratings agrupados por usuario, la carga inicial
// con la que se construye el store de preferencias al arrancar.
func (r *RatingRepository) LoadAll(ctx context.Context) (recommender.Ratings, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	ratings := make(recommender.Ratings)
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, err
		}
		userID := asInt(raw["userId"])
		if _, ok := ratings[userID]; !ok {
			ratings[userID] = make(map[int]float64)
		}
		ratings[userID][asInt(raw["movieId"])] = asFloat64(raw["rating"])
	}
	return ratings, cur.Err()
}
