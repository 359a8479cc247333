package repository

import (
	"context"

	"generosml/internal/db"
	"generosml/internal/models"
	"generosml/internal/recommender"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MovieRepository struct {
	col *mongo.Collection
}

func NewMovieRepository() *MovieRepository {
	return &MovieRepository{col: db.DB().Collection("movies")}
}

func (r *MovieRepository) GetByID(ctx context.Context, movieID int) (*models.MovieDoc, error) {
	var m models.MovieDoc
	err := r.col.FindOne(ctx, bson.M{"movieId": movieID}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &m, err
}

func (r *MovieRepository) Search(
	ctx context.Context,
	q string,
	genre string,
	yearFrom, yearTo int,
	limit, offset int,
) ([]models.MovieDoc, error) {

	filter := bson.M{}

	if q != "" {
		filter["title"] = bson.M{"$regex": q, "$options": "i"}
	}
	if genre != "" {
		// géneros es un array, esto busca que contenga ese género
		filter["genres"] = genre
	}
	if yearFrom > 0 || yearTo > 0 {
		yearCond := bson.M{}
		if yearFrom > 0 {
			yearCond["$gte"] = yearFrom
		}
		if yearTo > 0 {
			yearCond["$lte"] = yearTo
		}
		filter["year"] = yearCond
	}

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.MovieDoc
	for cur.Next(ctx) {
		var m models.MovieDoc
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, cur.Err()
}

// Top por popularidad (count) o rating promedio
func (r *MovieRepository) Top(ctx context.Context, metric string, limit int) ([]models.MovieDoc, error) {
	sortField := "ratingStats.count" // popular
	if metric == "rating" {
		sortField = "ratingStats.average"
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.MovieDoc
	for cur.Next(ctx) {
		var m models.MovieDoc
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, cur.Err()
}

func (r *MovieRepository) Insert(ctx context.Context, m *models.MovieDoc) error {
	_, err := r.col.InsertOne(ctx, m)
	return err
}

func (r *MovieRepository) Update(ctx context.Context, m *models.MovieDoc) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"movieId": m.MovieID}, m)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MovieRepository) GetNextMovieID(ctx context.Context) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "movieId", Value: -1}})
	var m models.MovieDoc
	err := r.col.FindOne(ctx, bson.M{}, opts).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return m.MovieID + 1, nil
}

// UpsertInfo guarda una entrada de catálogo scrapeada (title + genres).
func (r *MovieRepository) UpsertInfo(ctx context.Context, movieID int, info recommender.MovieInfo, now string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"movieId": movieID},
		bson.M{
			"$set":         bson.M{"title": info.Title, "genres": info.Genres, "updatedAt": now},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// LoadCatalog carga el catálogo completo en la forma que consume el motor.
func (r *MovieRepository) LoadCatalog(ctx context.Context) (recommender.Catalog, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	catalog := make(recommender.Catalog)
	for cur.Next(ctx) {
		var m models.MovieDoc
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		catalog[m.MovieID] = recommender.MovieInfo{Title: m.Title, Genres: m.Genres}
	}
	return catalog, cur.Err()
}
