package models

type RatingStats struct {
	Average     float64 `json:"average" bson:"average"`
	Count       int     `json:"count" bson:"count"`
	LastRatedAt string  `json:"lastRatedAt,omitempty" bson:"lastRatedAt,omitempty"`
}

type MovieDoc struct {
	MovieID     int          `json:"movieId" bson:"movieId"`
	Title       string       `json:"title" bson:"title"`
	Year        *int         `json:"year,omitempty" bson:"year,omitempty"`
	Genres      []string     `json:"genres" bson:"genres"`
	RatingStats *RatingStats `json:"ratingStats,omitempty" bson:"ratingStats,omitempty"`
	CreatedAt   string       `json:"createdAt" bson:"createdAt"`
	UpdatedAt   string       `json:"updatedAt" bson:"updatedAt"`
}

// Payload para crear una película (admin)
type MovieCreateRequest struct {
	Title  string   `json:"title"` // obligatorio
	Year   *int     `json:"year,omitempty"`
	Genres []string `json:"genres,omitempty"`
}

// Payload para actualización parcial de película
type MovieUpdateRequest struct {
	Title  *string  `json:"title,omitempty"`
	Year   *int     `json:"year,omitempty"`
	Genres []string `json:"genres,omitempty"`
}
