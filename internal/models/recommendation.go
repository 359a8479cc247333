package models

import "time"

// Recommendation es el historial que guardamos en Mongo cada vez que se
// genera una recomendación para un usuario.
type Recommendation struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	UserID     int       `bson:"userId" json:"userId"`         // receptor
	FromUserID int       `bson:"fromUserId" json:"fromUserId"` // recomendador
	Algo       string    `bson:"algo" json:"algo"`
	Similarity string    `bson:"similarity" json:"similarity"`
	Titles     []string  `bson:"titles" json:"titles"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// SimilarUser respuesta para /similar-user. Found=false significa que no hay
// otro usuario contra quien comparar (no es un error).
type SimilarUser struct {
	UserID        int  `json:"userId"`
	SimilarUserID int  `json:"similarUserId,omitempty"`
	Found         bool `json:"found"`
}

// ----- INGESTA (admin) -----

// IngestRatingsResult resultado de /admin/ingest/ratings.
type IngestRatingsResult struct {
	Users   int `json:"users"`
	Ratings int `json:"ratings"`
}

// IngestCatalogResult resultado de /admin/ingest/catalog.
type IngestCatalogResult struct {
	Movies int `json:"movies"`
}
