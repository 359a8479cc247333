package recommender

// MovieInfo es lo mínimo que el motor necesita saber de una película.
type MovieInfo struct {
	Title  string
	Genres []string
}

// Catalog mapea movieId -> info (título + géneros).
type Catalog map[int]MovieInfo

// Ratings mapea userId -> (movieId -> rating).
type Ratings map[int]map[int]float64

// Profile mapea género -> rating promedio del usuario en ese género.
// Un género ausente significa "nunca vio nada de ese género": no es cero.
type Profile map[string]float64

// BuildProfile convierte los ratings crudos de un usuario en su perfil de
// géneros. Una película con varios géneros aporta su rating a cada uno por
// separado. Películas que no están en el catálogo se ignoran (no hay metadata).
func BuildProfile(userRatings map[int]float64, catalog Catalog) Profile {
	totals := make(map[string]float64)
	counts := make(map[string]int)

	for movieID, score := range userRatings {
		info, ok := catalog[movieID]
		if !ok {
			continue
		}
		for _, genre := range info.Genres {
			totals[genre] += score
			counts[genre]++
		}
	}

	profile := make(Profile, len(totals))
	for genre, total := range totals {
		profile[genre] = total / float64(counts[genre])
	}
	return profile
}
