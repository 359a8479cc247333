package recommender

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUserNotFound indica que se consultó un userId que no existe en el store.
var ErrUserNotFound = errors.New("user not found in preference store")

// cantidad máxima de títulos recomendados
const maxRecommendations = 5

// cantidad de géneros "top" del receptor usados para filtrar candidatos
const topGenresCount = 2

// Engine mantiene en memoria el catálogo, los ratings crudos y el store de
// preferencias (perfil por usuario), que se construye completo al crearlo.
// Un solo RWMutex protege el store: exclusivo en Ingest/ReplaceCatalog,
// compartido en las consultas.
type Engine struct {
	mu      sync.RWMutex
	catalog Catalog
	ratings Ratings
	prefs   map[int]Profile
}

// NewEngine construye el motor y deriva el perfil de cada usuario de entrada.
func NewEngine(catalog Catalog, ratings Ratings) *Engine {
	e := &Engine{
		catalog: catalog,
		ratings: make(Ratings, len(ratings)),
		prefs:   make(map[int]Profile, len(ratings)),
	}
	for userID, userRatings := range ratings {
		e.ratings[userID] = userRatings
		e.prefs[userID] = BuildProfile(userRatings, catalog)
	}
	return e
}

// Ingest mezcla ratings nuevos al store: usuarios nuevos se agregan, usuarios
// existentes se reemplazan completos (nunca se mezclan ratings dentro de un
// mismo usuario, y nunca se borra a nadie). Los perfiles afectados se
// recalculan aquí mismo para que ratings y preferencias queden en sincronía.
func (e *Engine) Ingest(newRatings Ratings) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for userID, userRatings := range newRatings {
		e.ratings[userID] = userRatings
		e.prefs[userID] = BuildProfile(userRatings, e.catalog)
	}
}

// ReplaceCatalog reemplaza el catálogo completo y reconstruye todos los
// perfiles contra la metadata nueva.
func (e *Engine) ReplaceCatalog(catalog Catalog) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.catalog = catalog
	for userID, userRatings := range e.ratings {
		e.prefs[userID] = BuildProfile(userRatings, catalog)
	}
}

// FindSimilarUser busca al usuario con el perfil más parecido al del usuario
// dado. Empates exactos de similitud se resuelven a favor del userId mayor,
// así el resultado no depende del orden de iteración del map.
// Devuelve ok=false cuando no hay ningún otro usuario contra quien comparar.
func (e *Engine) FindSimilarUser(userID int) (matchID int, ok bool, err error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	targetPrefs, exists := e.prefs[userID]
	if !exists {
		return 0, false, fmt.Errorf("find similar user %d: %w", userID, ErrUserNotFound)
	}

	bestSimilarity := -1.0
	bestMatchID := -1

	for otherID, otherPrefs := range e.prefs {
		if otherID == userID {
			continue
		}
		similarity := CosineSimilarity(targetPrefs, otherPrefs)

		betterSimilarity := similarity > bestSimilarity
		sameSimilarity := similarity == bestSimilarity && otherID > bestMatchID

		if betterSimilarity || sameSimilarity {
			bestSimilarity = similarity
			bestMatchID = otherID
		}
	}

	if bestMatchID == -1 {
		return 0, false, nil
	}
	return bestMatchID, true, nil
}

// candidato a recomendación, todavía sin truncar
type candidate struct {
	title  string
	rating float64
}

// Recommend arma hasta 5 títulos para recipientID usando los ratings de
// recommenderID: películas que el receptor no vio, que están en el catálogo y
// que comparten al menos uno de sus dos géneros favoritos, ordenadas por
// rating del recomendador (desc) y título (asc) antes de truncar.
// Devuelve slice vacío (no error) si el receptor no tiene perfil utilizable.
func (e *Engine) Recommend(recommenderID, recipientID int) ([]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	recipientPrefs, exists := e.prefs[recipientID]
	if !exists || len(recipientPrefs) == 0 {
		// sin perfil no hay géneros con qué filtrar: resultado vacío válido
		return []string{}, nil
	}

	recommenderRatings, exists := e.ratings[recommenderID]
	if !exists {
		return nil, fmt.Errorf("recommend from user %d: %w", recommenderID, ErrUserNotFound)
	}

	topGenres := topGenresOf(recipientPrefs)
	recipientSeen := e.ratings[recipientID]

	var candidates []candidate
	for movieID, rating := range recommenderRatings {
		if _, seen := recipientSeen[movieID]; seen {
			continue
		}
		info, inCatalog := e.catalog[movieID]
		if !inCatalog {
			continue
		}
		if !genreOverlap(info.Genres, topGenres) {
			continue
		}
		candidates = append(candidates, candidate{title: info.Title, rating: rating})
	}

	// rating desc, título asc: clave compuesta explícita, nada de depender
	// del orden de inserción
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].rating != candidates[j].rating {
			return candidates[i].rating > candidates[j].rating
		}
		return candidates[i].title < candidates[j].title
	})

	titles := make([]string, 0, maxRecommendations)
	picked := make(map[string]struct{}, maxRecommendations)
	for i := 0; i < len(candidates) && i < maxRecommendations; i++ {
		title := candidates[i].title
		if _, dup := picked[title]; dup {
			continue
		}
		picked[title] = struct{}{}
		titles = append(titles, title)
	}
	return titles, nil
}

// topGenresOf devuelve los dos géneros mejor puntuados del perfil
// (rating desc, nombre asc en empates), o menos si el perfil es más chico.
func topGenresOf(prefs Profile) map[string]struct{} {
	type entry struct {
		genre  string
		rating float64
	}
	entries := make([]entry, 0, len(prefs))
	for genre, rating := range prefs {
		entries = append(entries, entry{genre: genre, rating: rating})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].rating != entries[j].rating {
			return entries[i].rating > entries[j].rating
		}
		return entries[i].genre < entries[j].genre
	})

	top := make(map[string]struct{}, topGenresCount)
	for i := 0; i < len(entries) && i < topGenresCount; i++ {
		top[entries[i].genre] = struct{}{}
	}
	return top
}

func genreOverlap(genres []string, top map[string]struct{}) bool {
	for _, g := range genres {
		if _, ok := top[g]; ok {
			return true
		}
	}
	return false
}

// Users devuelve los userIds presentes en el store (orden ascendente).
func (e *Engine) Users() []int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	ids := make([]int, 0, len(e.prefs))
	for id := range e.prefs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Profile devuelve una copia del perfil de un usuario, si existe.
func (e *Engine) Profile(userID int) (Profile, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	p, ok := e.prefs[userID]
	if !ok {
		return nil, false
	}
	out := make(Profile, len(p))
	for g, v := range p {
		out[g] = v
	}
	return out, true
}

// Stats resume el contenido del store (para el endpoint admin de ingesta).
type Stats struct {
	Users         int `json:"users"`
	Movies        int `json:"movies"`
	EmptyProfiles int `json:"emptyProfiles"`
}

func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	st := Stats{Users: len(e.prefs), Movies: len(e.catalog)}
	for _, p := range e.prefs {
		if len(p) == 0 {
			st.EmptyProfiles++
		}
	}
	return st
}
