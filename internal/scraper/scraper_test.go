package scraper

import (
	"strings"
	"testing"

	"generosml/internal/recommender"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogPage = `<html><body>
<table>
<tr><th>ID</th><th>Title</th><th>Year</th><th>Genres</th></tr>
<tr><td>1</td><td>The Matrix (1999)</td><td>1999</td><td>Action, Sci-Fi</td></tr>
<tr><td>2</td><td> Amelie (2001) </td><td>2001</td><td>Comedy</td></tr>
<tr><td>x</td><td>Broken Row</td><td></td><td></td></tr>
</table>
<a href="index.html">inicio</a>
<a href="page_2.html">siguiente</a>
</body></html>`

const lastCatalogPage = `<html><body>
<table>
<tr><th>ID</th><th>Title</th><th>Year</th><th>Genres</th></tr>
<tr><td>3</td><td>Heat (1995)</td><td>1995</td><td>Crime, Drama</td></tr>
</table>
<a href="index.html">inicio</a>
<a href="">fin</a>
</body></html>`

const ratingsPage = `<html><body>
<table>
<tr><th>User</th><th>Rating</th></tr>
<tr><td>10</td><td>4.5</td></tr>
<tr><td>20</td><td>3</td></tr>
<tr><td>bad</td><td>1.0</td></tr>
</table>
</body></html>`

func TestParseCatalogPage(t *testing.T) {
	catalog := make(recommender.Catalog)

	next, err := parseCatalogPage(strings.NewReader(catalogPage), catalog)
	require.NoError(t, err)
	assert.Equal(t, "page_2.html", next)

	assert.Equal(t, recommender.MovieInfo{
		Title:  "The Matrix",
		Genres: []string{"Action", "Sci-Fi"},
	}, catalog[1])
	assert.Equal(t, recommender.MovieInfo{
		Title:  "Amelie",
		Genres: []string{"Comedy"},
	}, catalog[2])
	// la fila rota no entra
	assert.Len(t, catalog, 2)

	next, err = parseCatalogPage(strings.NewReader(lastCatalogPage), catalog)
	require.NoError(t, err)
	assert.Empty(t, next)
	assert.Len(t, catalog, 3)
}

func TestParseRatingsPage(t *testing.T) {
	ratings := make(recommender.Ratings)

	err := parseRatingsPage(strings.NewReader(ratingsPage), 7, ratings)
	require.NoError(t, err)

	assert.Equal(t, recommender.Ratings{
		10: {7: 4.5},
		20: {7: 3.0},
	}, ratings)

	// segunda página de otra película se mezcla sobre los mismos usuarios
	err = parseRatingsPage(strings.NewReader(ratingsPage), 8, ratings)
	require.NoError(t, err)
	assert.Equal(t, map[int]float64{7: 4.5, 8: 4.5}, ratings[10])
}

func TestCleanTitle(t *testing.T) {
	assert.Equal(t, "The Matrix", CleanTitle("The Matrix (1999)"))
	assert.Equal(t, "Sin año", CleanTitle("Sin año"))
	// se corta en el último " (" aunque haya texto después, igual que la fuente
	assert.Equal(t, "Shaft", CleanTitle("Shaft (2000 remake)"))
	assert.Equal(t, "Crouching Tiger, Hidden Dragon", CleanTitle(" Crouching Tiger, Hidden Dragon (2000) "))
}

func TestSplitGenres(t *testing.T) {
	assert.Equal(t, []string{"Action", "Sci-Fi"}, SplitGenres(" Action , Sci-Fi "))
	assert.Equal(t, []string{"Drama"}, SplitGenres("Drama"))
	assert.Empty(t, SplitGenres("  "))
}
