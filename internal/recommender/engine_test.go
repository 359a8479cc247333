package recommender

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindSimilarUser(t *testing.T) {
	catalog := testCatalog()

	t.Run("unknown user is an error", func(t *testing.T) {
		e := NewEngine(catalog, Ratings{10: {1: 5.0}})
		_, _, err := e.FindSimilarUser(999)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("no other users means no match", func(t *testing.T) {
		e := NewEngine(catalog, Ratings{10: {1: 5.0}})
		_, ok, err := e.FindSimilarUser(10)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("picks highest similarity", func(t *testing.T) {
		e := NewEngine(catalog, Ratings{
			10: {1: 5.0, 2: 1.0},
			20: {1: 5.0, 2: 1.0}, // mismo perfil que 10
			30: {2: 5.0},         // solo Comedy
		})
		match, ok, err := e.FindSimilarUser(10)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 20, match)
	})

	t.Run("exact tie prefers greater user id", func(t *testing.T) {
		// tres candidatos con perfil idéntico: similitud 1.0 con el target
		// para todos, gana el id más alto sin importar el orden del map
		e := NewEngine(catalog, Ratings{
			10: {1: 4.0},
			21: {1: 4.0},
			22: {1: 4.0},
			23: {1: 4.0},
		})
		match, ok, err := e.FindSimilarUser(10)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 23, match)
	})

	t.Run("candidate with empty profile still counts as match of last resort", func(t *testing.T) {
		// 50 no tiene películas en catálogo: similitud 0 con todos, pero es
		// el único candidato
		e := NewEngine(catalog, Ratings{
			10: {1: 5.0},
			50: {999: 5.0},
		})
		match, ok, err := e.FindSimilarUser(10)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 50, match)
	})
}

func TestRecommend(t *testing.T) {
	catalog := testCatalog()

	t.Run("end to end example", func(t *testing.T) {
		e := NewEngine(catalog, Ratings{
			10: {1: 5.0, 2: 1.0},
			20: {3: 4.0},
		})

		p, ok := e.Profile(10)
		require.True(t, ok)
		assert.Equal(t, Profile{"Drama": 5.0, "Comedy": 1.0}, p)

		titles, err := e.Recommend(20, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"C"}, titles)
	})

	t.Run("recipient without profile gets empty result", func(t *testing.T) {
		e := NewEngine(catalog, Ratings{20: {3: 4.0}})
		titles, err := e.Recommend(20, 999)
		require.NoError(t, err)
		assert.Empty(t, titles)
	})

	t.Run("recipient with empty profile gets empty result", func(t *testing.T) {
		// el usuario 10 solo valoró películas fuera del catálogo
		e := NewEngine(catalog, Ratings{
			10: {999: 5.0},
			20: {3: 4.0},
		})
		titles, err := e.Recommend(20, 10)
		require.NoError(t, err)
		assert.Empty(t, titles)
	})

	t.Run("unknown recommender is an error", func(t *testing.T) {
		e := NewEngine(catalog, Ratings{10: {1: 5.0}})
		_, err := e.Recommend(999, 10)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("movies already seen by recipient are excluded", func(t *testing.T) {
		e := NewEngine(catalog, Ratings{
			10: {1: 5.0},
			20: {1: 4.0, 3: 4.0}, // 1 ya vista por el receptor
		})
		titles, err := e.Recommend(20, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"C"}, titles)
	})

	t.Run("candidates outside top two genres are excluded", func(t *testing.T) {
		wide := Catalog{
			1: {Title: "A", Genres: []string{"Drama"}},
			2: {Title: "B", Genres: []string{"Comedy"}},
			3: {Title: "C", Genres: []string{"Horror"}},
			4: {Title: "D", Genres: []string{"Horror", "Comedy"}},
		}
		e := NewEngine(wide, Ratings{
			// top dos géneros del 10: Drama (5.0) y Comedy (4.0)
			10: {1: 5.0, 2: 4.0, 3: 1.0},
			20: {4: 3.0},
		})
		titles, err := e.Recommend(20, 10)
		require.NoError(t, err)
		// D entra por Comedy aunque también sea Horror
		assert.Equal(t, []string{"D"}, titles)
	})

	t.Run("capped at five ordered by rating then title", func(t *testing.T) {
		big := Catalog{50: {Title: "Anchor", Genres: []string{"Drama"}}}
		ratings := map[int]float64{}
		for i := 1; i <= 8; i++ {
			big[i] = MovieInfo{Title: fmt.Sprintf("M%d", i), Genres: []string{"Drama"}}
			ratings[i] = float64(i)
		}

		e := NewEngine(big, Ratings{
			10: {50: 5.0}, // perfil: Drama
			20: ratings,   // 8 candidatos M1..M8
		})
		titles, err := e.Recommend(20, 10)
		require.NoError(t, err)
		// top 5 por rating desc: M8..M4
		assert.Equal(t, []string{"M8", "M7", "M6", "M5", "M4"}, titles)
	})

	t.Run("equal ratings tie break by title ascending", func(t *testing.T) {
		c := Catalog{
			1: {Title: "Zeta", Genres: []string{"Drama"}},
			2: {Title: "Alfa", Genres: []string{"Drama"}},
			3: {Title: "Beta", Genres: []string{"Drama"}},
			9: {Title: "Anchor", Genres: []string{"Drama"}},
		}
		e := NewEngine(c, Ratings{
			10: {9: 5.0},
			20: {1: 3.0, 2: 3.0, 3: 3.0},
		})
		titles, err := e.Recommend(20, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"Alfa", "Beta", "Zeta"}, titles)
	})

	t.Run("duplicate titles collapse", func(t *testing.T) {
		c := Catalog{
			1: {Title: "Same", Genres: []string{"Drama"}},
			2: {Title: "Same", Genres: []string{"Drama"}},
			9: {Title: "Anchor", Genres: []string{"Drama"}},
		}
		e := NewEngine(c, Ratings{
			10: {9: 5.0},
			20: {1: 4.0, 2: 3.0},
		})
		titles, err := e.Recommend(20, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"Same"}, titles)
	})
}

func TestIngest(t *testing.T) {
	catalog := testCatalog()

	t.Run("adds new users", func(t *testing.T) {
		e := NewEngine(catalog, Ratings{10: {1: 5.0}})
		e.Ingest(Ratings{30: {2: 4.0}})

		p, ok := e.Profile(30)
		require.True(t, ok)
		assert.Equal(t, Profile{"Comedy": 4.0}, p)
		assert.Equal(t, []int{10, 30}, e.Users())
	})

	t.Run("replaces existing user wholesale", func(t *testing.T) {
		e := NewEngine(catalog, Ratings{10: {1: 5.0, 2: 1.0}})
		e.Ingest(Ratings{10: {2: 4.0}})

		p, ok := e.Profile(10)
		require.True(t, ok)
		// el rating de Drama desapareció: reemplazo total, no merge parcial
		assert.Equal(t, Profile{"Comedy": 4.0}, p)
	})

	t.Run("never deletes untouched users", func(t *testing.T) {
		e := NewEngine(catalog, Ratings{10: {1: 5.0}, 20: {3: 4.0}})
		e.Ingest(Ratings{10: {2: 1.0}})
		assert.Equal(t, []int{10, 20}, e.Users())
	})
}

func TestReplaceCatalog(t *testing.T) {
	e := NewEngine(testCatalog(), Ratings{10: {1: 5.0}})

	e.ReplaceCatalog(Catalog{1: {Title: "A", Genres: []string{"Thriller"}}})

	p, ok := e.Profile(10)
	require.True(t, ok)
	assert.Equal(t, Profile{"Thriller": 5.0}, p)
}

func TestStats(t *testing.T) {
	e := NewEngine(testCatalog(), Ratings{
		10: {1: 5.0},
		20: {999: 5.0}, // perfil vacío
	})
	st := e.Stats()
	assert.Equal(t, 2, st.Users)
	assert.Equal(t, 3, st.Movies)
	assert.Equal(t, 1, st.EmptyProfiles)
}
