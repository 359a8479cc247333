package recommender

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testCatalog() Catalog {
	return Catalog{
		1: {Title: "A", Genres: []string{"Drama"}},
		2: {Title: "B", Genres: []string{"Comedy"}},
		3: {Title: "C", Genres: []string{"Drama", "Comedy"}},
	}
}

func TestBuildProfile(t *testing.T) {
	catalog := testCatalog()

	t.Run("averages per genre", func(t *testing.T) {
		profile := BuildProfile(map[int]float64{1: 5.0, 2: 1.0}, catalog)
		assert.Equal(t, Profile{"Drama": 5.0, "Comedy": 1.0}, profile)
	})

	t.Run("movie with two genres contributes to both", func(t *testing.T) {
		profile := BuildProfile(map[int]float64{3: 4.0}, catalog)
		assert.Equal(t, Profile{"Drama": 4.0, "Comedy": 4.0}, profile)
	})

	t.Run("multi genre movie averaged with single genre ones", func(t *testing.T) {
		// Drama: (5 + 4) / 2, Comedy: (1 + 4) / 2
		profile := BuildProfile(map[int]float64{1: 5.0, 2: 1.0, 3: 4.0}, catalog)
		assert.InDelta(t, 4.5, profile["Drama"], 1e-9)
		assert.InDelta(t, 2.5, profile["Comedy"], 1e-9)
	})

	t.Run("movies missing from catalog are skipped", func(t *testing.T) {
		profile := BuildProfile(map[int]float64{99: 5.0, 1: 3.0}, catalog)
		assert.Equal(t, Profile{"Drama": 3.0}, profile)
	})

	t.Run("no rated movie in catalog yields empty profile", func(t *testing.T) {
		profile := BuildProfile(map[int]float64{99: 5.0}, catalog)
		assert.NotNil(t, profile)
		assert.Empty(t, profile)
	})

	t.Run("no ratings yields empty profile", func(t *testing.T) {
		profile := BuildProfile(nil, catalog)
		assert.Empty(t, profile)
	})
}
