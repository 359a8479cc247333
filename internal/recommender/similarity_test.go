package recommender

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	t.Run("symmetric", func(t *testing.T) {
		a := Profile{"Drama": 5.0, "Comedy": 1.0}
		b := Profile{"Drama": 4.0, "Action": 3.0}
		assert.Equal(t, CosineSimilarity(a, b), CosineSimilarity(b, a))
	})

	t.Run("identical profile is 1.0", func(t *testing.T) {
		a := Profile{"Drama": 5.0, "Comedy": 1.0}
		assert.InDelta(t, 1.0, CosineSimilarity(a, a), 1e-9)
	})

	t.Run("no shared genres is exactly zero", func(t *testing.T) {
		a := Profile{"Drama": 5.0}
		b := Profile{"Comedy": 5.0}
		assert.Equal(t, 0.0, CosineSimilarity(a, b))
	})

	t.Run("empty profiles are zero", func(t *testing.T) {
		assert.Equal(t, 0.0, CosineSimilarity(Profile{}, Profile{"Drama": 5.0}))
		assert.Equal(t, 0.0, CosineSimilarity(Profile{}, Profile{}))
	})

	t.Run("zero magnitude guarded", func(t *testing.T) {
		// ratings en cero son válidos: comparten género pero magnitud 0
		a := Profile{"Drama": 0.0}
		b := Profile{"Drama": 5.0}
		assert.Equal(t, 0.0, CosineSimilarity(a, b))
	})

	t.Run("magnitude uses all genres not only shared", func(t *testing.T) {
		a := Profile{"Drama": 3.0, "Horror": 4.0} // |a| = 5
		b := Profile{"Drama": 2.0}                // |b| = 2
		// dot = 3*2 = 6, 6 / (5*2) = 0.6
		assert.InDelta(t, 0.6, CosineSimilarity(a, b), 1e-9)
	})
}
