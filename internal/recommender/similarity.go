package recommender

import "math"

// CosineSimilarity calcula la similitud coseno entre dos perfiles de géneros.
// El producto punto se toma solo sobre los géneros compartidos; las magnitudes
// sobre TODOS los valores de cada perfil. Simétrica y determinística.
func CosineSimilarity(a, b Profile) float64 {
	// géneros comunes a ambos usuarios
	var dot float64
	shared := false
	for genre, va := range a {
		if vb, ok := b[genre]; ok {
			dot += va * vb
			shared = true
		}
	}
	if !shared {
		return 0.0
	}

	magA := magnitude(a)
	magB := magnitude(b)

	// con ratings en cero la magnitud puede ser 0: evitamos dividir entre cero
	if magA == 0 || magB == 0 {
		return 0.0
	}

	return dot / (magA * magB)
}

func magnitude(p Profile) float64 {
	var sum float64
	for _, v := range p {
		sum += v * v
	}
	return math.Sqrt(sum)
}
