package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine_KnownDistances(t *testing.T) {
	// Istanbul -> Ankara, roughly 350 km.
	d := Haversine(41.0082, 28.9784, 39.9334, 32.8597)
	assert.InDelta(t, 350, d, 10)

	// London -> Paris, roughly 344 km.
	d = Haversine(51.5074, -0.1278, 48.8566, 2.3522)
	assert.InDelta(t, 344, d, 10)
}

func TestHaversine_ZeroForSamePoint(t *testing.T) {
	assert.InDelta(t, 0, Haversine(40.0, 29.0, 40.0, 29.0), 1e-9)
}

func TestHaversine_Symmetric(t *testing.T) {
	a := Haversine(41.0, 29.0, 39.9, 32.8)
	b := Haversine(39.9, 32.8, 41.0, 29.0)
	assert.InDelta(t, a, b, 1e-9)
}
