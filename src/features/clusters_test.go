package features

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wellness-observer/src/models"
)

// -----------------------------------------------------------------------------

func testClusters() []models.MLocationCluster {
	return []models.MLocationCluster{
		{Key: "home", Lat: 40.7440, Lon: -74.0324, RadiusMeters: 150},
		{Key: "campus", Lat: 40.7448, Lon: -74.0256, RadiusMeters: 300},
		{Key: "gym", Lat: 40.7401, Lon: -74.0290, RadiusMeters: 120},
	}
}

// -----------------------------------------------------------------------------

func TestDistanceMeters(t *testing.T) {
	// One degree of longitude at the equator is ~111.2 km.
	d := DistanceMeters(0, 0, 0, 1)
	assert.InDelta(t, 111195, d, 100)

	assert.Equal(t, 0.0, DistanceMeters(40.7440, -74.0324, 40.7440, -74.0324))
}

// -----------------------------------------------------------------------------

func TestAssignLocationCluster(t *testing.T) {
	p := DefaultParams()
	clusters := testClusters()

	// Dead center of home.
	assert.Equal(t, "home", AssignLocationCluster(40.7440, -74.0324, clusters, &p))

	// Far from every bubble.
	assert.Equal(t, "", AssignLocationCluster(40.80, -74.10, clusters, &p))
}

func TestAssignLocationClusterPicksNearest(t *testing.T) {
	p := DefaultParams()

	// Two overlapping bubbles; the point sits inside both but closer to b.
	clusters := []models.MLocationCluster{
		{Key: "a", Lat: 40.7440, Lon: -74.0324, RadiusMeters: 500},
		{Key: "b", Lat: 40.7445, Lon: -74.0324, RadiusMeters: 500},
	}
	assert.Equal(t, "b", AssignLocationCluster(40.7444, -74.0324, clusters, &p))
}

func TestAssignLocationClusterDefaultRadius(t *testing.T) {
	p := DefaultParams()
	clusters := []models.MLocationCluster{{Key: "home", Lat: 0, Lon: 0}}

	// ~111 m east, inside the 200 m default bubble.
	assert.Equal(t, "home", AssignLocationCluster(0, 0.001, clusters, &p))
	// ~333 m east, outside it.
	assert.Equal(t, "", AssignLocationCluster(0, 0.003, clusters, &p))
}

// -----------------------------------------------------------------------------

func TestClusterOneHot(t *testing.T) {
	clusters := testClusters()

	oneHot := ClusterOneHot("campus", clusters)
	assert.Equal(t, map[string]float64{
		"locationClusterOneHot_home":   0,
		"locationClusterOneHot_campus": 1,
		"locationClusterOneHot_gym":    0,
	}, oneHot)

	assert.Empty(t, ClusterOneHot("", clusters))
}
