package features

import (
	"math"

	"wellness-observer/src/models"
)

const earthRadiusM = 6371000

// -----------------------------------------------------------------------------
// Location cluster assignment: named geofence bubbles from configuration.
// -----------------------------------------------------------------------------

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

// DistanceMeters is the haversine great-circle distance.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusM * c
}

// -----------------------------------------------------------------------------

// AssignLocationCluster picks the nearest cluster whose bubble radius
// contains the point; empty when outside every bubble. A cluster without a
// radius uses the default bubble.
func AssignLocationCluster(lat, lon float64, clusters []models.MLocationCluster, p *Params) string {
	bestKey := ""
	bestDist := math.Inf(1)

	for _, c := range clusters {
		dist := DistanceMeters(lat, lon, c.Lat, c.Lon)
		radius := c.RadiusMeters
		if radius <= 0 {
			radius = p.DefaultClusterRadiusM
		}
		if dist > radius {
			continue
		}
		if dist < bestDist {
			bestDist = dist
			bestKey = c.Key
		}
	}
	return bestKey
}

// -----------------------------------------------------------------------------

// ClusterOneHot emits one indicator per configured cluster. Empty when no
// cluster matched, matching the upstream record shape.
func ClusterOneHot(clusterKey string, clusters []models.MLocationCluster) map[string]float64 {
	out := map[string]float64{}
	if clusterKey == "" {
		return out
	}
	for _, c := range clusters {
		v := 0.0
		if c.Key == clusterKey {
			v = 1
		}
		out["locationClusterOneHot_"+c.Key] = v
	}
	return out
}
