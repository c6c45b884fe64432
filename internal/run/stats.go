package run

import (
	"math"

	"github.com/nutriplan/nutriplan/pkg/polyline"
)

const (
	splitDistanceM = 1000.0

	// minSplitDistanceM drops trailing float-noise splits shorter than a
	// metre.
	minSplitDistanceM = 1.0

	// minPaceDistanceM is the shortest track we will quote a pace for.
	minPaceDistanceM = 50.0

	// movingSpeedFloor separates running from GPS drift while paused, in m/s.
	movingSpeedFloor = 0.5
)

// ComputeStats summarizes a recorded run in a single pass over its track
// points. Points are expected in recording order; fewer than two points
// yield zero stats.
func ComputeStats(points []TrackPoint) Stats {
	if len(points) < 2 {
		return Stats{}
	}

	duration := points[len(points)-1].OffsetSec - points[0].OffsetSec
	if duration < 0 {
		duration = 0
	}

	var (
		distance  float64
		movingSec float64
		gain      float64
		splits    []Split
	)
	splitStartTime := float64(points[0].OffsetSec)
	splitStartDist := 0.0

	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]

		segDist := haversineDistance(prev.Lat, prev.Lon, cur.Lat, cur.Lon)
		segTime := float64(cur.OffsetSec - prev.OffsetSec)
		if segTime < 0 {
			segTime = 0
		}

		if segTime > 0 && segDist/segTime >= movingSpeedFloor {
			movingSec += segTime
		}

		if prev.ElevationM != nil && cur.ElevationM != nil {
			if d := *cur.ElevationM - *prev.ElevationM; d > 0 {
				gain += d
			}
		}

		segStartDist := distance
		distance += segDist

		// Close out every kilometre boundary crossed inside this segment,
		// interpolating the crossing time linearly along the segment.
		for segDist > 0 && distance-splitStartDist >= splitDistanceM {
			boundaryDist := splitStartDist + splitDistanceM
			fraction := (boundaryDist - segStartDist) / segDist
			boundaryTime := float64(prev.OffsetSec) + fraction*segTime

			splitSec := boundaryTime - splitStartTime
			splits = append(splits, Split{
				Km:           len(splits) + 1,
				DistanceM:    splitDistanceM,
				DurationSec:  int(math.Round(splitSec)),
				PaceSecPerKm: int(math.Round(splitSec)),
			})

			splitStartDist = boundaryDist
			splitStartTime = boundaryTime
		}
	}

	if rem := distance - splitStartDist; rem >= minSplitDistanceM {
		splitSec := float64(points[len(points)-1].OffsetSec) - splitStartTime
		splits = append(splits, Split{
			Km:           len(splits) + 1,
			DistanceM:    rem,
			DurationSec:  int(math.Round(splitSec)),
			PaceSecPerKm: int(math.Round(splitSec / rem * splitDistanceM)),
		})
	}

	avgPace := 0
	if distance >= minPaceDistanceM {
		avgPace = int(math.Round(movingSec / distance * splitDistanceM))
	}

	return Stats{
		DistanceM:       distance,
		DurationSec:     duration,
		MovingSec:       int(math.Round(movingSec)),
		AvgPaceSecPerKm: avgPace,
		ElevationGainM:  gain,
		Splits:          splits,
	}
}

// FromPolyline converts an encoded-polyline track into track points, spreading
// the total run duration along the track proportionally to distance. Polyline
// tracks carry no elevation, so elevation gain will be zero.
func FromPolyline(coords []polyline.Coordinate, durationSec int) []TrackPoint {
	if len(coords) == 0 {
		return nil
	}

	points := make([]TrackPoint, len(coords))
	cumulative := make([]float64, len(coords))

	total := 0.0
	for i, c := range coords {
		if i > 0 {
			total += haversineDistance(coords[i-1].Lat, coords[i-1].Lon, c.Lat, c.Lon)
		}
		cumulative[i] = total
		points[i] = TrackPoint{Lat: c.Lat, Lon: c.Lon}
	}

	if total > 0 && durationSec > 0 {
		for i := range points {
			points[i].OffsetSec = int(math.Round(float64(durationSec) * cumulative[i] / total))
		}
	}

	return points
}

// haversineDistance calculates the distance between two points in meters
// using the Haversine formula.
func haversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000 // meters

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}
