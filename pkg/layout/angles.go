package layout

import "math"

const twoPi = 2 * math.Pi

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// normalizeAngle maps an angle onto [0, 2π).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	return a
}

// angleContains reports whether the half-open interval [start, start+rng)
// contains angle a, where start and a are in [0, 2π). Intervals whose end
// extends past 2π wrap: containment then holds for a >= start or a < the
// wrapped end.
func angleContains(start, rng, a float64) bool {
	if rng <= 0 {
		return false
	}
	if rng >= twoPi {
		return true
	}
	end := start + rng
	if end <= twoPi {
		return a >= start && a < end
	}
	return a >= start || a < end-twoPi
}

// arcOverlap returns the length of the intersection of two angular
// intervals on the circle. Each interval is split at the 2π seam into at
// most two linear segments before intersecting.
func arcOverlap(s1, r1, s2, r2 float64) float64 {
	var total float64
	for _, a := range arcSegments(s1, r1) {
		for _, b := range arcSegments(s2, r2) {
			lo := math.Max(a[0], b[0])
			hi := math.Min(a[1], b[1])
			if hi > lo {
				total += hi - lo
			}
		}
	}
	return total
}

// arcSegments splits [start, start+rng) into linear [lo, hi] segments
// within [0, 2π).
func arcSegments(start, rng float64) [][2]float64 {
	if rng <= 0 {
		return nil
	}
	if rng > twoPi {
		rng = twoPi
	}
	start = normalizeAngle(start)
	end := start + rng
	if end <= twoPi {
		return [][2]float64{{start, end}}
	}
	return [][2]float64{{start, twoPi}, {0, end - twoPi}}
}
