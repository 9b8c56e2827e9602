package movement

import (
	"math"
	"sort"

	"github.com/lotola/observatoire/core/commune"
)

// UnknownBucket is the tally key for records whose field is empty.
const UnknownBucket = "Unknown"

// Bucket is one chart entry: a label and its occurrence count.
type Bucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

func countBy(movs []Movement, key func(Movement) string) []Bucket {
	idx := make(map[string]int, len(movs))
	buckets := make([]Bucket, 0, len(movs))
	for _, m := range movs {
		k := key(m)
		if k == "" {
			k = UnknownBucket
		}
		if i, ok := idx[k]; ok {
			buckets[i].Value++
		} else {
			idx[k] = len(buckets)
			buckets = append(buckets, Bucket{Name: k, Value: 1})
		}
	}
	return buckets
}

// CountByDestination tallies movements per destination commune, buckets in
// first-occurrence order.
func CountByDestination(movs []Movement) []Bucket {
	return countBy(movs, func(m Movement) string { return m.DestinationCommune })
}

// CountByReason tallies movements per reason, buckets in first-occurrence order.
func CountByReason(movs []Movement) []Bucket {
	return countBy(movs, func(m Movement) string { return m.Reason })
}

// CountByDate tallies movements per date string. Buckets follow first-occurrence
// order, not calendar order; callers wanting a chronological series must sort.
func CountByDate(movs []Movement) []Bucket {
	return countBy(movs, func(m Movement) string { return m.Date })
}

// TopN sorts buckets by count descending — ties keep first-occurrence order —
// and truncates to n entries (default 5).
func TopN(buckets []Bucket, n int) []Bucket {
	if n <= 0 {
		n = 5
	}
	ranked := make([]Bucket, len(buckets))
	copy(ranked, buckets)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Value > ranked[j].Value })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// ForecastNext is the naive two-point trailing average used as the predictive
// indicator: 0 with fewer than 3 date buckets, otherwise the rounded mean of
// the last two buckets' counts.
func ForecastNext(dateBuckets []Bucket) int {
	if len(dateBuckets) < 3 {
		return 0
	}
	last := dateBuckets[len(dateBuckets)-1].Value
	prev := dateBuckets[len(dateBuckets)-2].Value
	return int(math.Round(float64(last+prev) / 2))
}

// Filter restricts movements to exact matches on each provided criterion.
type Filter struct {
	Commune string `query:"commune"`
	Reason  string `query:"reason"`
}

func (f Filter) IsEmpty() bool {
	return f.Commune == "" && f.Reason == ""
}

func (f Filter) Match(m Movement) bool {
	if f.Commune != "" && m.DestinationCommune != f.Commune {
		return false
	}
	if f.Reason != "" && m.Reason != f.Reason {
		return false
	}
	return true
}

// FilterMovements returns the movements matching f, preserving input order.
func FilterMovements(movs []Movement, f Filter) []Movement {
	if f.IsEmpty() {
		return movs
	}
	matched := make([]Movement, 0, len(movs))
	for _, m := range movs {
		if f.Match(m) {
			matched = append(matched, m)
		}
	}
	return matched
}

// Segment is one origin → destination line on the flux map.
type Segment struct {
	Origin         string  `json:"origin"`
	Destination    string  `json:"destination"`
	OriginLat      float64 `json:"origin_lat"`
	OriginLng      float64 `json:"origin_lng"`
	DestinationLat float64 `json:"destination_lat"`
	DestinationLng float64 `json:"destination_lng"`
}

// FluxSegments joins movements to commune coordinates by name. Movements whose
// origin or destination is unknown or lacks coordinates produce no segment.
func FluxSegments(movs []Movement, communes []commune.Commune) []Segment {
	byName := make(map[string]commune.Commune, len(communes))
	for _, c := range communes {
		byName[c.Name] = c
	}

	segments := make([]Segment, 0, len(movs))
	for _, m := range movs {
		origin, ok := byName[m.OriginCommune]
		if !ok || !origin.HasCoordinates() {
			continue
		}
		dest, ok := byName[m.DestinationCommune]
		if !ok || !dest.HasCoordinates() {
			continue
		}
		segments = append(segments, Segment{
			Origin:         origin.Name,
			Destination:    dest.Name,
			OriginLat:      origin.Latitude.Float64,
			OriginLng:      origin.Longitude.Float64,
			DestinationLat: dest.Latitude.Float64,
			DestinationLng: dest.Longitude.Float64,
		})
	}
	return segments
}
