package movement

import (
	"reflect"
	"testing"

	"github.com/volatiletech/null/v8"

	"github.com/lotola/observatoire/core/commune"
)

func movs(dests ...string) []Movement {
	ms := make([]Movement, len(dests))
	for i, d := range dests {
		ms[i] = Movement{DestinationCommune: d}
	}
	return ms
}

func TestCountByDestination(t *testing.T) {
	tests := []struct {
		name string
		movs []Movement
		want []Bucket
	}{
		{name: "empty", movs: nil, want: []Bucket{}},
		{
			name: "first-occurrence order",
			movs: movs("Bandal", "Ngaliema", "Bandal", "Limete", "Bandal"),
			want: []Bucket{{"Bandal", 3}, {"Ngaliema", 1}, {"Limete", 1}},
		},
		{
			name: "empty field goes to Unknown",
			movs: movs("Bandal", "", "Ngaliema", ""),
			want: []Bucket{{"Bandal", 1}, {UnknownBucket, 2}, {"Ngaliema", 1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CountByDestination(tt.movs)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CountByDestination() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCountBy_totalsMatchInput(t *testing.T) {
	ms := movs("a", "b", "a", "", "c", "b", "a")
	var total int
	for _, b := range CountByDestination(ms) {
		total += b.Value
	}
	if total != len(ms) {
		t.Errorf("bucket total = %d, want %d", total, len(ms))
	}
}

func TestCountByDate_preservesEncounterOrder(t *testing.T) {
	ms := []Movement{
		{Date: "2021-03-02"},
		{Date: "2021-01-15"},
		{Date: "2021-03-02"},
		{Date: "2021-02-01"},
	}
	want := []Bucket{{"2021-03-02", 2}, {"2021-01-15", 1}, {"2021-02-01", 1}}
	if got := CountByDate(ms); !reflect.DeepEqual(got, want) {
		t.Errorf("CountByDate() = %v, want %v", got, want)
	}
}

func TestTopN(t *testing.T) {
	buckets := []Bucket{{"a", 2}, {"b", 5}, {"c", 2}, {"d", 9}, {"e", 1}, {"f", 5}}

	tests := []struct {
		name string
		n    int
		want []Bucket
	}{
		{
			name: "default 5 when n is zero",
			n:    0,
			want: []Bucket{{"d", 9}, {"b", 5}, {"f", 5}, {"a", 2}, {"c", 2}},
		},
		{
			name: "truncates to n, ties keep encounter order",
			n:    3,
			want: []Bucket{{"d", 9}, {"b", 5}, {"f", 5}},
		},
		{
			name: "n larger than input returns all",
			n:    10,
			want: []Bucket{{"d", 9}, {"b", 5}, {"f", 5}, {"a", 2}, {"c", 2}, {"e", 1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TopN(buckets, tt.n); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TopN() = %v, want %v", got, tt.want)
			}
		})
	}

	// input must not be reordered
	if buckets[0].Name != "a" {
		t.Errorf("TopN() mutated its input: %v", buckets)
	}
}

func TestForecastNext(t *testing.T) {
	tests := []struct {
		name    string
		buckets []Bucket
		want    int
	}{
		{name: "empty", buckets: nil, want: 0},
		{name: "two buckets not enough", buckets: []Bucket{{"d1", 5}, {"d2", 7}}, want: 0},
		{name: "mean of last two", buckets: []Bucket{{"d1", 5}, {"d2", 7}, {"d3", 9}}, want: 8},
		{name: "rounds half up", buckets: []Bucket{{"d1", 1}, {"d2", 2}, {"d3", 3}}, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ForecastNext(tt.buckets); got != tt.want {
				t.Errorf("ForecastNext() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFilterMovements(t *testing.T) {
	ms := []Movement{
		{DestinationCommune: "Bandal", Reason: "Travail"},
		{DestinationCommune: "Bandal", Reason: "Études"},
		{DestinationCommune: "Limete", Reason: "Travail"},
	}

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{name: "empty filter returns all", filter: Filter{}, want: 3},
		{name: "by commune", filter: Filter{Commune: "Bandal"}, want: 2},
		{name: "by reason", filter: Filter{Reason: "Travail"}, want: 2},
		{name: "both criteria", filter: Filter{Commune: "Bandal", Reason: "Travail"}, want: 1},
		{name: "exact match only", filter: Filter{Commune: "bandal"}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FilterMovements(ms, tt.filter); len(got) != tt.want {
				t.Errorf("FilterMovements() returned %d movements, want %d", len(got), tt.want)
			}
		})
	}
}

func TestFluxSegments(t *testing.T) {
	communes := []commune.Commune{
		{Name: "Bandal", Latitude: null.Float64From(-4.33), Longitude: null.Float64From(15.28)},
		{Name: "Limete", Latitude: null.Float64From(-4.35), Longitude: null.Float64From(15.34)},
		{Name: "Ngaliema"}, // no coordinates
	}
	ms := []Movement{
		{OriginCommune: "Bandal", DestinationCommune: "Limete"},
		{OriginCommune: "Bandal", DestinationCommune: "Ngaliema"}, // dest lacks coords
		{OriginCommune: "Masina", DestinationCommune: "Limete"},   // unknown origin
	}

	segments := FluxSegments(ms, communes)
	if len(segments) != 1 {
		t.Fatalf("FluxSegments() returned %d segments, want 1", len(segments))
	}
	seg := segments[0]
	if seg.Origin != "Bandal" || seg.Destination != "Limete" {
		t.Errorf("unexpected segment: %+v", seg)
	}
	if seg.OriginLat != -4.33 || seg.DestinationLng != 15.34 {
		t.Errorf("unexpected coordinates: %+v", seg)
	}
}
