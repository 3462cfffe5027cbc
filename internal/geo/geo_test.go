package geo

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name   string
		point  *Point
		want   string
		wantOK bool
	}{
		{"longitude first", &Point{Lat: 12.5, Lng: 77.25}, "POINT(77.25 12.5)", true},
		{"negative", &Point{Lat: -33.8688, Lng: 151.2093}, "POINT(151.2093 -33.8688)", true},
		{"origin", &Point{}, "POINT(0 0)", true},
		{"nil", nil, "", false},
		{"nan", &Point{Lat: math.NaN(), Lng: 1}, "", false},
		{"inf", &Point{Lat: 1, Lng: math.Inf(-1)}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Encode(tt.point)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Encode() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   *Point
		wantOK bool
	}{
		{"plain", "POINT(77.25 12.5)", &Point{Lat: 12.5, Lng: 77.25}, true},
		{"whitespace", "POINT ( 77.25   12.5 )", &Point{Lat: 12.5, Lng: 77.25}, true},
		{"exponent", "POINT(1e2 -2.5E-1)", &Point{Lat: -0.25, Lng: 100}, true},
		{"lowercase", "point(1 2)", nil, false},
		{"one coordinate", "POINT(1)", nil, false},
		{"three coordinates", "POINT(1 2 3)", nil, false},
		{"garbage number", "POINT(1.2.3 4)", nil, false},
		{"empty", "", nil, false},
		{"trailing text", "POINT(1 2) x", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Decode(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Decode(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if !ok {
				if got != nil {
					t.Errorf("Decode(%q) = %+v, want nil", tt.input, got)
				}
				return
			}
			if *got != *tt.want {
				t.Errorf("Decode(%q) = %+v, want %+v", tt.input, *got, *tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	points := []Point{
		{Lat: 0.1, Lng: 0.2},
		{Lat: 51.507351, Lng: -0.127758},
		{Lat: -89.999999999, Lng: 179.123456789012},
		{Lat: 1e-10, Lng: -1e10},
		{Lat: math.MaxFloat64, Lng: math.SmallestNonzeroFloat64},
	}
	for _, p := range points {
		s, ok := Encode(&p)
		if !ok {
			t.Fatalf("Encode(%+v) failed", p)
		}
		back, ok := Decode(s)
		if !ok {
			t.Fatalf("Decode(%q) failed", s)
		}
		if *back != p {
			t.Errorf("round trip %+v -> %q -> %+v", p, s, *back)
		}
	}
}

func TestPointUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Point
		wantErr error
	}{
		{"short keys", `{"lat":1.5,"lng":2.5}`, Point{Lat: 1.5, Lng: 2.5}, nil},
		{"long keys", `{"latitude":-1,"longitude":3}`, Point{Lat: -1, Lng: 3}, nil},
		{"missing lng", `{"lat":1}`, Point{}, ErrIncomplete},
		{"empty object", `{}`, Point{}, ErrIncomplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Point
			err := json.Unmarshal([]byte(tt.input), &p)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Unmarshal() error = %v, want %v", err, tt.wantErr)
			}
			if p != tt.want {
				t.Errorf("Unmarshal() = %+v, want %+v", p, tt.want)
			}
		})
	}
}

func TestFromJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *Point
	}{
		{"short keys", `{"lat":10,"lng":20}`, &Point{Lat: 10, Lng: 20}},
		{"long keys", `{"latitude":10,"longitude":20}`, &Point{Lat: 10, Lng: 20}},
		{"null", `null`, nil},
		{"empty", ``, nil},
		{"incomplete", `{"lat":10}`, nil},
		{"wrong type", `"POINT(1 2)"`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromJSON([]byte(tt.input))
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("FromJSON(%s) = %v, want %v", tt.input, got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("FromJSON(%s) = %+v, want %+v", tt.input, *got, *tt.want)
			}
		})
	}
}
