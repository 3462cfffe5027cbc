// Package geo converts between geographic points and the WKT POINT
// literal the subscriber store uses.
//
// The literal is longitude first: POINT(<lng> <lat>).
package geo

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
)

// Point is a geographic coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

var pointPattern = regexp.MustCompile(`^POINT\s*\(\s*([0-9+\-.eE]+)\s+([0-9+\-.eE]+)\s*\)$`)

// Encode renders p as POINT(<lng> <lat>). It returns false for a nil
// point or non-finite coordinates.
func Encode(p *Point) (string, bool) {
	if p == nil || !finite(p.Lat) || !finite(p.Lng) {
		return "", false
	}
	return "POINT(" + formatFloat(p.Lng) + " " + formatFloat(p.Lat) + ")", true
}

// Decode parses a POINT literal produced by Encode or by the store.
// It returns false on any structural mismatch or non-finite number.
func Decode(s string) (*Point, bool) {
	m := pointPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	lng, err := strconv.ParseFloat(m[1], 64)
	if err != nil || !finite(lng) {
		return nil, false
	}
	lat, err := strconv.ParseFloat(m[2], 64)
	if err != nil || !finite(lat) {
		return nil, false
	}
	return &Point{Lat: lat, Lng: lng}, true
}

// UnmarshalJSON accepts {"lat","lng"} or {"latitude","longitude"}.
// An incomplete pair is rejected so callers can treat it as no point.
func (p *Point) UnmarshalJSON(data []byte) error {
	var in struct {
		Lat       *float64 `json:"lat"`
		Lng       *float64 `json:"lng"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	lat, lng := in.Lat, in.Lng
	if lat == nil {
		lat = in.Latitude
	}
	if lng == nil {
		lng = in.Longitude
	}
	if lat == nil || lng == nil {
		return ErrIncomplete
	}
	p.Lat, p.Lng = *lat, *lng
	return nil
}

// FromJSON decodes a transport geo object. It returns nil for JSON
// null, a malformed object, an incomplete pair or non-finite values.
func FromJSON(raw []byte) *Point {
	if len(raw) == 0 {
		return nil
	}
	var p Point
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil
	}
	if !finite(p.Lat) || !finite(p.Lng) {
		return nil
	}
	return &p
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
