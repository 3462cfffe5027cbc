package influxdb

import (
	"strconv"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// RequestMeasurement is the measurement every API request is written to.
const RequestMeasurement = "api_requests"

// Request describes one served HTTP request.
type Request struct {
	Method string
	// Route is the matched route pattern, not the raw path, so ids do
	// not explode tag cardinality.
	Route    string
	Status   int
	Duration time.Duration
	At       time.Time
}

// requestPoint converts r to an api_requests point.
func requestPoint(r Request) *write.Point {
	at := r.At
	if at.IsZero() {
		at = time.Now()
	}
	route := r.Route
	if route == "" {
		route = "unmatched"
	}
	return write.NewPoint(
		RequestMeasurement,
		map[string]string{
			"method": r.Method,
			"route":  route,
			"status": strconv.Itoa(r.Status),
		},
		map[string]interface{}{
			"duration_ms": float64(r.Duration) / float64(time.Millisecond),
		},
		at,
	)
}

// WriteRequest queues an api_requests point. It is a no-op on a nil or
// closed client.
func (c *Client) WriteRequest(r Request) {
	if c == nil || !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(requestPoint(r))
}
