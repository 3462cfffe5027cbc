// Package influxdb records per-request metrics in InfluxDB.
//
// It wraps the official influxdb-client-go v2 library: one connection,
// a non-blocking batched write API, and a health check.
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.WriteRequest(influxdb.Request{
//	    Method:   "GET",
//	    Route:    "/api/devices/id/{id}",
//	    Status:   200,
//	    Duration: 3 * time.Millisecond,
//	})
//
// # Error Handling
//
// Writes never block the caller. Batch errors are delivered to the
// callback set with SetOnError.
package influxdb
