// Package mqtt provides the MQTT connection pulselink publishes change
// events on.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// The service only publishes. Consumers subscribe to
// <prefix>/events/# on the broker.
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	topic := client.Topics().Event("device", "created")
//	err = client.Publish(topic, payload, 1, false)
package mqtt
