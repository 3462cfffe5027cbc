// Package device manages the devices owned by subscribers.
//
// A device is identified by its MAC identifier, which is indexed but
// not unique: lookups by MAC return the lowest id. Every device
// references one subscriber, checked before any write.
package device
