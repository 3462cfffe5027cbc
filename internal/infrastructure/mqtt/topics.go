package mqtt

import "strings"

// DefaultTopicPrefix is used when no prefix is configured.
const DefaultTopicPrefix = "pulselink"

// Topics builds pulselink topic names under a common prefix.
//
//	topics := mqtt.NewTopics("pulselink")
//	topics.Event("subscriber", "updated")
//	// Returns: "pulselink/events/subscriber/updated"
type Topics struct {
	prefix string
}

// NewTopics returns a builder for prefix. Surrounding slashes are
// trimmed; an empty prefix selects DefaultTopicPrefix.
func NewTopics(prefix string) Topics {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return Topics{prefix: prefix}
}

// Prefix returns the topic root.
func (t Topics) Prefix() string {
	return t.prefix
}

// Event returns the topic for a change to one entity kind.
//
// Example: pulselink/events/device/deleted
func (t Topics) Event(entity, action string) string {
	return t.prefix + "/events/" + entity + "/" + action
}

// AllEvents returns the wildcard matching every change event.
//
// Example: pulselink/events/#
func (t Topics) AllEvents() string {
	return t.prefix + "/events/#"
}

// SystemStatus returns the retained online/offline status topic.
//
// Example: pulselink/system/status
func (t Topics) SystemStatus() string {
	return t.prefix + "/system/status"
}
