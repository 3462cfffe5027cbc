// Package events announces committed changes to roles, subscribers,
// users, devices and assignments on the MQTT bus.
//
// Publishing is best-effort: a failed publish is logged and the write
// that triggered it still succeeds. A Notifier built without a
// publisher drops every change.
package events

import (
	"encoding/json"
	"time"

	"github.com/nerrad567/pulselink-core/internal/infrastructure/mqtt"
)

// Entity kinds.
const (
	EntityRole       = "role"
	EntitySubscriber = "subscriber"
	EntityUser       = "user"
	EntityDevice     = "device"
	EntityAssignment = "assignment"
)

// Actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Change is the JSON body of a change event. Assignments have no id of
// their own and are identified by Key ("<user_id>/<device_id>").
type Change struct {
	Entity string    `json:"entity"`
	Action string    `json:"action"`
	ID     int64     `json:"id,omitempty"`
	Key    string    `json:"key,omitempty"`
	At     time.Time `json:"at"`
}

// Publisher sends a payload to a topic. *mqtt.Client implements it.
type Publisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// Logger is the logging surface the notifier needs.
type Logger interface {
	Warn(msg string, args ...any)
}

// Notifier publishes Change events.
//
// Thread Safety:
//   - Notify is safe for concurrent use.
type Notifier struct {
	pub    Publisher
	topics mqtt.Topics
	qos    byte
	logger Logger
	now    func() time.Time
}

// NewNotifier creates a notifier publishing under topics at qos. A nil
// pub yields a notifier that drops every change.
func NewNotifier(pub Publisher, topics mqtt.Topics, qos byte, logger Logger) *Notifier {
	return &Notifier{
		pub:    pub,
		topics: topics,
		qos:    qos,
		logger: logger,
		now:    time.Now,
	}
}

// Enabled reports whether changes are published.
func (n *Notifier) Enabled() bool {
	return n != nil && n.pub != nil
}

// Notify publishes c to <prefix>/events/<entity>/<action>. A zero At is
// stamped with the current time. It never fails the caller.
func (n *Notifier) Notify(c Change) {
	if !n.Enabled() {
		return
	}
	if c.At.IsZero() {
		c.At = n.now().UTC()
	}

	topic := n.topics.Event(c.Entity, c.Action)
	payload, err := json.Marshal(c)
	if err != nil {
		n.warn("encoding change event failed", "topic", topic, "error", err)
		return
	}
	if err := n.pub.Publish(topic, payload, n.qos, false); err != nil {
		n.warn("publishing change event failed", "topic", topic, "error", err)
	}
}

func (n *Notifier) warn(msg string, args ...any) {
	if n.logger != nil {
		n.logger.Warn(msg, args...)
	}
}

// Created announces a new row.
func (n *Notifier) Created(entity string, id int64) {
	n.Notify(Change{Entity: entity, Action: ActionCreated, ID: id})
}

// Updated announces a changed row.
func (n *Notifier) Updated(entity string, id int64) {
	n.Notify(Change{Entity: entity, Action: ActionUpdated, ID: id})
}

// Deleted announces a removed row.
func (n *Notifier) Deleted(entity string, id int64) {
	n.Notify(Change{Entity: entity, Action: ActionDeleted, ID: id})
}
