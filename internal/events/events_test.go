package events

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nerrad567/pulselink-core/internal/infrastructure/mqtt"
)

type published struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

type fakePublisher struct {
	mu   sync.Mutex
	msgs []published
	err  error
}

func (f *fakePublisher) Publish(topic string, payload []byte, qos byte, retained bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, published{topic, payload, qos, retained})
	return f.err
}

type fakeLogger struct {
	warnings []string
}

func (l *fakeLogger) Warn(msg string, _ ...any) {
	l.warnings = append(l.warnings, msg)
}

func TestNotify(t *testing.T) {
	pub := &fakePublisher{}
	n := NewNotifier(pub, mqtt.NewTopics("pulselink"), 1, &fakeLogger{})
	at := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	n.now = func() time.Time { return at }

	n.Created(EntityDevice, 42)

	if len(pub.msgs) != 1 {
		t.Fatalf("published %d messages, want 1", len(pub.msgs))
	}
	msg := pub.msgs[0]
	if msg.topic != "pulselink/events/device/created" {
		t.Errorf("topic = %q", msg.topic)
	}
	if msg.qos != 1 || msg.retained {
		t.Errorf("qos = %d, retained = %v; want 1, false", msg.qos, msg.retained)
	}

	var got Change
	if err := json.Unmarshal(msg.payload, &got); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if got.Entity != EntityDevice || got.Action != ActionCreated || got.ID != 42 || !got.At.Equal(at) {
		t.Errorf("change = %+v, want device/created id 42 at %v", got, at)
	}
}

func TestNotify_AssignmentKey(t *testing.T) {
	pub := &fakePublisher{}
	n := NewNotifier(pub, mqtt.NewTopics("acme"), 0, nil)

	n.Notify(Change{Entity: EntityAssignment, Action: ActionDeleted, Key: "3/7"})

	if len(pub.msgs) != 1 || pub.msgs[0].topic != "acme/events/assignment/deleted" {
		t.Fatalf("published %+v", pub.msgs)
	}
	var raw map[string]any
	if err := json.Unmarshal(pub.msgs[0].payload, &raw); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if raw["key"] != "3/7" {
		t.Errorf("key = %v, want 3/7", raw["key"])
	}
	if _, ok := raw["id"]; ok {
		t.Errorf("payload %v carries an id for an assignment", raw)
	}
}

func TestNotify_PublishFailureIsLogged(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	logger := &fakeLogger{}
	n := NewNotifier(pub, mqtt.NewTopics("pulselink"), 1, logger)

	n.Deleted(EntityRole, 1)

	if len(logger.warnings) != 1 {
		t.Errorf("warnings = %v, want one", logger.warnings)
	}
}

func TestNotify_Disabled(t *testing.T) {
	var nilNotifier *Notifier
	nilNotifier.Updated(EntityUser, 1)
	if nilNotifier.Enabled() {
		t.Error("nil notifier reports Enabled")
	}

	n := NewNotifier(nil, mqtt.NewTopics(""), 1, nil)
	n.Updated(EntityUser, 1)
	if n.Enabled() {
		t.Error("notifier without publisher reports Enabled")
	}
}
