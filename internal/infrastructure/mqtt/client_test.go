package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/nerrad567/pulselink-core/internal/infrastructure/config"
)

// testConfig returns a valid MQTT configuration for testing.
func testConfig() config.MQTTConfig {
	return config.MQTTConfig{
		Enabled: true,
		Broker: config.MQTTBrokerConfig{
			Host:     "127.0.0.1",
			Port:     1883,
			ClientID: "pulselink-test",
		},
		QoS: 1,
		Reconnect: config.MQTTReconnectConfig{
			InitialDelay: 1,
			MaxDelay:     5,
		},
		TopicPrefix: "pulselink",
	}
}

func TestTopicBuilders(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		got    func(Topics) string
		want   string
	}{
		{"event", "pulselink", func(tp Topics) string { return tp.Event("device", "created") }, "pulselink/events/device/created"},
		{"all events", "pulselink", func(tp Topics) string { return tp.AllEvents() }, "pulselink/events/#"},
		{"status", "pulselink", func(tp Topics) string { return tp.SystemStatus() }, "pulselink/system/status"},
		{"custom prefix", "acme/prod", func(tp Topics) string { return tp.Event("role", "deleted") }, "acme/prod/events/role/deleted"},
		{"trimmed prefix", "/acme/", func(tp Topics) string { return tp.Event("user", "updated") }, "acme/events/user/updated"},
		{"empty prefix", "", func(tp Topics) string { return tp.SystemStatus() }, "pulselink/system/status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.got(NewTopics(tt.prefix)); got != tt.want {
				t.Errorf("topic = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildClientOptions(t *testing.T) {
	cfg := testConfig()
	cfg.Auth = config.MQTTAuthConfig{Username: "svc", Password: "pw"}

	opts := buildClientOptions(cfg)

	if len(opts.Servers) != 1 || opts.Servers[0].String() != "tcp://127.0.0.1:1883" {
		t.Errorf("Servers = %v, want [tcp://127.0.0.1:1883]", opts.Servers)
	}
	if opts.ClientID != "pulselink-test" {
		t.Errorf("ClientID = %q, want %q", opts.ClientID, "pulselink-test")
	}
	if opts.Username != "svc" || opts.Password != "pw" {
		t.Errorf("credentials = %q/%q, want svc/pw", opts.Username, opts.Password)
	}
	if !opts.AutoReconnect || !opts.CleanSession {
		t.Errorf("AutoReconnect = %v, CleanSession = %v; want both true", opts.AutoReconnect, opts.CleanSession)
	}
	if opts.TLSConfig != nil && opts.TLSConfig.MinVersion != 0 {
		t.Errorf("TLSConfig set without TLS enabled")
	}
}

func TestBuildClientOptions_TLS(t *testing.T) {
	cfg := testConfig()
	cfg.Broker.TLS = true
	cfg.Broker.Port = 8883

	opts := buildClientOptions(cfg)

	if opts.Servers[0].String() != "ssl://127.0.0.1:8883" {
		t.Errorf("broker = %s, want ssl://127.0.0.1:8883", opts.Servers[0])
	}
	if opts.TLSConfig == nil || opts.TLSConfig.MinVersion != tlsMinVersion {
		t.Errorf("TLSConfig = %+v, want MinVersion TLS1.2", opts.TLSConfig)
	}
	if opts.Username != "" {
		t.Errorf("Username = %q, want empty without auth", opts.Username)
	}
}

func TestConfigureLWT(t *testing.T) {
	cfg := testConfig()
	opts := buildClientOptions(cfg)
	configureLWT(opts, NewTopics("pulselink"), cfg.Broker.ClientID)

	if !opts.WillEnabled || !opts.WillRetained {
		t.Fatalf("WillEnabled = %v, WillRetained = %v; want both true", opts.WillEnabled, opts.WillRetained)
	}
	if opts.WillTopic != "pulselink/system/status" {
		t.Errorf("WillTopic = %q", opts.WillTopic)
	}

	var msg statusMessage
	if err := json.Unmarshal(opts.WillPayload, &msg); err != nil {
		t.Fatalf("will payload is not JSON: %v", err)
	}
	if msg.Status != "offline" || msg.Reason != "unexpected_disconnect" || msg.ClientID != "pulselink-test" {
		t.Errorf("will payload = %+v", msg)
	}
}

func TestStatusPayload_OmitsEmptyReason(t *testing.T) {
	var raw map[string]any
	if err := json.Unmarshal(statusPayload("c1", "online", ""), &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if _, ok := raw["reason"]; ok {
		t.Errorf("payload %v has a reason for online status", raw)
	}
	if raw["timestamp"] == "" {
		t.Error("payload has no timestamp")
	}
}

func TestPublishValidation(t *testing.T) {
	c := &Client{cfg: testConfig(), topics: NewTopics("pulselink")}

	tests := []struct {
		name    string
		topic   string
		payload []byte
		qos     byte
		want    error
	}{
		{"empty topic", "", []byte("{}"), 1, ErrInvalidTopic},
		{"invalid qos", "pulselink/events/role/created", []byte("{}"), 3, ErrInvalidQoS},
		{"payload too large", "pulselink/events/role/created", make([]byte, maxPayloadSize+1), 1, ErrPublishFailed},
		{"not connected", "pulselink/events/role/created", []byte("{}"), 1, ErrNotConnected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.Publish(tt.topic, tt.payload, tt.qos, false); !errors.Is(err, tt.want) {
				t.Errorf("Publish() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCloseNil(t *testing.T) {
	var c *Client
	if err := c.Close(); err != nil {
		t.Errorf("Close() on nil client error = %v", err)
	}
	if err := (&Client{}).Close(); err != nil {
		t.Errorf("Close() on unconnected client error = %v", err)
	}
}

func TestHealthCheck_NotConnected(t *testing.T) {
	c := &Client{}
	if err := c.HealthCheck(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("HealthCheck() error = %v, want ErrNotConnected", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.HealthCheck(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("HealthCheck() error = %v, want context.Canceled", err)
	}
}
