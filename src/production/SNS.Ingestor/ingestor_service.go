package snsingestor

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	config "gitlab.com/maplesense1/mpt.sensor_gateway/src/production/SNS.Config"
	logger "gitlab.com/maplesense1/mpt.sensor_gateway/src/production/SNS.Logger"
	snsmodels "gitlab.com/maplesense1/mpt.sensor_gateway/src/production/SNS.Models"
	store "gitlab.com/maplesense1/mpt.sensor_gateway/src/production/SNS.Store"
)

// Bridge subscribes to an MQTT topic and feeds sensor readings into the
// same history as the HTTP ingest path. Payloads get the same
// permissive treatment: missing or garbage temp/hum fields coerce to 0.
type Bridge struct {
	cfg        *config.Config
	history    *store.History
	mqttClient mqtt.Client
	logger     *logger.Logger
}

// New creates a bridge over the shared history
func New(cfg *config.Config, history *store.History, logger *logger.Logger) *Bridge {
	return &Bridge{
		cfg:     cfg,
		history: history,
		logger:  logger.WithComponent("mqtt-bridge"),
	}
}

// Start connects to the broker and subscribes. The client reconnects
// and resubscribes on its own after connection loss.
func (b *Bridge) Start() error {
	opts := mqtt.NewClientOptions().
		AddBroker(b.cfg.GetMQTTBrokerURL()).
		SetClientID(b.cfg.MQTT.ClientID).
		SetOrderMatters(false).
		SetKeepAlive(b.cfg.MQTT.KeepAlive).
		SetPingTimeout(b.cfg.MQTT.PingTimeout).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetCleanSession(false)

	if b.cfg.MQTT.BrokerUser != "" {
		opts.SetUsername(b.cfg.MQTT.BrokerUser)
		opts.SetPassword(b.cfg.MQTT.BrokerPass)
	}

	if b.cfg.MQTT.UseTLS {
		tlsCfg, err := b.tlsConfig(b.cfg.MQTT.CACertPath)
		if err != nil {
			return err
		}
		opts.SetTLSConfig(tlsCfg)
	}

	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		b.logger.ErrorWithError(err, "MQTT connection lost")
	}
	opts.OnConnect = func(c mqtt.Client) {
		topic := b.cfg.MQTT.Topic
		if b.cfg.MQTT.SharedGroup != "" {
			topic = fmt.Sprintf("$share/%s/%s", b.cfg.MQTT.SharedGroup, b.cfg.MQTT.Topic)
		}
		b.logger.Logger.Info().Str("topic", topic).Msg("MQTT connected, subscribing to topic")
		if token := c.Subscribe(topic, 1, b.onMessage); token.Wait() && token.Error() != nil {
			b.logger.Logger.Error().Err(token.Error()).Str("topic", topic).Msg("Failed to subscribe to MQTT topic")
		}
	}

	b.mqttClient = mqtt.NewClient(opts)
	if tk := b.mqttClient.Connect(); tk.Wait() && tk.Error() != nil {
		return tk.Error()
	}

	return nil
}

// Stop disconnects from the broker
func (b *Bridge) Stop() {
	if b.mqttClient != nil && b.mqttClient.IsConnected() {
		b.mqttClient.Disconnect(500)
	}
}

// IsConnected reports whether the broker connection is up
func (b *Bridge) IsConnected() bool {
	return b.mqttClient != nil && b.mqttClient.IsConnected()
}

func (b *Bridge) onMessage(_ mqtt.Client, m mqtt.Message) {
	b.logger.Logger.Debug().Str("topic", m.Topic()).Str("payload", string(m.Payload())).Msg("Received MQTT message")

	reading, count := b.history.Insert(ReadingFromPayload(m.Topic(), m.Payload(), time.Now().UTC()))

	b.logger.Logger.Debug().
		Int64("id", reading.ID).
		Int("history_len", count).
		Msg("MQTT reading stored")
}

// ReadingFromPayload builds a reading from an MQTT message body. The
// body is expected to be a JSON object carrying temp/hum; anything else
// coerces to zeros, matching the HTTP ingest policy. A timestamp field
// in the payload becomes the generation timestamp when it parses as
// RFC3339.
func ReadingFromPayload(topic string, body []byte, receivedAt time.Time) snsmodels.Reading {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		payload = nil
	}

	generated := receivedAt
	if raw, ok := payload["timestamp"].(string); ok {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			generated = ts.UTC()
		}
	}

	return snsmodels.Reading{
		Temperature: snsmodels.NumberFromValue(payload["temp"]),
		Humidity:    snsmodels.NumberFromValue(payload["hum"]),
		Timestamp:   generated,
		ReceivedAt:  receivedAt,
		ClientID:    topic,
		Source:      snsmodels.SourceMQTT,
	}
}

func (b *Bridge) tlsConfig(caPath string) (*tls.Config, error) {
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if caPath == "" {
		return cfg, nil
	}

	pem, err := os.ReadFile(caPath)
	if err != nil {
		return nil, fmt.Errorf("reading CA certificate: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no certificates found in %s", caPath)
	}
	cfg.RootCAs = pool
	return cfg, nil
}
