// Package messaging carries finished simulation runs over MQTT to whoever
// renders them.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/domain"
)

const qos = 1

// client is the subset of mqtt.Client used here.
type client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token
}

// Connect dials broker and blocks until the session is up.
func Connect(broker, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().AddBroker(broker).SetClientID(clientID).SetAutoReconnect(true)
	c := mqtt.NewClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", broker, token.Error())
	}
	return c, nil
}

type Publisher struct {
	client client
	topic  string
}

func NewPublisher(c client, topic string) *Publisher {
	return &Publisher{client: c, topic: topic}
}

// Publish sends run as JSON and waits for the broker ack or ctx.
func (p *Publisher) Publish(ctx context.Context, run *domain.Run) error {
	payload, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("encode run %s: %w", run.ID, err)
	}
	token := p.client.Publish(p.topic, qos, false, payload)
	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("publish run %s: %w", run.ID, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe delivers every decodable run on topic to handle. Undecodable
// payloads are logged and dropped.
func Subscribe(c client, topic string, handle func(domain.Run)) error {
	cb := func(_ mqtt.Client, msg mqtt.Message) {
		var run domain.Run
		if err := json.Unmarshal(msg.Payload(), &run); err != nil {
			log.Error().Err(err).Str("topic", msg.Topic()).Msg("decode run failed")
			return
		}
		handle(run)
	}
	if token := c.Subscribe(topic, qos, cb); token.Wait() && token.Error() != nil {
		return fmt.Errorf("subscribe %s: %w", topic, token.Error())
	}
	return nil
}
