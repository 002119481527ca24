package main

import (
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
)

// mqttPublisher sends readings to a broker
type mqttPublisher struct {
	client paho.Client
	topic  string
}

func newMQTTPublisher(broker, topic string) (*mqttPublisher, error) {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("segclock").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout to %s", broker)
	}
	if err := token.Error(); err != nil {
		return nil, errors.Wrap(err, "connect to broker")
	}
	return &mqttPublisher{client: client, topic: topic}, nil
}

func (p *mqttPublisher) publish(payload []byte) error {
	// QoS 0, not retained, a missed reading is replaced by the next one
	token := p.client.Publish(p.topic, 0, false, payload)
	if !token.WaitTimeout(time.Second) {
		return fmt.Errorf("publish timeout")
	}
	return errors.Wrap(token.Error(), "publish")
}

func (p *mqttPublisher) close() {
	p.client.Disconnect(1000)
}

// noPublisher drops everything, used when no broker is configured
type noPublisher struct{}

func (n *noPublisher) publish(payload []byte) error { return nil }
func (n *noPublisher) close()                       {}

// logPublisher keeps what it was given
type logPublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (l *logPublisher) publish(payload []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.payloads = append(l.payloads, append([]byte(nil), payload...))
	return nil
}

func (l *logPublisher) close() {}

func (l *logPublisher) published() [][]byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([][]byte(nil), l.payloads...)
}
