// Package events publishes machine activity to NATS. Publishing is
// best-effort: the service treats a nil publisher as disabled and a
// publish failure never fails the request that produced the event.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// Subjects for machine events.
const (
	SubjectBrewed = "machine.brewed"
	SubjectFilled = "machine.filled"
)

// Event is the payload published for every completed mutation.
type Event struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Drink     string `json:"drink,omitempty"`
	Container string `json:"container,omitempty"`
	Amount    int    `json:"amount,omitempty"`
	Unit      string `json:"unit,omitempty"`
	Time      int64  `json:"time"`
}

type Publisher struct {
	nc *nats.Conn
}

func NewPublisher(url string) (*Publisher, error) {
	opts := []nats.Option{
		nats.Name("brewd"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
	}
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, err
	}
	return &Publisher{nc: nc}, nil
}

// Brewed publishes a brew completion event.
func (p *Publisher) Brewed(drink string) error {
	return p.publish(SubjectBrewed, Event{Kind: "brewed", Drink: drink})
}

// Filled publishes a container refill event.
func (p *Publisher) Filled(container string, amount int, unit string) error {
	return p.publish(SubjectFilled, Event{Kind: "filled", Container: container, Amount: amount, Unit: unit})
}

func (p *Publisher) publish(subject string, ev Event) error {
	if p == nil {
		return nil
	}
	if p.nc == nil || p.nc.IsClosed() {
		return fmt.Errorf("nats not connected")
	}
	ev.ID = uuid.NewString()
	ev.Time = time.Now().Unix()
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.nc.Publish(subject, payload)
}

func (p *Publisher) Close() {
	if p == nil || p.nc == nil {
		return
	}
	p.nc.Drain()
	p.nc.Close()
}
