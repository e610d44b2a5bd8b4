package publisher

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/herbamart/network-service/internal/domain"
)

type AgentRegisteredEvent struct {
	EventID   string    `json:"event_id"`
	AgentID   uint      `json:"agent_id"`
	AgentCode string    `json:"agent_code"`
	SponsorID *uint     `json:"sponsor_id,omitempty"`
	Province  string    `json:"province"`
	Tier      string    `json:"tier"`
	CreatedAt time.Time `json:"created_at"`
}

type CommissionAccruedEvent struct {
	EventID       string `json:"event_id"`
	AgentID       uint   `json:"agent_id"`
	TransactionID uint   `json:"transaction_id"`
	Kind          string `json:"kind"`
	Level         int    `json:"level"`
	Nominal       string `json:"nominal"`
}

type WithdrawalEvent struct {
	EventID     string `json:"event_id"`
	RequestID   uint   `json:"request_id"`
	AgentID     uint   `json:"agent_id"`
	Nominal     string `json:"nominal"`
	Status      string `json:"status"`
	TransferRef string `json:"transfer_ref,omitempty"`
}

// EventPublisher serializes network events onto a single topic keyed by
// agent ID. A nil publisher silently drops events, so callers need no
// wiring in tests.
type EventPublisher struct {
	port  domain.PublisherPort
	topic string
}

func NewEventPublisher(port domain.PublisherPort, topic string) *EventPublisher {
	return &EventPublisher{port: port, topic: topic}
}

func (p *EventPublisher) publish(agentID uint, event interface{}) error {
	if p == nil || p.port == nil {
		return nil
	}
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.port.Publish(p.topic, domain.Message{
		Key:   []byte(strconv.FormatUint(uint64(agentID), 10)),
		Value: value,
	})
}

func (p *EventPublisher) PublishAgentRegistered(event AgentRegisteredEvent) error {
	event.EventID = uuid.NewString()
	return p.publish(event.AgentID, event)
}

func (p *EventPublisher) PublishCommissionAccrued(event CommissionAccruedEvent) error {
	event.EventID = uuid.NewString()
	return p.publish(event.AgentID, event)
}

func (p *EventPublisher) PublishWithdrawal(event WithdrawalEvent) error {
	event.EventID = uuid.NewString()
	return p.publish(event.AgentID, event)
}
