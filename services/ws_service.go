package services

import (
	"checkin/dto"
	"checkin/models"
	"checkin/services/logger"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

const (
	EventCheckinCreated = "checkin.created"
	EventCheckinDeleted = "checkin.deleted"
)

// EventPublisher fans check-in changes out to live clients
type EventPublisher interface {
	Publish(event dto.CheckinEvent)
}

// MelodyPublisher broadcasts events as JSON text frames to every websocket session
type MelodyPublisher struct {
	m      *melody.Melody
	logger logger.Logger
}

func NewMelodyPublisher(m *melody.Melody, log logger.Logger) *MelodyPublisher {
	return &MelodyPublisher{m: m, logger: log}
}

func (p *MelodyPublisher) Publish(event dto.CheckinEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("encode %s event: %v", event.Type, err)
		return
	}
	if err := p.m.Broadcast(payload); err != nil {
		p.logger.Warn("broadcast %s event: %v", event.Type, err)
	}
}

func createdEvent(record *models.CheckinRecord) dto.CheckinEvent {
	return dto.CheckinEvent{Type: EventCheckinCreated, ID: record.ID, Checkin: record}
}

func deletedEvent(id string) dto.CheckinEvent {
	return dto.CheckinEvent{Type: EventCheckinDeleted, ID: id}
}

type nopPublisher struct{}

func (nopPublisher) Publish(dto.CheckinEvent) {}
