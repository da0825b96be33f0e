package mappers

import (
	"fmt"

	"github.com/ticketdesk/ticketdesk/internal/domain/ticket"
	vo "github.com/ticketdesk/ticketdesk/internal/domain/ticket/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/persistence/models"
)

type TicketMapper interface {
	ToEntity(record *models.TicketRecord) (*ticket.Ticket, error)
	ToRecord(entity *ticket.Ticket) *models.TicketRecord
	ToEntities(records []models.TicketRecord) ([]*ticket.Ticket, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToEntity(record *models.TicketRecord) (*ticket.Ticket, error) {
	if record == nil {
		return nil, nil
	}

	status, err := vo.NewTicketStatus(record.Status)
	if err != nil {
		return nil, fmt.Errorf("ticket %s: %w", record.ID, err)
	}

	messages := make([]*ticket.Message, 0, len(record.Messages))
	for _, mr := range record.Messages {
		senderType, err := vo.NewSenderType(mr.SenderType)
		if err != nil {
			return nil, fmt.Errorf("ticket %s message %s: %w", record.ID, mr.ID, err)
		}
		msg, err := ticket.ReconstructMessage(mr.ID, mr.SenderID, mr.SenderName, senderType, mr.Message, mr.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("ticket %s: %w", record.ID, err)
		}
		messages = append(messages, msg)
	}

	entity, err := ticket.ReconstructTicket(
		record.ID,
		ticket.Submitter{
			UserID:    record.UserID,
			Name:      record.UserName,
			DiscordID: record.DiscordID,
			Email:     record.UserEmail,
		},
		vo.Reason(record.Reason),
		record.Description,
		status,
		record.CreatedAt,
		record.UpdatedAt,
		messages,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct ticket entity: %w", err)
	}
	return entity, nil
}

func (m *TicketMapperImpl) ToRecord(entity *ticket.Ticket) *models.TicketRecord {
	if entity == nil {
		return nil
	}

	msgs := entity.Messages()
	records := make([]models.MessageRecord, 0, len(msgs))
	for _, msg := range msgs {
		records = append(records, models.MessageRecord{
			ID:         msg.ID(),
			SenderID:   msg.SenderID(),
			SenderName: msg.SenderName(),
			SenderType: msg.SenderType().String(),
			Message:    msg.Text(),
			Timestamp:  msg.Timestamp(),
		})
	}

	return &models.TicketRecord{
		ID:          entity.ID(),
		UserID:      entity.UserID(),
		UserName:    entity.UserName(),
		DiscordID:   entity.DiscordID(),
		UserEmail:   entity.UserEmail(),
		Reason:      entity.Reason().String(),
		Description: entity.Description(),
		Status:      entity.Status().String(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
		Messages:    records,
	}
}

func (m *TicketMapperImpl) ToEntities(records []models.TicketRecord) ([]*ticket.Ticket, error) {
	entities := make([]*ticket.Ticket, 0, len(records))
	for i := range records {
		entity, err := m.ToEntity(&records[i])
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
