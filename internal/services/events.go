package services

// Event types published after successful mutations.
const (
	EventClientRegistered         = "client.registered"
	EventClientDeleted            = "client.deleted"
	EventPetAdded                 = "pet.added"
	EventPetWeightUpdated         = "pet.weight_updated"
	EventPetDeleted               = "pet.deleted"
	EventAppointmentScheduled     = "appointment.scheduled"
	EventAppointmentStatusUpdated = "appointment.status_updated"
)

// EventPublisher announces record changes to interested back-office consumers.
type EventPublisher interface {
	PublishEvent(eventType string, payload map[string]interface{}) error
}

func (s *RecordStore) publish(eventType string, payload map[string]interface{}) {
	if s.publisher == nil {
		s.log.WithField("event", eventType).Debug("event publisher not configured, skipping")
		return
	}
	if err := s.publisher.PublishEvent(eventType, payload); err != nil {
		s.log.WithError(err).WithField("event", eventType).Warn("failed to publish event")
		return
	}
	s.log.WithField("event", eventType).Debug("published event")
}
