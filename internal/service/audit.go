package service

import (
	"context"
	"time"

	"real_estate/internal/domain"
	"real_estate/internal/repository"
	"real_estate/pkg/logger"
)

type AuditService interface {
	LogEvent(ctx context.Context, actorRole, eventType, targetID string, payload map[string]interface{}) error
}

type auditService struct {
	auditRepo repository.AuditRepository
	log       logger.Logger
}

func NewAuditService(auditRepo repository.AuditRepository, log logger.Logger) AuditService {
	return &auditService{
		auditRepo: auditRepo,
		log:       log,
	}
}

func (s *auditService) LogEvent(ctx context.Context, actorRole, eventType, targetID string, payload map[string]interface{}) error {
	if payload == nil {
		payload = make(map[string]interface{})
	}

	auditLog := &domain.AuditLog{
		EventTime: time.Now(),
		ActorRole: actorRole,
		TargetID:  targetID,
		EventType: eventType,
		Payload:   payload,
	}

	if err := s.auditRepo.CreateLog(ctx, auditLog); err != nil {
		s.log.Warn("Failed to write audit log", "event_type", eventType, "target_id", targetID, "error", err)
		return err
	}
	return nil
}
