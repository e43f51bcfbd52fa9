package memory

import (
	"context"

	"real_estate/internal/domain"
)

type auditRepository struct {
	s *store
}

func (r *auditRepository) CreateLog(ctx context.Context, log *domain.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c := *log
	c.ID = int64(len(r.s.audit) + 1)
	log.ID = c.ID
	r.s.audit = append(r.s.audit, &c)
	return nil
}
