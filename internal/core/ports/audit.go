package ports

import (
	"context"

	"github.com/eventdesk/registration-api/internal/core/domain"
)

// AuditTrail accepts audit records for asynchronous persistence. Record
// must not block the request path.
type AuditTrail interface {
	Record(rec domain.AuditRecord)
}

// AuditRepository persists audit records.
type AuditRepository interface {
	Insert(ctx context.Context, rec *domain.AuditRecord) error
}
