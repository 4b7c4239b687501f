package domain

import "time"

// Audit actions recorded by the trail.
const (
	AuditTokenIssued    = "token.issued"
	AuditTokenRefreshed = "token.refreshed"
	AuditEventCreated   = "event.created"
	AuditEventUpdated   = "event.updated"
)

// AuditRecord captures who did what, when. Records are written
// asynchronously and must never block the request path.
type AuditRecord struct {
	ID       string    `json:"id" bson:"_id"`
	Actor    string    `json:"actor" bson:"actor"`
	Action   string    `json:"action" bson:"action"`
	Resource string    `json:"resource,omitempty" bson:"resource,omitempty"`
	At       time.Time `json:"at" bson:"at"`
}
