package services

import (
	"context"

	"github.com/contazen/erp_ledger_core/internal/core/domain"
)

// AuditPublisher forwards audit events to the external audit collaborator.
// Implementations must be safe for concurrent use. Publishing failures are
// the caller's to swallow: an audit miss never fails a ledger write.
type AuditPublisher interface {
	Publish(ctx context.Context, event domain.AuditEvent) error
}
