package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/consumershield/claims-core/internal/core/domain"
)

const collectionAuditLogs = "audit_logs"

// AuditRepository persists append-only audit log entries. Entries are
// only ever inserted; there is no read path in this service.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAuditLogs)}
}

func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditLogEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if _, err := r.col.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
