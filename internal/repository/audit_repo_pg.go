package repository

import (
	"context"

	"github.com/avdonin/skybooking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuditRepository interface {
	Append(ctx context.Context, entry *domain.AuditEntry) error
}

type PGAuditRepository struct {
	db *pgxpool.Pool
}

func NewAuditRepository(db *pgxpool.Pool) AuditRepository {
	return &PGAuditRepository{db: db}
}

func (r *PGAuditRepository) Append(ctx context.Context, entry *domain.AuditEntry) error {
	return executorFrom(ctx, r.db).QueryRow(ctx, `
		INSERT INTO audit_log (user_id, action, details, source_ip)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		entry.UserID, entry.Action, entry.Details, nullIfEmpty(entry.SourceIP)).
		Scan(&entry.ID, &entry.CreatedAt)
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ AuditRepository = (*PGAuditRepository)(nil)
