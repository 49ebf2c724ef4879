package audit

import (
	"context"

	"github.com/avdonin/skybooking/internal/domain"
	"github.com/avdonin/skybooking/internal/repository"
	"go.uber.org/zap"
)

// Recorder appends audit entries without ever failing the caller. A lost audit
// row must not roll back a booking, so errors stop here.
type Recorder struct {
	repo repository.AuditRepository
	log  *zap.Logger
}

func NewRecorder(repo repository.AuditRepository, log *zap.Logger) *Recorder {
	return &Recorder{repo: repo, log: log}
}

func (r *Recorder) Record(ctx context.Context, userID *int64, action domain.AuditAction, details, sourceIP string) {
	if r == nil || r.repo == nil {
		return
	}
	entry := &domain.AuditEntry{
		UserID:   userID,
		Action:   action,
		Details:  details,
		SourceIP: sourceIP,
	}
	if err := r.repo.Append(ctx, entry); err != nil {
		r.log.Warn("audit append failed",
			zap.String("action", string(action)),
			zap.Error(err),
		)
	}
}
