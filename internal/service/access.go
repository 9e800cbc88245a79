package service

import (
	"context"
	"time"

	"github.com/danielgremista/ecoview-server/internal/db"
	"go.uber.org/zap"
)

// CardStore is the access-control persistence surface. Implemented by
// *repository.Repository; cards and the access log live in the default
// store only.
type CardStore interface {
	GetCard(ctx context.Context, uid string) (*db.AccessCard, error)
	InsertAccessLog(ctx context.Context, entry *db.AccessLogEntry) error
}

// AccessService answers RFID access checks. Every attempt is logged,
// authorized or not, so the log is a complete audit trail.
type AccessService struct {
	store  CardStore
	logger *zap.Logger
}

// NewAccessService creates the access-check service.
func NewAccessService(store CardStore, logger *zap.Logger) *AccessService {
	return &AccessService{store: store, logger: logger}
}

// Check looks up a card and records the attempt. Unknown and inactive
// cards are denied, not errors.
func (s *AccessService) Check(ctx context.Context, uid string) (bool, error) {
	card, err := s.store.GetCard(ctx, uid)
	if err != nil {
		return false, err
	}

	authorized := card != nil && card.Active

	entry := &db.AccessLogEntry{
		UID:        uid,
		Authorized: authorized,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.store.InsertAccessLog(ctx, entry); err != nil {
		return false, err
	}

	s.logger.Info("access check",
		zap.String("uid", uid),
		zap.Bool("authorized", authorized))

	return authorized, nil
}
