package notifications

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/labelworks-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/labelworks-backend/pkg/errors"
)

// Service dispatches lifecycle notification requests.
type Service interface {
	Dispatch(ctx context.Context, req Request) error
}

type service struct {
	repo   Repository
	mailer Mailer
	now    func() time.Time
}

// NewService builds a notification dispatcher with the required dependencies.
func NewService(repo Repository, mailer Mailer) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	if mailer == nil {
		return nil, fmt.Errorf("mailer required")
	}
	return &service{repo: repo, mailer: mailer, now: time.Now}, nil
}

// Dispatch sends the notification and records an audit row. It never
// retries; callers already claimed the order flag, so a failed send is
// surfaced and left to operators.
func (s *service) Dispatch(ctx context.Context, req Request) error {
	if !req.Kind.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown notification kind").
			WithDetails(map[string]any{"kind": req.Kind.String()})
	}

	client, err := s.repo.FindClient(ctx, req.ClientID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load client")
	}

	payload := map[string]any{
		"order_id":  req.OrderID.String(),
		"client_id": req.ClientID.String(),
	}
	if err := s.mailer.Send(ctx, req.Kind, client.ContactEmail, payload); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send notification")
	}

	record := &models.Notification{
		ClientID:  req.ClientID,
		OrderID:   req.OrderID,
		Kind:      req.Kind,
		Recipient: client.ContactEmail,
		SentAt:    s.now().UTC(),
	}
	if err := s.repo.RecordSent(ctx, record); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record notification")
	}
	return nil
}
