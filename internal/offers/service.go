package offers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/veilcam/veilcam/internal/common"
)

// Service manages the offer ledger. Resolution is one-way: only a pending
// offer can be accepted or rejected, and a resolved offer never goes back.
type Service struct {
	repo Repository
}

// NewService returns a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Place records a new pending offer against a capsule field and returns it.
func (s *Service) Place(ctx context.Context, capsuleID, field, label, from string, amount float64, currency string) (*Offer, error) {
	o := &Offer{
		ID:        uuid.NewString(),
		CapsuleID: capsuleID,
		Field:     field,
		Label:     label,
		Amount:    amount,
		Currency:  currency,
		From:      from,
		CreatedAt: time.Now().UnixMilli(),
		Status:    StatusPending,
	}
	if err := s.repo.Add(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// List returns all offers for a capsule, newest first.
func (s *Service) List(ctx context.Context, capsuleID string) ([]*Offer, error) {
	return s.repo.ListByCapsule(ctx, capsuleID)
}

// Accept resolves a pending offer as accepted.
func (s *Service) Accept(ctx context.Context, id string) error {
	return s.resolve(ctx, id, StatusAccepted)
}

// Reject resolves a pending offer as rejected.
func (s *Service) Reject(ctx context.Context, id string) error {
	return s.resolve(ctx, id, StatusRejected)
}

func (s *Service) resolve(ctx context.Context, id string, status Status) error {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if o.Status != StatusPending {
		return fmt.Errorf("%w: offer %s is %s", common.ErrorOfferNotPending, id, o.Status)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
