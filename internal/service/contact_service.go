package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "atelier/internal/errors"
	"atelier/internal/mail"
	"atelier/internal/model"
	"atelier/internal/repository"
)

// ContactService handles contact form submissions and their back-office
// management.
type ContactService interface {
	Submit(ctx context.Context, contact *model.Contact) (*model.Contact, error)
	List(ctx context.Context) ([]model.Contact, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Contact, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Contact, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type contactService struct {
	repo   repository.ContactRepository
	mailer mail.Mailer
	logger *zap.Logger
}

// NewContactService creates a new contact service.
func NewContactService(repo repository.ContactRepository, mailer mail.Mailer, logger *zap.Logger) ContactService {
	return &contactService{
		repo:   repo,
		mailer: mailer,
		logger: logger,
	}
}

// Submit persists the contact and then sends both notification mails, the
// studio notification and the submitter confirmation, before returning.
// The stored contact is never rolled back on a mail failure: a lead that
// nobody was notified about beats a lost one. The failure still surfaces
// as an error so the caller sees a 500.
func (s *contactService) Submit(ctx context.Context, contact *model.Contact) (*model.Contact, error) {
	contact.Status = model.ContactStatusNew

	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}

	notifyErr := s.mailer.SendContactNotification(contact)
	confirmErr := s.mailer.SendContactConfirmation(contact)
	if notifyErr != nil || confirmErr != nil {
		s.logger.Error("contact stored but notification failed",
			zap.String("contact_id", contact.ID.String()),
			zap.NamedError("notify", notifyErr),
			zap.NamedError("confirm", confirmErr),
		)
		return contact, apperrors.Internal()
	}

	return contact, nil
}

func (s *contactService) List(ctx context.Context) ([]model.Contact, error) {
	return s.repo.List(ctx)
}

func (s *contactService) Get(ctx context.Context, id uuid.UUID) (*model.Contact, error) {
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Map(err)
	}
	return contact, nil
}

// UpdateStatus sets a new status after an enum membership check. Any status
// may follow any other; LastUpdated is bumped by the save.
func (s *contactService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Contact, error) {
	if !model.ValidContactStatus(status) {
		return nil, apperrors.Validation("invalid status: " + status)
	}

	contact, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	contact.Status = status
	if err := s.repo.Update(ctx, contact); err != nil {
		return nil, apperrors.Map(err)
	}
	return contact, nil
}

func (s *contactService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
