package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"eventregistration/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

func (s *emailService) SendRegistrationApproved(ctx context.Context, data *domain.RegistrationEmailData) error {
	return s.send(ctx, "registration_approved", data)
}

func (s *emailService) SendRegistrationRejected(ctx context.Context, data *domain.RegistrationEmailData) error {
	return s.send(ctx, "registration_rejected", data)
}

func (s *emailService) send(ctx context.Context, templateName string, data *domain.RegistrationEmailData) error {
	if data == nil {
		return fmt.Errorf("%s email data is nil", templateName)
	}
	subject, htmlBody, textBody, err := s.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("render %s template: %w", templateName, err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("send %s email: %w", templateName, err)
	}
	s.logger.Info("email sent", "template", templateName, "registration_id", data.RegistrationID)
	return nil
}

type emailSink struct {
	emails    domain.EmailService
	userRepo  domain.UserRepository
	eventRepo domain.EventRepository
}

// NewEmailSink returns an EmailSink that resolves the registrant and event for a
// status change and sends the matching decision email.
func NewEmailSink(emails domain.EmailService, userRepo domain.UserRepository, eventRepo domain.EventRepository) domain.EmailSink {
	return &emailSink{emails: emails, userRepo: userRepo, eventRepo: eventRepo}
}

func (s *emailSink) SendDecision(ctx context.Context, change domain.StatusChange) error {
	user, err := s.userRepo.GetByID(ctx, change.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("email recipient %s: %w", change.UserID, err)
		}
		return fmt.Errorf("get user: %w", err)
	}
	event, err := s.eventRepo.GetByID(ctx, change.EventID)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}
	data := &domain.RegistrationEmailData{
		Email:          user.Email,
		FirstName:      user.Name,
		EventName:      event.Name,
		RegistrationID: change.RegistrationID,
	}
	switch change.NewStatus {
	case domain.StatusApproved:
		return s.emails.SendRegistrationApproved(ctx, data)
	case domain.StatusRejected:
		return s.emails.SendRegistrationRejected(ctx, data)
	default:
		return fmt.Errorf("no decision email for status %q", change.NewStatus)
	}
}
