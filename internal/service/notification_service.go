package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/phoenix-adventures/trip-service/internal/events"
)

// NotificationService turns domain events into transactional email.
type NotificationService struct {
	mailer        Mailer
	logger        *zap.Logger
	paymentNumber string
	sendTimeout   time.Duration
}

// NewNotificationService builds the service.
func NewNotificationService(mailer Mailer, logger *zap.Logger, paymentNumber string) *NotificationService {
	return &NotificationService{
		mailer:        mailer,
		logger:        logger,
		paymentNumber: paymentNumber,
		sendTimeout:   15 * time.Second,
	}
}

// Register subscribes the notification handlers on the dispatcher.
func (s *NotificationService) Register(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventUserSignedUp, s.handleUserSignedUp)
	dispatcher.Subscribe(events.EventPasswordResetRequested, s.handlePasswordReset)
	dispatcher.Subscribe(events.EventTripApplied, s.handleTripApplied)
	dispatcher.Subscribe(events.EventCustomizedTripPriced, s.handleCustomizedTripPriced)
}

func (s *NotificationService) handleUserSignedUp(ctx context.Context, event events.Event) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nWelcome to Phoenix Adventures! Your account is ready.\n\nHappy travels,\nThe Phoenix Adventures team",
		event.Recipient.FirstName,
	)
	s.deliver(event, "Welcome to Phoenix Adventures", body)
	return nil
}

func (s *NotificationService) handlePasswordReset(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PasswordResetRequestedPayload)
	if !ok {
		s.logger.Warn("unexpected payload for password reset event", zap.String("event_id", event.ID))
		return nil
	}
	body := fmt.Sprintf(
		"Hi %s,\n\nForgot your password? Submit a PATCH request with your new password to:\n%s\n\nThis link expires in 10 minutes. If you didn't request a reset, ignore this email.",
		event.Recipient.FirstName, payload.ResetURL,
	)
	s.deliver(event, "Your password reset token (valid for 10 minutes)", body)
	return nil
}

func (s *NotificationService) handleTripApplied(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TripAppliedPayload)
	if !ok {
		s.logger.Warn("unexpected payload for trip applied event", zap.String("event_id", event.ID))
		return nil
	}
	body := fmt.Sprintf(
		"Hi %s,\n\nYour application for %s has been received. The trip price is %.2f.\nPlease transfer the payment to %s and upload your receipt to confirm your seat.",
		event.Recipient.FirstName, payload.TripName, payload.Price, s.paymentNumber,
	)
	s.deliver(event, "Your trip application", body)
	return nil
}

func (s *NotificationService) handleCustomizedTripPriced(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.CustomizedTripPricedPayload)
	if !ok {
		s.logger.Warn("unexpected payload for customized trip priced event", zap.String("event_id", event.ID))
		return nil
	}
	body := fmt.Sprintf(
		"Hi %s,\n\nWe have reviewed your customized trip request and can offer it for %.2f.\nPlease accept or reject the offer from your account. On acceptance, transfer the payment to %s and upload your receipt.",
		event.Recipient.FirstName, payload.Price, s.paymentNumber,
	)
	s.deliver(event, "Your customized trip offer", body)
	return nil
}

// deliver sends in the background so a slow mail provider never holds up the
// request that published the event.
func (s *NotificationService) deliver(event events.Event, subject, body string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.sendTimeout)
		defer cancel()

		if err := s.mailer.Send(ctx, event.Recipient.Email, event.Recipient.FirstName, subject, body); err != nil {
			s.logger.Error("failed to send notification email",
				zap.String("event_id", event.ID),
				zap.String("event_type", string(event.Type)),
				zap.String("recipient", event.Recipient.Email),
				zap.Error(err),
			)
			return
		}
		s.logger.Info("notification email sent",
			zap.String("event_type", string(event.Type)),
			zap.String("recipient", event.Recipient.Email),
		)
	}()
}
