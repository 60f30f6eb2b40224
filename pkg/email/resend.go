package email

import (
	"fmt"
	"os"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

type EmailService struct {
	client   *resend.Client
	from     string
	fromName string
	logger   *zap.Logger
}

func NewEmailService(logger *zap.Logger) *EmailService {
	return &EmailService{
		client:   resend.NewClient(os.Getenv("RESEND_API_KEY")),
		from:     os.Getenv("EMAIL_FROM_ADDRESS"),
		fromName: os.Getenv("EMAIL_FROM_NAME"),
		logger:   logger,
	}
}

func (s *EmailService) SendWelcomeEmail(email, firstName string) error {
	html := fmt.Sprintf(
		"<h2>Welcome aboard, %s!</h2><p>Your account is ready. Create a trip and invite your friends.</p>",
		firstName,
	)

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{email},
		Subject: "Welcome to Nomad!",
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Warn("failed to send welcome email",
			zap.String("email", email), zap.Error(err))
		return err
	}

	s.logger.Info("sent welcome email",
		zap.String("email", email), zap.String("id", resp.Id))
	return nil
}

// SendTripInviteEmail mirrors the in-app TRIP notification. Delivery is
// best-effort, callers ignore the error.
func (s *EmailService) SendTripInviteEmail(email, cityName, inviterName string) error {
	html := fmt.Sprintf(
		"<p>%s added you to the %s trip. Log in to see the plan.</p>",
		inviterName, cityName,
	)

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{email},
		Subject: fmt.Sprintf("You joined the %s trip", cityName),
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Warn("failed to send trip invite email",
			zap.String("email", email), zap.Error(err))
		return err
	}

	s.logger.Info("sent trip invite email",
		zap.String("email", email), zap.String("id", resp.Id))
	return nil
}
