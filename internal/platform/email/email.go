// Package email submits account mails over SMTP.
package email

import (
	"fmt"
	"net/smtp"

	"blog_backend/internal/platform/config"
	"blog_backend/internal/shared/ratelimiter"
)

// Service sends verification and password reset mails. Submission is rate
// limited so a registration burst cannot flood the upstream relay.
type Service struct {
	host     string
	port     string
	user     string
	password string
	from     string

	frontendURL string
	limiter     ratelimiter.RateLimiterInterface
}

// NewService creates a mail service from the application config.
func NewService(cfg *config.Config, limiter ratelimiter.RateLimiterInterface) *Service {
	return &Service{
		host:        cfg.SMTPHost,
		port:        cfg.SMTPPort,
		user:        cfg.SMTPUser,
		password:    cfg.SMTPPass,
		from:        cfg.SMTPFrom,
		frontendURL: cfg.FrontendURL,
		limiter:     limiter,
	}
}

// SendVerificationEmail mails the account activation link.
func (s *Service) SendVerificationEmail(to, uid, token string) error {
	link := fmt.Sprintf("%s/verify-email/%s/%s/", s.frontendURL, uid, token)
	body := fmt.Sprintf(`Hello!

Thanks for registering.

To verify your email and activate your account, open the link below:

%s

If you did not register, ignore this email.
`, link)

	return s.send(to, "Activate your account", body)
}

// SendPasswordResetEmail mails the password reset link.
func (s *Service) SendPasswordResetEmail(to, uid, token string) error {
	link := fmt.Sprintf("%s/reset-password/%s/%s/", s.frontendURL, uid, token)
	body := fmt.Sprintf(`Hello!

A password reset was requested for your account.

To choose a new password, open the link below:

%s

If you did not request a reset, ignore this email.
`, link)

	return s.send(to, "Reset your password", body)
}

// send submits one message to the SMTP relay.
func (s *Service) send(to, subject, body string) error {
	if s.limiter != nil {
		s.limiter.WaitIfNeeded()
	}

	message := fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"\r\n"+
		"%s\r\n", s.from, to, subject, body)

	auth := smtp.PlainAuth("", s.user, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)

	if err := smtp.SendMail(addr, auth, s.from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
