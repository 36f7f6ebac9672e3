package service

import (
	"fmt"

	"energytrack.app/providers"
)

// EmailService formats and sends transactional emails
type EmailService struct {
	provider providers.EmailProvider
}

// NewEmailService creates a new email service
func NewEmailService(provider providers.EmailProvider) *EmailService {
	return &EmailService{provider: provider}
}

// SendResetCodeEmail mails a password reset code
func (s *EmailService) SendResetCodeEmail(to, code string) error {
	subject := "Your password reset code"
	body := fmt.Sprintf(`<html>
<body>
<h2>Password Reset</h2>
<p>Your verification code is:</p>
<h1 style="letter-spacing: 4px;">%s</h1>
<p>The code expires in 10 minutes. If you did not request a reset, ignore this email.</p>
</body>
</html>`, code)

	return s.provider.SendEmail(to, subject, body, true)
}
