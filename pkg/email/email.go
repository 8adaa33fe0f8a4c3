package email

import (
	"fmt"
	"net/smtp"
	"os"
)

// SendEmail sends a plain text email using SMTP.
func SendEmail(to, subject, body string) error {
	from := os.Getenv("SMTP_SENDER")
	password := os.Getenv("SMTP_PASSWORD")
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")

	auth := smtp.PlainAuth("", from, password, smtpHost)

	msg := []byte("To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" + body + "\r\n")

	address := smtpHost + ":" + smtpPort

	err := smtp.SendMail(address, auth, from, []string{to}, msg)
	if err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// SendVerificationEmail sends the signup verification link.
func SendVerificationEmail(to, token string) error {
	appURL := os.Getenv("APP_URL")
	body := fmt.Sprintf(
		"Welcome to SYNC!\n\nConfirm your email address by opening this link:\n%s/verify?token=%s\n\nIf you didn't sign up, you can ignore this message.",
		appURL, token,
	)
	return SendEmail(to, "Verify your SYNC account", body)
}

// SendPasswordResetEmail sends the password reset link.
func SendPasswordResetEmail(to, token string) error {
	appURL := os.Getenv("APP_URL")
	body := fmt.Sprintf(
		"Someone requested a password reset for your SYNC account.\n\nReset it here:\n%s/reset-password?token=%s\n\nIf this wasn't you, ignore this message and your password stays unchanged.",
		appURL, token,
	)
	return SendEmail(to, "Reset your SYNC password", body)
}
