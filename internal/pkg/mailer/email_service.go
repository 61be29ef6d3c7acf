package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendFraudAlert(toEmail, severity, description, paymentNumber string) error
	SendPaymentReceipt(toEmail, paymentNumber, amount, payee string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendFraudAlert(toEmail, severity, description, paymentNumber string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("[%s] Fraud alert on %s", severity, paymentNumber))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Fraud Alert</h2>
			<p>A <strong>%s</strong> severity alert was raised during payment monitoring:</p>
			<p>%s</p>
			<p>Payment: <strong>%s</strong></p>
			<p>Please review it in the fraud dashboard.</p>
		</div>
	`, severity, description, paymentNumber)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send fraud alert to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Fraud alert sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendPaymentReceipt(toEmail, paymentNumber, amount, payee string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Payment %s completed", paymentNumber))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Payment Completed</h2>
			<p>Payment <strong>%s</strong> of $%s to %s has been processed successfully.</p>
		</div>
	`, paymentNumber, amount, payee)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send receipt to %s: %v\n", toEmail, err)
		return err
	}

	return nil
}
