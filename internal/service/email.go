package service

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) SendRentalBookedNotification(ctx context.Context, ownerEmail, renterName, instrumentName, startDate, endDate string) error {
	subject := fmt.Sprintf("New rental booking for %s", instrumentName)
	body := fmt.Sprintf("Hello,\n\n%s has booked your %s from %s to %s.\n\nBest regards,\nThe Instrument Rental Team",
		renterName, instrumentName, startDate, endDate)
	return s.send(ownerEmail, subject, body)
}

func (s *emailService) SendRentalCancelledNotification(ctx context.Context, ownerEmail, renterName, instrumentName string) error {
	subject := fmt.Sprintf("Rental cancelled for %s", instrumentName)
	body := fmt.Sprintf("Hello,\n\n%s has cancelled their rental of your %s. The instrument is available for new bookings again.\n\nBest regards,\nThe Instrument Rental Team",
		renterName, instrumentName)
	return s.send(ownerEmail, subject, body)
}

func (s *emailService) SendReturnConfirmation(ctx context.Context, ownerEmail, renterName, instrumentName string) error {
	subject := fmt.Sprintf("%s has been returned", instrumentName)
	body := fmt.Sprintf("Hello,\n\n%s has returned your %s. The instrument is available for new bookings again.\n\nBest regards,\nThe Instrument Rental Team",
		renterName, instrumentName)
	return s.send(ownerEmail, subject, body)
}

func (s *emailService) SendReturnReminder(ctx context.Context, renterEmail, renterName, instrumentName, endDate string) error {
	subject := fmt.Sprintf("Reminder: return your %s", instrumentName)
	body := fmt.Sprintf("Hello %s,\n\nYour rental of %s was due back on %s. Please return it as soon as possible.\n\nBest regards,\nThe Instrument Rental Team",
		renterName, instrumentName, endDate)
	return s.send(renterEmail, subject, body)
}

func (s *emailService) SendPaymentReceipt(ctx context.Context, renterEmail, instrumentName string, amount float64) error {
	subject := fmt.Sprintf("Payment receipt for %s", instrumentName)
	body := fmt.Sprintf("Hello,\n\nYour payment of $%.2f for renting %s was successful. Enjoy!\n\nBest regards,\nThe Instrument Rental Team",
		amount, instrumentName)
	return s.send(renterEmail, subject, body)
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}
