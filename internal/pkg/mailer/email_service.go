package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendMeetingLink(toEmail, studentName, meetingLink string) error
	SendReviewReminder(toEmail string, classId int64) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

func (s *emailService) newMessage(toEmail, subject string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	return m
}

func (s *emailService) meetingLinkMessage(toEmail, studentName, meetingLink string) *gomail.Message {
	m := s.newMessage(toEmail, "Your class is confirmed")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Your class is scheduled!</h2>
			<p>Hi %s, your professor has confirmed the booking.</p>
			<p>Join at class time using this link:</p>
			<p><a href="%s">%s</a></p>
		</div>
	`, studentName, meetingLink, meetingLink)

	m.SetBody("text/html", body)
	return m
}

func (s *emailService) SendMeetingLink(toEmail, studentName, meetingLink string) error {
	if err := s.dialer.DialAndSend(s.meetingLinkMessage(toEmail, studentName, meetingLink)); err != nil {
		return fmt.Errorf("send meeting link to %s: %w", toEmail, err)
	}
	return nil
}

func (s *emailService) reviewReminderMessage(toEmail string, classId int64) *gomail.Message {
	m := s.newMessage(toEmail, "How was your class?")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Rate your class</h2>
			<p>Class #%d has ended. Leave a review so your professor can finalize it.</p>
		</div>
	`, classId)

	m.SetBody("text/html", body)
	return m
}

func (s *emailService) SendReviewReminder(toEmail string, classId int64) error {
	if err := s.dialer.DialAndSend(s.reviewReminderMessage(toEmail, classId)); err != nil {
		return fmt.Errorf("send review reminder to %s: %w", toEmail, err)
	}
	return nil
}
