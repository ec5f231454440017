package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendWelcomeEmail(email, fullName string) error
	SendInvitationEmail(email, projectName, inviterName, token string) error
}

type emailService struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail, baseURL string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer:  dialer,
		from:    fromEmail,
		baseURL: baseURL,
	}
}

func (s *emailService) SendWelcomeEmail(email, fullName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "¡Bienvenido a Panal!")

	body := fmt.Sprintf(`
		<h2>¡Bienvenido a Panal, %s!</h2>
		<p>Tu cuenta se ha creado correctamente.</p>
		<p>Ya puedes crear proyectos e invitar a tu equipo.</p>
		<p>El equipo de Panal</p>
	`, fullName)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

func (s *emailService) SendInvitationEmail(email, projectName, inviterName, token string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("%s te ha añadido al proyecto %s", inviterName, projectName))

	body := fmt.Sprintf(`
		<h3>Te han añadido a un proyecto</h3>
		<p><strong>%s</strong> te ha añadido como colaborador del proyecto <strong>%s</strong>.</p>
		<p>Entra en <a href="%s/projects">%s/projects</a> para verlo.</p>
		<p>Referencia de la invitación: <code>%s</code></p>
	`, inviterName, projectName, s.baseURL, s.baseURL, token)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send invitation email: %w", err)
	}
	return nil
}
