// Package notifier membungkus pengiriman email sebagai capability:
// caller hanya bergantung pada interface Mailer, kegagalan kirim selalu
// bisa ditangkap dan tidak pernah fatal untuk operasi pemanggil.
package notifier

import (
	"fmt"
	"log"
	"net/smtp"

	"karateku_backend/internals/configs"
)

type Mailer interface {
	Send(to, subject, body string) error
}

/* ===============================
   SMTP mailer
=================================*/

type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{
		Host:     configs.SMTPHost,
		Port:     configs.SMTPPort,
		Username: configs.SMTPUser,
		Password: configs.SMTPPassword,
		From:     configs.SMTPFrom,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.From, to, subject, body,
	))
	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	addr := m.Host + ":" + m.Port
	if err := smtp.SendMail(addr, auth, m.From, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send ke %s gagal: %w", to, err)
	}
	return nil
}

/* ===============================
   Log mailer (fallback tanpa SMTP)
=================================*/

// LogMailer menulis email ke log saja. Dipakai saat SMTP_USER kosong
// supaya environment dev tetap jalan tanpa kredensial email.
type LogMailer struct{}

func (LogMailer) Send(to, subject, body string) error {
	log.Printf("[MAIL] to=%s subject=%q body=%q", to, subject, body)
	return nil
}

// FromEnv memilih implementasi berdasarkan konfigurasi SMTP.
func FromEnv() Mailer {
	if configs.SMTPUser == "" {
		return LogMailer{}
	}
	return NewSMTPMailer()
}
