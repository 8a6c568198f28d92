package main

import (
	"log"
	"net/smtp"
	"os"
	"strings"

	"anpr/models"
)

// Mailer sends fine notices over SMTP with STARTTLS. Credentials come from
// the environment; a nil Mailer means delivery is not configured.
type Mailer struct {
	Host string
	Port string
	User string
	Pass string
	// DemoRecipient overrides every recipient: demo deployments send all
	// notices to the configured SMTP account instead of real owners.
	DemoRecipient string
}

func mailerFromEnv() *Mailer {
	user := strings.TrimSpace(os.Getenv("SMTP_USER"))
	pass := strings.TrimSpace(os.Getenv("SMTP_PASS"))
	if user == "" || pass == "" {
		return nil
	}
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	demo := os.Getenv("SMTP_DEMO_RECIPIENT")
	if demo == "" {
		demo = user
	}
	return &Mailer{Host: host, Port: port, User: user, Pass: pass, DemoRecipient: demo}
}

// Send delivers one plain-text message.
func (m *Mailer) Send(to, subject, body string) error {
	msg := []byte("From: " + m.User + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" + body)
	auth := smtp.PlainAuth("", m.User, m.Pass, m.Host)
	return smtp.SendMail(m.Host+":"+m.Port, auth, m.User, []string{to}, msg)
}

// notifyFine emails a fine notice for the logged violation and marks the log
// row on success. SMTP misconfiguration or delivery failure is logged only;
// the request outcome does not depend on it.
func notifyFine(fl *models.FineLog) bool {
	m := mailerFromEnv()
	if m == nil {
		return false
	}
	ownerName := "Vehicle Owner"
	to := m.DemoRecipient
	if v, err := findOwnerByPlate(fl.Plate); err == nil {
		ownerName = v.Owner.Name
	}
	if to == "" {
		return false
	}
	subject := "Traffic Fine Notice - Plate " + fl.Plate
	body := DraftFineNotice(ownerName, fl.Plate, fl.ViolationType, fl.FineAmount)
	if err := m.Send(to, subject, body); err != nil {
		log.Printf("email error for plate %s: %v", fl.Plate, err)
		return false
	}
	db.Model(fl).Update("email_sent", true)
	return true
}
