package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

type EmailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func GetEmailConfig() *EmailConfig {
	return &EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

func SendEmail(to, subject, htmlBody string) error {
	config := GetEmailConfig()
	if config.Host == "" || config.Port == "" || config.From == "" {
		return fmt.Errorf("SMTP not configured")
	}

	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n",
		config.From, to, subject)
	msg := []byte(headers + htmlBody)

	var auth smtp.Auth
	if config.Username != "" && config.Password != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}

	addr := config.Host + ":" + config.Port
	return smtp.SendMail(addr, auth, config.From, []string{to}, msg)
}

func SendWelcomeEmail(email, name string) {
	go func() {
		first := name
		if first == "" {
			first = "there"
		} else {
			first = strings.Split(name, " ")[0]
		}
		subject := "Welcome to Rewardify!"
		body := fmt.Sprintf(`<h2>Welcome to Rewardify, %s!</h2>
<p>Your vendor account is ready. You can now:</p>
<ul>
<li>Record customer transactions and issue invoices</li>
<li>Set up a reward policy for your customers</li>
<li>Run promotions and issue gift cards</li>
</ul>
<p>The Rewardify Team</p>`, first)
		if err := SendEmail(email, subject, body); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", email, err)
		}
	}()
}

// SendEmployeeInvite mails an invited employee their temporary password.
func SendEmployeeInvite(email, vendorName, tempPassword string) {
	go func() {
		subject := fmt.Sprintf("You've been added to %s on Rewardify", vendorName)
		body := fmt.Sprintf(`<h2>You're in!</h2>
<p><strong>%s</strong> has added you as an employee on Rewardify.</p>
<p>Your temporary password: <strong>%s</strong></p>
<p>Please sign in and change it as soon as possible.</p>
<p>The Rewardify Team</p>`, vendorName, tempPassword)
		if err := SendEmail(email, subject, body); err != nil {
			log.Printf("Failed to send employee invite to %s: %v", email, err)
		}
	}()
}
