package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Credentials holds alert email secrets loaded from the environment.
type Credentials struct {
	SenderEmail   string
	EmailPassword string
	Recipient     string
}

// LoadCredentials reads SENDER_EMAIL, EMAIL_PASSWORD and
// RECIPIENT_EMAIL from the environment, loading a .env file first when
// one exists. The config file's recipient wins over the environment
// when set.
func LoadCredentials(cfg *Config) (*Credentials, error) {
	// Missing .env is fine, variables may come from the real environment.
	_ = godotenv.Load()

	creds := &Credentials{
		SenderEmail:   os.Getenv("SENDER_EMAIL"),
		EmailPassword: os.Getenv("EMAIL_PASSWORD"),
		Recipient:     os.Getenv("RECIPIENT_EMAIL"),
	}
	if cfg != nil && cfg.Email.Recipient != "" {
		creds.Recipient = cfg.Email.Recipient
	}

	if creds.SenderEmail == "" {
		return nil, fmt.Errorf("SENDER_EMAIL not set")
	}
	if creds.EmailPassword == "" {
		return nil, fmt.Errorf("EMAIL_PASSWORD not set")
	}
	if creds.Recipient == "" {
		return nil, fmt.Errorf("no recipient: set RECIPIENT_EMAIL or email.recipient")
	}
	return creds, nil
}
