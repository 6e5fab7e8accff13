package model

import (
	"fmt"
	"strings"
	"time"
)

// Potential is a coarse priority rating for a client, independent of stage.
type Potential string

const (
	PotentialHigh   Potential = "high"
	PotentialMedium Potential = "medium"
	PotentialLow    Potential = "low"
)

// Valid reports whether p is a known potential rating.
func (p Potential) Valid() bool {
	switch p {
	case PotentialHigh, PotentialMedium, PotentialLow:
		return true
	}
	return false
}

// Client represents a lead or customer record in the pipeline.
type Client struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Company       string    `json:"company,omitempty"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Value         float64   `json:"value"`
	Potential     Potential `json:"potential"`
	Source        string    `json:"source,omitempty"`
	Status        Stage     `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	LastContactAt time.Time `json:"last_contact_at"`
}

// NewClient creates a client with defaults. Validation is the store's job.
func NewClient(id, name, email string) Client {
	now := time.Now()
	return Client{
		ID:            id,
		Name:          name,
		Email:         email,
		Potential:     PotentialMedium,
		Status:        StageLead,
		CreatedAt:     now,
		LastContactAt: now,
	}
}

// TelURL returns a tel: link for the client's phone, or "" without one.
func (c *Client) TelURL() string {
	if c.Phone == "" {
		return ""
	}
	return "tel:" + strings.ReplaceAll(c.Phone, " ", "")
}

// MailtoURL returns a mailto: link for the client's email.
func (c *Client) MailtoURL() string {
	return "mailto:" + c.Email
}

// WhatsAppURL returns a wa.me link for the client's phone, or "" without one.
func (c *Client) WhatsAppURL() string {
	if c.Phone == "" {
		return ""
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, c.Phone)
	if digits == "" {
		return ""
	}
	return fmt.Sprintf("https://wa.me/%s", digits)
}
