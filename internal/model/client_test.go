package model

import "testing"

func TestClientContactURLs(t *testing.T) {
	c := NewClient("c1", "Ana Martín", "ana@retailplus.com")
	c.Phone = "+34 612 345 678"

	if got := c.MailtoURL(); got != "mailto:ana@retailplus.com" {
		t.Errorf("MailtoURL() = %q", got)
	}
	if got := c.TelURL(); got != "tel:+34612345678" {
		t.Errorf("TelURL() = %q", got)
	}
	if got := c.WhatsAppURL(); got != "https://wa.me/34612345678" {
		t.Errorf("WhatsAppURL() = %q", got)
	}
}

func TestClientContactURLsWithoutPhone(t *testing.T) {
	c := NewClient("c1", "Ana Martín", "ana@retailplus.com")

	if got := c.TelURL(); got != "" {
		t.Errorf("TelURL() without phone = %q, want empty", got)
	}
	if got := c.WhatsAppURL(); got != "" {
		t.Errorf("WhatsAppURL() without phone = %q, want empty", got)
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("c1", "Ana", "ana@x.com")
	if c.Status != StageLead {
		t.Errorf("expected lead stage, got %s", c.Status)
	}
	if c.Potential != PotentialMedium {
		t.Errorf("expected medium potential, got %s", c.Potential)
	}
	if c.CreatedAt.IsZero() || c.LastContactAt.IsZero() {
		t.Error("timestamps should be set on creation")
	}
}
