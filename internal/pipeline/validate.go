package pipeline

import (
	"regexp"
	"strings"

	"github.com/emprendo/copiloto/internal/model"
)

// Shape checks only. The store re-validates everything the presentation
// layer already checked; the caller is not trusted.
var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9 ()\-.]{6,20}$`)
)

// ClientInput carries the caller-settable fields for a new client.
type ClientInput struct {
	Name      string          `json:"name"`
	Company   string          `json:"company"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Value     float64         `json:"value"`
	Potential model.Potential `json:"potential"`
	Source    string          `json:"source"`
	Status    model.Stage     `json:"status"`
}

// ClientPatch carries optional updates; nil fields are left untouched.
// A Status change is applied as a stage move so bucket membership and
// the status field can never drift apart.
type ClientPatch struct {
	Name      *string          `json:"name,omitempty"`
	Company   *string          `json:"company,omitempty"`
	Email     *string          `json:"email,omitempty"`
	Phone     *string          `json:"phone,omitempty"`
	Value     *float64         `json:"value,omitempty"`
	Potential *model.Potential `json:"potential,omitempty"`
	Source    *string          `json:"source,omitempty"`
	Status    *model.Stage     `json:"status,omitempty"`
}

func validateClientInput(in ClientInput) error {
	ve := &ValidationError{}
	if strings.TrimSpace(in.Name) == "" {
		ve.add("name", "required")
	}
	if strings.TrimSpace(in.Email) == "" {
		ve.add("email", "required")
	} else if !emailRe.MatchString(in.Email) {
		ve.add("email", "malformed")
	}
	if in.Phone != "" && !phoneRe.MatchString(in.Phone) {
		ve.add("phone", "malformed")
	}
	if in.Value < 0 {
		ve.add("value", "must not be negative")
	}
	if in.Potential != "" && !in.Potential.Valid() {
		ve.add("potential", "unknown rating")
	}
	if in.Status != "" && !in.Status.Valid() {
		ve.add("status", "unknown stage")
	}
	return ve.orNil()
}

// validateClientPatch checks only the fields the patch carries.
func validateClientPatch(p ClientPatch) error {
	ve := &ValidationError{}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		ve.add("name", "required")
	}
	if p.Email != nil {
		if strings.TrimSpace(*p.Email) == "" {
			ve.add("email", "required")
		} else if !emailRe.MatchString(*p.Email) {
			ve.add("email", "malformed")
		}
	}
	if p.Phone != nil && *p.Phone != "" && !phoneRe.MatchString(*p.Phone) {
		ve.add("phone", "malformed")
	}
	if p.Value != nil && *p.Value < 0 {
		ve.add("value", "must not be negative")
	}
	if p.Potential != nil && !p.Potential.Valid() {
		ve.add("potential", "unknown rating")
	}
	if p.Status != nil && !p.Status.Valid() {
		ve.add("status", "unknown stage")
	}
	return ve.orNil()
}
