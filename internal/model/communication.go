package model

import "time"

// CommType is the channel a communication happened over.
type CommType string

const (
	CommCall      CommType = "call"
	CommEmail     CommType = "email"
	CommMeeting   CommType = "meeting"
	CommVideoCall CommType = "video_call"
	CommSMS       CommType = "sms"
	CommWhatsApp  CommType = "whatsapp"
	CommLinkedIn  CommType = "linkedin"
	CommOther     CommType = "other"
)

// Valid reports whether t is a known communication type.
func (t CommType) Valid() bool {
	switch t {
	case CommCall, CommEmail, CommMeeting, CommVideoCall, CommSMS, CommWhatsApp, CommLinkedIn, CommOther:
		return true
	}
	return false
}

// Direction says which side initiated the communication.
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == DirectionInbound || d == DirectionOutbound
}

// CommStatus is the lifecycle state of a logged communication.
type CommStatus string

const (
	CommCompleted CommStatus = "completed"
	CommScheduled CommStatus = "scheduled"
	CommCancelled CommStatus = "cancelled"
	CommNoAnswer  CommStatus = "no_answer"
)

// Valid reports whether s is a known communication status.
func (s CommStatus) Valid() bool {
	switch s {
	case CommCompleted, CommScheduled, CommCancelled, CommNoAnswer:
		return true
	}
	return false
}

// Outcome records how a communication went.
type Outcome string

const (
	OutcomePositive     Outcome = "positive"
	OutcomeNeutral      Outcome = "neutral"
	OutcomeNegative     Outcome = "negative"
	OutcomeFollowUpNeed Outcome = "follow_up_needed"
)

// Valid reports whether o is a known outcome. Empty is allowed; the
// outcome may not be known yet when the entry is logged.
func (o Outcome) Valid() bool {
	switch o {
	case "", OutcomePositive, OutcomeNeutral, OutcomeNegative, OutcomeFollowUpNeed:
		return true
	}
	return false
}

// Attachment is metadata about a file referenced by a communication.
// Only metadata is kept; the pipeline never stores file contents.
type Attachment struct {
	Name string `json:"name"`
	Kind string `json:"kind,omitempty"`
	Size int64  `json:"size,omitempty"`
}

// Communication is a logged interaction attached to a client by id.
type Communication struct {
	ID           string       `json:"id"`
	ClientID     string       `json:"client_id"`
	Type         CommType     `json:"type"`
	Direction    Direction    `json:"direction"`
	Subject      string       `json:"subject,omitempty"`
	Content      string       `json:"content"`
	DurationMins int          `json:"duration_mins,omitempty"`
	Participants []string     `json:"participants,omitempty"`
	Attachments  []Attachment `json:"attachments,omitempty"`
	Status       CommStatus   `json:"status"`
	Priority     Priority     `json:"priority"`
	Outcome      Outcome      `json:"outcome,omitempty"`
	Author       string       `json:"author,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NewCommunication creates a communication entry with defaults.
func NewCommunication(id, clientID, content string, typ CommType, dir Direction) Communication {
	now := time.Now()
	return Communication{
		ID:        id,
		ClientID:  clientID,
		Content:   content,
		Type:      typ,
		Direction: dir,
		Status:    CommCompleted,
		Priority:  PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
