package model

import (
	"errors"
	"time"
)

// IntakeWindow is the time an applicant has to finish the chat questionnaire.
const IntakeWindow = 34 * time.Minute

var (
	ErrAlreadyActive      = errors.New("ya tienes una postulación en proceso")
	ErrNotYourApplication = errors.New("esta no es tu postulación")
	ErrAlreadyDecided     = errors.New("esta postulación ya fue decidida")
	ErrIntakeClosed       = errors.New("las postulaciones están cerradas")
	ErrAlreadySubmitted   = errors.New("ya enviaste una postulación")
)

type Status string

const (
	StatusPending  Status = "pendiente"
	StatusAccepted Status = "aceptado"
	StatusRejected Status = "rechazado"
)

// Display returns the user-facing form of the status.
func (s Status) Display() string {
	switch s {
	case StatusPending:
		return "Pendiente"
	case StatusAccepted:
		return "Aceptado"
	case StatusRejected:
		return "Rechazado"
	}
	return string(s)
}

// Color returns the embed color used for DMs carrying this status.
func (s Status) Color() int {
	switch s {
	case StatusAccepted:
		return 0x2ecc71
	case StatusRejected:
		return 0xe74c3c
	}
	return 0xe67e22
}

// ApplicationRecord is the volatile per-applicant state of a chat intake.
// Exactly one may exist per applicant; the Workflow owns the map.
type ApplicationRecord struct {
	UserID          string
	ChannelID       string
	Answers         map[int]string
	CurrentQuestion int
	StartedAt       time.Time
	Deadline        time.Time
}

func NewApplicationRecord(userID, channelID string) *ApplicationRecord {
	now := time.Now()
	return &ApplicationRecord{
		UserID:    userID,
		ChannelID: channelID,
		Answers:   map[int]string{},
		StartedAt: now,
		Deadline:  now.Add(IntakeWindow),
	}
}

// WebSubmission is a form payload bundled with the identity resolved during
// the OAuth2 login. Ownership transfers from the web queue to the drain loop.
type WebSubmission struct {
	SubmissionID string            `json:"submission_id"`
	UserID       string            `json:"user_id"`
	Username     string            `json:"username"`
	DisplayName  string            `json:"display_name"`
	AvatarURL    string            `json:"avatar_url"`
	Fields       map[string]string `json:"fields"`
}

// Submission is the archived form of a decided or pending application.
// The web rows double as the web duplicate-submission guard.
type Submission struct {
	ID              string `gorm:"type:varchar(40);primary_key"`
	UserID          string `gorm:"type:varchar(50)"`
	Username        string `gorm:"type:varchar(100)"`
	Source          string `gorm:"type:varchar(10)"` // chat | web
	Status          string `gorm:"type:varchar(20)"`
	Answers         string `gorm:"type:text"` // JSON object, question -> answer
	ReviewMessageID string `gorm:"type:varchar(50)"`
	DecidedBy       string `gorm:"type:varchar(50)"`
	CreatedAt       time.Time
	DecidedAt       time.Time
}
