package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// InteractionMode selects how the learner drives a lesson.
type InteractionMode string

// Valid interaction modes.
const (
	ModeVoice InteractionMode = "voice"
	ModeClick InteractionMode = "click"
	ModeMixed InteractionMode = "mixed"
)

// Preferences validation errors
var (
	ErrPreferencesAccountEmpty = errors.New("preferences account ID cannot be empty")
	ErrInvalidInteractionMode  = errors.New("invalid interaction mode")
	ErrSpeechRateOutOfRange    = errors.New("speech rate must be between 0.5 and 2.0")
)

// VoiceSettings holds the speech-UI toggles and narration tuning for one
// account.
type VoiceSettings struct {
	NarrationEnabled   bool    `json:"narration_enabled"`
	InteractionEnabled bool    `json:"interaction_enabled"`
	NavigationEnabled  bool    `json:"navigation_enabled"`
	SpeechRate         float64 `json:"speech_rate"`
	VoiceName          string  `json:"voice_name"`
}

// Preferences holds per-account UI settings. Exactly one Preferences record
// exists per Account, created alongside it.
type Preferences struct {
	AccountID uuid.UUID       `json:"account_id"`
	Mode      InteractionMode `json:"mode"`
	Voice     VoiceSettings   `json:"voice"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// DefaultPreferences returns the Preferences record created for a new
// account: mixed interaction with narration on at normal speed.
func DefaultPreferences(accountID uuid.UUID) Preferences {
	return Preferences{
		AccountID: accountID,
		Mode:      ModeMixed,
		Voice: VoiceSettings{
			NarrationEnabled:   true,
			InteractionEnabled: true,
			NavigationEnabled:  true,
			SpeechRate:         1.0,
			VoiceName:          "default",
		},
		UpdatedAt: time.Now().UTC(),
	}
}

// Validate checks if the Preferences record has valid data.
func (p *Preferences) Validate() error {
	if p.AccountID == uuid.Nil {
		return ErrPreferencesAccountEmpty
	}

	switch p.Mode {
	case ModeVoice, ModeClick, ModeMixed:
	default:
		return ErrInvalidInteractionMode
	}

	if p.Voice.SpeechRate < 0.5 || p.Voice.SpeechRate > 2.0 {
		return ErrSpeechRateOutOfRange
	}

	return nil
}
