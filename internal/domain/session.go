package domain

import (
	"image"
	"time"
)

// Step is the position of a chat in the photo collection flow.
type Step int

const (
	StepAwaitingFirstPhoto Step = iota + 1
	StepAwaitingSecondPhoto
)

func (s Step) String() string {
	switch s {
	case StepAwaitingFirstPhoto:
		return "awaiting_first_photo"
	case StepAwaitingSecondPhoto:
		return "awaiting_second_photo"
	default:
		return "unknown"
	}
}

// Session tracks one chat between /mery and the final render.
type Session struct {
	ChatID         int64
	CorrelationID  string
	FirstUser      string
	SecondUser     string
	Step           Step
	ReplyToMessage int
	FirstImage     image.Image
	SecondImage    image.Image
	CreatedAt      time.Time
}

// Compatibility is the outcome drawn for a completed session.
type Compatibility struct {
	Percentage int
	Phrase     string
}
