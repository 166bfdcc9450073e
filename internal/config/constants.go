package config

import "time"

const (
	// Bot command that starts a compatibility check
	CommandMery = "/mery"

	// Username limits
	MaxUsernameLen = 32

	// Canvas geometry
	CanvasWidth  = 400
	CanvasHeight = 200
	AvatarSize   = 100
	HeartSize    = 100

	// Element positions (top-left corners)
	FirstAvatarX  = 30
	SecondAvatarX = 270
	AvatarY       = 50
	HeartX        = 150
	HeartY        = 50
	PhraseX       = 20
	PhraseY       = 10

	// Percentage label center
	PercentCenterX = 200
	PercentCenterY = 160

	// Font size in points at 72 DPI
	FontSize = 14

	// Compatibility range
	MinPercentage = 1
	MaxPercentage = 100

	// Largest file accepted from Telegram (Bot API download limit)
	MaxDownloadBytes = 20 << 20

	// Largest decoded image accepted, in pixels
	MaxImagePixels = 40_000_000

	// Filename used when uploading the rendered image
	ResultFilename = "compatibility.png"
)

const (
	// How often the active sessions gauge is refreshed from the store
	SessionGaugeInterval = 60 * time.Second
)
