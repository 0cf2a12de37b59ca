package tui

import "github.com/rgehrsitz/dpgo/internal/tui/tuistyles"

// Re-export styles from tuistyles to avoid import cycles
var (
	TitleStyle     = tuistyles.TitleStyle
	SubtitleStyle  = tuistyles.SubtitleStyle
	StatusBarStyle = tuistyles.StatusBarStyle
	BorderStyle    = tuistyles.BorderStyle
	ErrorStyle     = tuistyles.ErrorStyle
	WarningStyle   = tuistyles.WarningStyle
	InfoStyle      = tuistyles.InfoStyle
	AppStyle       = tuistyles.AppStyle

	FormatCurrency = tuistyles.FormatCurrency
)
