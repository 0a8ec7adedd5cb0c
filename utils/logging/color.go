// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

// Color is an ANSI escape sequence for terminal display.
type Color string

const (
	Red         Color = "\033[0;31m"
	Orange      Color = "\033[0;33m"
	Yellow      Color = "\033[0;93m"
	LightGreen  Color = "\033[0;92m"
	LightBlue   Color = "\033[0;94m"
	LightPurple Color = "\033[0;95m"
	Reset       Color = "\033[0;0m"
)

func (c Color) Wrap(text string) string {
	return string(c) + text + string(Reset)
}

func (l Level) Color() Color {
	switch l {
	case Fatal:
		return Red
	case Error:
		return Orange
	case Warn:
		return Yellow
	case Info:
		// Use the terminal's default so white backgrounds stay readable.
		return Reset
	case Debug:
		return LightBlue
	case Verbo:
		return LightGreen
	default:
		return Reset
	}
}
