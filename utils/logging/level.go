// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Level is kept on the zapcore scale, below every zapcore built-in level, so
// Verbo has room under Debug.
type Level int8

const (
	Verbo Level = iota - 9
	Debug
	Info
	Warn
	Error
	Fatal
	Off

	fatalStr = "FATAL"
	errorStr = "ERROR"
	warnStr  = "WARN"
	infoStr  = "INFO"
	debugStr = "DEBUG"
	verboStr = "VERBO"
	offStr   = "OFF"

	alignedStringLen = 5
)

var errUnknownLevel = errors.New("unknown log level")

// ToLevel is the inverse of Level.String.
func ToLevel(l string) (Level, error) {
	switch strings.ToUpper(l) {
	case offStr:
		return Off, nil
	case fatalStr:
		return Fatal, nil
	case errorStr:
		return Error, nil
	case warnStr:
		return Warn, nil
	case infoStr:
		return Info, nil
	case debugStr:
		return Debug, nil
	case verboStr:
		return Verbo, nil
	default:
		return Off, fmt.Errorf("%w: %q", errUnknownLevel, l)
	}
}

func (l Level) String() string {
	switch l {
	case Off:
		return offStr
	case Fatal:
		return fatalStr
	case Error:
		return errorStr
	case Warn:
		return warnStr
	case Info:
		return infoStr
	case Debug:
		return debugStr
	case Verbo:
		return verboStr
	default:
		// This should never happen
		return "UNKNO"
	}
}

// AlignedString pads or truncates the level name to a fixed width so columns
// line up in console output.
func (l Level) AlignedString() string {
	s := l.String()
	switch {
	case len(s) < alignedStringLen:
		return s + strings.Repeat(" ", alignedStringLen-len(s))
	case len(s) == alignedStringLen:
		return s
	default:
		return s[:alignedStringLen]
	}
}

func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *Level) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	var err error
	*l, err = ToLevel(str)
	return err
}
