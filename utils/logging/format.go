// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Format selects how log lines are encoded.
type Format int

const (
	Auto Format = iota
	Plain
	Colors
	JSON

	termTimeFormat = "[01-02|15:04:05.000]"
)

var errUnknownFormat = errors.New("unknown log format")

// ToFormat parses [f]. Auto resolves to Colors when [fd] is a terminal and
// Plain otherwise.
func ToFormat(f string, fd uintptr) (Format, error) {
	switch strings.ToUpper(f) {
	case "AUTO":
		if term.IsTerminal(int(fd)) {
			return Colors, nil
		}
		return Plain, nil
	case "PLAIN":
		return Plain, nil
	case "COLORS":
		return Colors, nil
	case "JSON":
		return JSON, nil
	default:
		return Plain, fmt.Errorf("%w: %q", errUnknownFormat, f)
	}
}

func (f Format) MarshalJSON() ([]byte, error) {
	switch f {
	case Auto:
		return []byte(`"AUTO"`), nil
	case Plain:
		return []byte(`"PLAIN"`), nil
	case Colors:
		return []byte(`"COLORS"`), nil
	case JSON:
		return []byte(`"JSON"`), nil
	default:
		return nil, errUnknownFormat
	}
}

func (f Format) ConsoleEncoder() zapcore.Encoder {
	switch f {
	case Colors:
		return zapcore.NewConsoleEncoder(newTermEncoderConfig(consoleColorLevelEncoder))
	case JSON:
		return zapcore.NewJSONEncoder(newJSONEncoderConfig())
	default:
		return zapcore.NewConsoleEncoder(newTermEncoderConfig(consoleLevelEncoder))
	}
}

func (f Format) FileEncoder() zapcore.Encoder {
	switch f {
	case JSON:
		return zapcore.NewJSONEncoder(newJSONEncoderConfig())
	default:
		return zapcore.NewConsoleEncoder(newTermEncoderConfig(consoleLevelEncoder))
	}
}

func newTermEncoderConfig(lvlEncoder zapcore.LevelEncoder) zapcore.EncoderConfig {
	config := zap.NewProductionEncoderConfig()
	config.EncodeLevel = lvlEncoder
	config.EncodeTime = termTimeEncoder
	config.ConsoleSeparator = " "
	return config
}

func newJSONEncoderConfig() zapcore.EncoderConfig {
	config := zap.NewProductionEncoderConfig()
	config.EncodeLevel = jsonLevelEncoder
	config.EncodeTime = zapcore.EpochMillisTimeEncoder
	return config
}

func consoleLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(Level(l).AlignedString())
}

func consoleColorLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	lvl := Level(l)
	enc.AppendString(lvl.Color().Wrap(lvl.AlignedString()))
}

func jsonLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(Level(l).String())
}

func termTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format(termTimeFormat))
}
