// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"fmt"

	"github.com/mitchellh/go-homedir"

	"github.com/PricingFrontier/synthetic-insurance-data/utils/constants"
)

// DefaultLogDirectory is expanded against $HOME when the default config is
// built.
var DefaultLogDirectory = fmt.Sprintf("~/.%s/logs", constants.AppName)

type Config struct {
	LogLevel                Level  `json:"logLevel"`
	DisplayLevel            Level  `json:"displayLevel"`
	LogFormat               Format `json:"logFormat"`
	MaxSize                 int    `json:"logMaxSize"` // MB
	MaxFiles                int    `json:"logMaxFiles"`
	MaxAge                  int    `json:"logMaxAge"` // days
	Compress                bool   `json:"logCompress"`
	DisableWriterDisplaying bool   `json:"disableWriterDisplaying"`
	LoggerName              string `json:"-"`
	MsgPrefix               string `json:"-"`
	Directory               string `json:"-"`
}

// DefaultConfig displays Info and above on the terminal and keeps Debug and
// above in a rotated file under the user's dot directory.
func DefaultConfig() (Config, error) {
	dir, err := homedir.Expand(DefaultLogDirectory)
	return Config{
		LogLevel:     Debug,
		DisplayLevel: Info,
		LogFormat:    Auto,
		MaxSize:      8,
		MaxFiles:     7,
		Directory:    dir,
	}, err
}
