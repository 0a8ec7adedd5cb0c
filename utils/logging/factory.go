// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/exp/maps"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/PricingFrontier/synthetic-insurance-data/utils/perms"
)

// Factory creates loggers that share one Config.
type Factory interface {
	// Make creates a new logger named [name]. The name must be unique within
	// the factory and becomes the log file's basename.
	Make(name string) (Logger, error)

	// SetLogLevel changes the level of the logger named [name].
	SetLogLevel(name string, level Level) error

	// GetLoggerNames returns the names of every logger this factory made.
	GetLoggerNames() []string

	// Close stops every logger this factory made.
	Close()
}

type factory struct {
	config Config

	lock    sync.RWMutex
	loggers map[string]Logger
}

func NewFactory(config Config) Factory {
	return &factory{
		config:  config,
		loggers: make(map[string]Logger),
	}
}

// Assumes [f.lock] is held.
func (f *factory) makeLogger(config Config) (Logger, error) {
	if _, ok := f.loggers[config.LoggerName]; ok {
		return nil, fmt.Errorf("logger with name %q already exists", config.LoggerName)
	}

	consoleCore := NewWrappedCore(config.DisplayLevel, os.Stderr, config.LogFormat.ConsoleEncoder())
	consoleCore.WriterDisabled = config.DisableWriterDisplaying
	cores := []WrappedCore{consoleCore}

	if config.Directory != "" {
		if err := os.MkdirAll(config.Directory, perms.ReadWriteExecute); err != nil {
			return nil, err
		}
		rw := &lumberjack.Logger{
			Filename:   filepath.Join(config.Directory, config.LoggerName+".log"),
			MaxSize:    config.MaxSize,
			MaxAge:     config.MaxAge,
			MaxBackups: config.MaxFiles,
			Compress:   config.Compress,
		}
		cores = append(cores, NewWrappedCore(config.LogLevel, rw, config.LogFormat.FileEncoder()))
	}

	l := NewLogger(config.MsgPrefix, cores...)
	f.loggers[config.LoggerName] = l
	return l, nil
}

func (f *factory) Make(name string) (Logger, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	config := f.config
	config.LoggerName = name
	return f.makeLogger(config)
}

func (f *factory) SetLogLevel(name string, level Level) error {
	f.lock.RLock()
	defer f.lock.RUnlock()

	logger, ok := f.loggers[name]
	if !ok {
		return fmt.Errorf("logger with name %q not found", name)
	}
	logger.SetLevel(level)
	return nil
}

func (f *factory) GetLoggerNames() []string {
	f.lock.RLock()
	defer f.lock.RUnlock()

	return maps.Keys(f.loggers)
}

func (f *factory) Close() {
	f.lock.Lock()
	defer f.lock.Unlock()

	for _, logger := range f.loggers {
		logger.Stop()
	}
	f.loggers = nil
}
