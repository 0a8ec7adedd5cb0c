// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

// Package app runs a command to completion under signal control. An
// interrupted run cancels the command's context, so a partially composed
// batch is dropped rather than flushed.
package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
)

type App interface {
	// Start kicks off the application and returns immediately.
	Start() error

	// Stop notifies the application to exit and returns immediately.
	Stop() error

	// ExitCode should only be called after [Start] returns with no error.
	// It blocks until the application finishes.
	ExitCode() (int, error)
}

// New wraps [run] in an App whose Stop cancels the run's context.
func New(run func(context.Context) error) App {
	ctx, cancel := context.WithCancel(context.Background())
	return &app{
		run:    run,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

type app struct {
	run    func(context.Context) error
	ctx    context.Context
	cancel context.CancelFunc

	done chan struct{}
	err  error
}

func (a *app) Start() error {
	go func() {
		defer close(a.done)
		a.err = a.run(a.ctx)
	}()
	return nil
}

func (a *app) Stop() error {
	a.cancel()
	return nil
}

func (a *app) ExitCode() (int, error) {
	<-a.done
	if a.err != nil {
		return 1, a.err
	}
	return 0, nil
}

// Run starts [app] and blocks until it exits, stopping it on SIGINT or
// SIGTERM. The returned code is the process exit code.
func Run(app App) int {
	if err := app.Start(); err != nil {
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	var eg errgroup.Group
	eg.Go(func() error {
		for range signals {
			return app.Stop()
		}
		return nil
	})

	exitCode, runErr := app.ExitCode()

	signal.Stop(signals)
	close(signals)

	if err := eg.Wait(); err != nil {
		return 1
	}
	if runErr != nil && exitCode == 0 {
		return 1
	}
	return exitCode
}
