// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunExitCodes(t *testing.T) {
	require := require.New(t)

	require.Zero(Run(New(func(context.Context) error {
		return nil
	})))

	require.Equal(1, Run(New(func(context.Context) error {
		return errors.New("batch failed")
	})))
}

func TestStopCancelsRun(t *testing.T) {
	require := require.New(t)

	started := make(chan struct{})
	a := New(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})

	require.NoError(a.Start())
	<-started
	require.NoError(a.Stop())

	code, err := a.ExitCode()
	require.Equal(1, code)
	require.ErrorIs(err, context.Canceled)
}

func TestStopBeforeCleanFinish(t *testing.T) {
	require := require.New(t)

	started := make(chan struct{})
	a := New(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		// A run that drains cleanly on cancellation reports success.
		return nil
	})

	require.NoError(a.Start())
	<-started
	require.NoError(a.Stop())

	code, err := a.ExitCode()
	require.Zero(code)
	require.NoError(err)
}
