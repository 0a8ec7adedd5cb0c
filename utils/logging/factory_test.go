// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFactoryDuplicateName(t *testing.T) {
	require := require.New(t)

	factory := NewFactory(Config{
		DisplayLevel:            Info,
		LogLevel:                Debug,
		DisableWriterDisplaying: true,
		Directory:               t.TempDir(),
	})
	defer factory.Close()

	_, err := factory.Make("generate")
	require.NoError(err)

	_, err = factory.Make("generate")
	require.ErrorContains(err, "already exists")

	require.Equal([]string{"generate"}, factory.GetLoggerNames())
}

func TestFactorySetLogLevel(t *testing.T) {
	require := require.New(t)

	factory := NewFactory(Config{
		DisplayLevel:            Info,
		LogLevel:                Info,
		DisableWriterDisplaying: true,
		Directory:               t.TempDir(),
	})
	defer factory.Close()

	log, err := factory.Make("fetch")
	require.NoError(err)
	require.False(log.Enabled(Verbo))

	require.NoError(factory.SetLogLevel("fetch", Verbo))
	require.True(log.Enabled(Verbo))

	require.ErrorContains(factory.SetLogLevel("missing", Verbo), "not found")
}
