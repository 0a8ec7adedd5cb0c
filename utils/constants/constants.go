// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package constants

const (
	// AppName is the command and default dotdir name of this tool.
	AppName = "synthdata"

	// QuoteNamespace is the prometheus namespace shared by every collector
	// this tool registers.
	QuoteNamespace = "synthdata"
)
