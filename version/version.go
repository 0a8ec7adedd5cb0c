// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package version

import "fmt"

var (
	// Current is the version of this build.
	Current = &Semantic{
		Major: 1,
		Minor: 0,
		Patch: 0,
	}

	// GitCommit is injected through ldflags by the release build.
	GitCommit string
)

// Semantic is a semantic version with the v-prefixed rendering.
type Semantic struct {
	Major int
	Minor int
	Patch int
}

func (s *Semantic) String() string {
	return fmt.Sprintf("v%d.%d.%d", s.Major, s.Minor, s.Patch)
}

// Compare returns a positive number if s > o, 0 if s == o, or a negative
// number if s < o.
func (s *Semantic) Compare(o *Semantic) int {
	if diff := s.Major - o.Major; diff != 0 {
		return diff
	}
	if diff := s.Minor - o.Minor; diff != 0 {
		return diff
	}
	return s.Patch - o.Patch
}
