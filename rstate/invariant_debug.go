// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build rstate_debug

package rstate

// invariantViolation reports a broken internal invariant. Builds
// compiled with the rstate_debug tag panic immediately, so invariant
// breaks surface at the point they happen instead of as a confusing
// symptom three calls later.
func invariantViolation(format string, args ...any) {
	panic(sprintfInvariant(format, args...))
}
