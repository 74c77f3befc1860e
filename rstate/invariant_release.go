// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !rstate_debug

package rstate

import "log/slog"

// invariantViolation reports a broken internal invariant. Without the
// rstate_debug build tag, it logs at Error and lets the caller
// continue best-effort rather than taking the whole process down over
// a cache-consistency bug.
func invariantViolation(format string, args ...any) {
	slog.Error("rstate: invariant violation", "detail", sprintfInvariant(format, args...))
}
