// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rstate

import "fmt"

func sprintfInvariant(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
