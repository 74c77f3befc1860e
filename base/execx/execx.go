// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package execx runs the subprocess-backed config pages: files marked
// with the EXECUTE file flag are spawned and their stdout
// is captured as PRC text. Stderr is inherited, for parity with the
// source implementation.
package execx

import (
	"bytes"
	"os"
	"os/exec"
)

// Output runs name with args, inheriting stderr, and returns captured
// stdout. Extra is appended after args (used for the
// PRC_EXECUTABLE_ARGS_ENVVAR-derived argument list).
func Output(name string, args []string, extra []string) ([]byte, error) {
	all := make([]string, 0, len(args)+len(extra))
	all = append(all, args...)
	all = append(all, extra...)
	cmd := exec.Command(name, all...)
	cmd.Stderr = os.Stderr
	var buf bytes.Buffer
	cmd.Stdout = &buf
	if err := cmd.Run(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
