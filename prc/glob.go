// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prc

import "path/filepath"

// Globs is an ordered list of shell-style glob patterns.
type Globs []string

// Match reports whether name matches any pattern in the list.
func (g Globs) Match(name string) bool {
	for _, pat := range g {
		if ok, _ := filepath.Match(pat, name); ok {
			return true
		}
	}
	return false
}

// FileFlag records which loading behaviors apply to a discovered file
//.
type FileFlag uint8

const (
	FlagRead FileFlag = 1 << iota
	FlagDecrypt
	FlagExecute
	// FlagStructured marks a page that should be parsed as TOML or YAML
	// rather than PRC text, see format.go.
	FlagStructured
)

// defaultPatterns are the build-time defaults for each pattern list,
// overridden by environment variables or a host-exported [BlobInfo]
// during [Manager.ReloadImplicitPages].
var (
	defaultReadPatterns       = Globs{"*.prc"}
	defaultDecryptPatterns    = Globs{"*.prc.pe"}
	defaultExecutePatterns    = Globs{"*.prc.exe"}
	defaultStructuredPatterns = Globs{"*.prc.toml", "*.prc.yaml", "*.prc.yml"}
)
