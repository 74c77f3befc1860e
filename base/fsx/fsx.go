// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fsx provides filesystem helpers shared by the config page
// loader: canonical-path deduplication, reverse-alphabetical directory
// listing, and the "<auto>" upward-scan resolution rule.
package fsx

import (
	"os"
	"path/filepath"
	"sort"
)

// Canonical returns the absolute, symlink-resolved form of dir, used to
// deduplicate search-path entries that name the same directory under
// different aliases.
func Canonical(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		// Non-existent directories still canonicalize (to their absolute
		// form) so that a not-yet-created search-path entry can still be
		// deduplicated against another not-yet-created alias of itself.
		return abs, nil
	}
	return real, nil
}

// ListReverse returns the names of the regular files directly within
// dir, sorted in reverse alphabetical order, since a later-sorted
// filename takes priority during discovery.
func ListReverse(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// IsDir reports whether path names an existing directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ScanUpFrom implements the "<auto>" resolution rule: starting at dir,
// join suffix and check whether any file in the resulting directory
// matches one of the given glob matchers; if not, move to the parent
// directory and try again, stopping at the filesystem root.
func ScanUpFrom(dir, suffix string, matches func(name string) bool) (string, bool) {
	for {
		consider := filepath.Join(dir, suffix)
		if IsDir(consider) {
			if entries, err := os.ReadDir(consider); err == nil {
				for _, e := range entries {
					if !e.IsDir() && matches(e.Name()) {
						return consider, true
					}
				}
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
