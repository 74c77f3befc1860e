// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prc

import (
	"context"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"golang.org/x/sync/errgroup"

	"pandacore.dev/engine/base/errors"
	"pandacore.dev/engine/base/fsx"
)

// Environment variable names recognized by [Manager.ReloadImplicitPages]
//.
const (
	EnvDirEnvvars         = "PRC_DIR_ENVVARS"
	EnvPathEnvvars        = "PRC_PATH_ENVVARS"
	EnvPath2Envvars       = "PRC_PATH2_ENVVARS"
	EnvPatterns           = "PRC_PATTERNS"
	EnvEncryptedPatterns  = "PRC_ENCRYPTED_PATTERNS"
	EnvExecutablePatterns = "PRC_EXECUTABLE_PATTERNS"
	EnvDefaultPrcDir      = "DEFAULT_PRC_DIR"
	EnvEncryptionKey      = "PRC_ENCRYPTION_KEY"
	EnvMainDir            = "MAIN_DIR"
)

// resolved is the per-reload snapshot of pattern lists and the
// subprocess-argument environment variable name, computed fresh from
// the environment (or [HostBlob], which supersedes it) each time.
type resolved struct {
	read, decrypt, execute, structured Globs
	encryptionKey                      string
	executableArgsEnv                  string
}

func resolvePatterns() resolved {
	r := resolved{
		read:       append(Globs{}, defaultReadPatterns...),
		decrypt:    append(Globs{}, defaultDecryptPatterns...),
		execute:    append(Globs{}, defaultExecutePatterns...),
		structured: append(Globs{}, defaultStructuredPatterns...),
	}
	if v := envOrBlob(EnvPatterns, blobField(func(b *BlobInfo) string { return b.Patterns })); v != "" {
		r.read = Globs(strings.Fields(v))
	}
	if v := envOrBlob(EnvEncryptedPatterns, blobField(func(b *BlobInfo) string { return b.EncryptedPatterns })); v != "" {
		r.decrypt = Globs(strings.Fields(v))
	}
	if v := envOrBlob(EnvExecutablePatterns, blobField(func(b *BlobInfo) string { return b.ExecutablePatterns })); v != "" {
		r.execute = Globs(strings.Fields(v))
	}
	r.encryptionKey = envOrBlob(EnvEncryptionKey, blobField(func(b *BlobInfo) string { return b.EncryptionKey }))
	r.executableArgsEnv = blobField(func(b *BlobInfo) string { return b.ExecutableArgsEnv })()
	return r
}

func blobField(get func(*BlobInfo) string) func() string {
	return func() string {
		if HostBlob != nil {
			return get(HostBlob)
		}
		return ""
	}
}

func envOrBlob(envName string, blobVal func() string) string {
	if v := blobVal(); v != "" {
		return v
	}
	return os.Getenv(envName)
}

// buildSearchPath constructs the ordered, deduplicated directory search
// path: the directories named by the configured envvars, or, only when
// those yield none, the default prc directory; each "<auto>" entry is
// resolved and the result is deduplicated by canonical path.
func buildSearchPath(p resolved) []string {
	var candidates []string

	dirEnvvars := envOrBlob(EnvDirEnvvars, blobField(func(b *BlobInfo) string { return b.DirEnvvars }))
	for _, envvar := range strings.Fields(dirEnvvars) {
		if v := os.Getenv(envvar); v != "" {
			candidates = append(candidates, v)
		}
	}

	pathEnvvars := envOrBlob(EnvPathEnvvars, blobField(func(b *BlobInfo) string { return b.PathEnvvars }))
	for _, envvar := range strings.Fields(pathEnvvars) {
		if v := os.Getenv(envvar); v != "" {
			for _, d := range filepathListSplit(v) {
				candidates = append(candidates, d)
			}
		}
	}

	for _, envvar := range strings.Fields(os.Getenv(EnvPath2Envvars)) {
		if v := os.Getenv(envvar); v != "" {
			for _, d := range strings.Fields(v) {
				candidates = append(candidates, d)
			}
		}
	}

	if len(candidates) == 0 {
		if v := envOrBlob(EnvDefaultPrcDir, blobField(func(b *BlobInfo) string { return b.DefaultPrcDir })); v != "" {
			candidates = append(candidates, v)
		}
	}

	resolvedDirs := resolveAutoAll(candidates, p)
	return dedupeCanonical(resolvedDirs)
}

// listDirsConcurrently lists every directory in dirs via
// [fsx.ListReverse], running the (independent, per-directory)
// filesystem calls concurrently, then returns results in dirs' original
// order — discovery's ordering guarantee (search-path order, then
// reverse-alphabetical within a directory) depends only on the merge
// step, not on which directory's listing happens to finish first.
func listDirsConcurrently(dirs []string) [][]string {
	out := make([][]string, len(dirs))
	g, _ := errgroup.WithContext(context.Background())
	for i, dir := range dirs {
		i, dir := i, dir
		g.Go(func() error {
			names, err := fsx.ListReverse(dir)
			if err == nil {
				out[i] = names
			}
			return nil
		})
	}
	g.Wait()
	return out
}

// resolveAutoAll expands "~" and resolves any "<auto>" prefix in each
// candidate directory, concurrently — each directory's resolution is
// independent, and results are merged back in the caller's original
// order so the result stays deterministic.
func resolveAutoAll(candidates []string, p resolved) []string {
	out := make([]string, len(candidates))
	ok := make([]bool, len(candidates))
	g, _ := errgroup.WithContext(context.Background())
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			expanded, err := homedir.Expand(c)
			if err != nil {
				expanded = c
			}
			dir, good := resolveAuto(expanded, p)
			if good {
				out[i] = dir
				ok[i] = true
			}
			return nil
		})
	}
	g.Wait()
	result := make([]string, 0, len(candidates))
	for i, o := range out {
		if ok[i] {
			result = append(result, o)
		}
	}
	return result
}

const autoPrefix = "<auto>"

// resolveAuto implements the "<auto>" resolution rule: a "<auto>"
// prefix tells the loader to scan upward from the executable's own
// directory (then MAIN_DIR) until it finds a directory containing a
// file matching the read or execute patterns.
func resolveAuto(dir string, p resolved) (string, bool) {
	if !strings.HasPrefix(dir, autoPrefix) {
		return dir, true
	}
	suffix := strings.TrimPrefix(dir, autoPrefix)
	matches := func(name string) bool {
		return p.read.Match(name) || p.execute.Match(name)
	}

	if exe, err := os.Executable(); err == nil {
		if found, ok := fsx.ScanUpFrom(dirOf(exe), suffix, matches); ok {
			return found, true
		}
	}
	if mainDir := envOrBlob(EnvMainDir, blobField(func(b *BlobInfo) string { return b.MainDir })); mainDir != "" {
		if found, ok := fsx.ScanUpFrom(mainDir, suffix, matches); ok {
			return found, true
		}
	}
	errors.Warn(errors.Errorf("prc: could not resolve %s", dir))
	return "", false
}

func dirOf(path string) string {
	i := strings.LastIndexAny(path, "/\\")
	if i < 0 {
		return "."
	}
	return path[:i]
}

func dedupeCanonical(dirs []string) []string {
	seen := make(map[string]bool, len(dirs))
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		canon, err := fsx.Canonical(d)
		if err != nil {
			canon = d
		}
		if seen[canon] {
			continue
		}
		seen[canon] = true
		out = append(out, d)
	}
	return out
}

func filepathListSplit(v string) []string {
	return strings.FieldsFunc(v, func(r rune) bool { return r == os.PathListSeparator })
}
