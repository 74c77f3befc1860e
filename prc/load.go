// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prc

import (
	"os"
	"path/filepath"

	"github.com/mattn/go-shellwords"

	"pandacore.dev/engine/base/errors"
	"pandacore.dev/engine/base/execx"
)

// discoveredFile is one filesystem entry found while walking the search
// path, already tagged with the loading behavior it matched.
type discoveredFile struct {
	dir   string
	name  string
	flags FileFlag
}

func (f discoveredFile) path() string { return filepath.Join(f.dir, f.name) }

// discoverFiles walks searchPath in priority order (most important
// first) and, within each directory, lists files in the
// reverse-alphabetical order [base/fsx.ListReverse] returns. Files matching none of the pattern lists are skipped.
func discoverFiles(searchPath []string, p resolved) []discoveredFile {
	listings := listDirsConcurrently(searchPath)

	var out []discoveredFile
	for i, dir := range searchPath {
		for _, name := range listings[i] {
			var flags FileFlag
			switch {
			case p.execute.Match(name):
				flags |= FlagExecute
			case p.decrypt.Match(name):
				flags |= FlagRead | FlagDecrypt
			case p.structured.Match(name):
				flags |= FlagStructured
			case p.read.Match(name):
				flags |= FlagRead
			}
			if flags == 0 {
				continue
			}
			out = append(out, discoveredFile{dir: dir, name: name, flags: flags})
		}
	}
	return out
}

// loadFiles turns each discovered file into a [*Page], in reverse
// discovery order (least important first) so that allocSeq hands out
// strictly increasing sequence numbers and the most important file ends
// up with the highest sequence number. If [HostBlob] carries inline
// PRC text, it is loaded first as a single lowest-priority "builtin"
// page, exactly as Panda3D's ConfigPageManager does before walking
// config_files.
func (m *Manager) loadFiles(files []discoveredFile, p resolved) []*Page {
	var pages []*Page

	if HostBlob != nil && HostBlob.PrcData != "" {
		page := NewPage("builtin", true, m.allocSeq())
		decls, sig := parsePrcText([]byte(HostBlob.PrcData), "builtin")
		for _, d := range decls {
			page.Declare(d.VarName, d.Value, d.Source)
		}
		page.Signature = sig
		page.Trust = Trust.Verify([]byte(HostBlob.PrcData), sig)
		pages = append(pages, page)
	}

	for i := len(files) - 1; i >= 0; i-- {
		page, err := m.loadOneFile(files[i], p)
		if err != nil {
			errors.Warn(err)
			continue
		}
		pages = append(pages, page)
	}
	return pages
}

func (m *Manager) loadOneFile(f discoveredFile, p resolved) (*Page, error) {
	data, err := os.ReadFile(f.path())
	if err != nil {
		return nil, errors.Wrap(err)
	}

	switch {
	case f.flags&FlagExecute != 0:
		var extra []string
		if p.executableArgsEnv != "" {
			if raw := os.Getenv(p.executableArgsEnv); raw != "" {
				parser := shellwords.NewParser()
				if parsed, err := parser.Parse(raw); err == nil {
					extra = parsed
				}
			}
		}
		out, err := execx.Output(f.path(), nil, extra)
		if err != nil {
			return nil, errors.Wrap(err)
		}
		return m.buildTextPage(f, out)

	case f.flags&FlagDecrypt != 0:
		plain, err := decryptPage(data, p.encryptionKey)
		if err != nil {
			return nil, err
		}
		return m.buildTextPage(f, plain)

	case f.flags&FlagStructured != 0:
		page := NewPage(f.path(), true, m.allocSeq())
		decls, err := parseStructured(data, f.name, f.path())
		if err != nil {
			return nil, err
		}
		for _, d := range decls {
			page.Declare(d.VarName, d.Value, d.Source)
		}
		return page, nil

	default:
		return m.buildTextPage(f, data)
	}
}

func (m *Manager) buildTextPage(f discoveredFile, data []byte) (*Page, error) {
	page := NewPage(f.path(), true, m.allocSeq())
	decls, sig := parsePrcText(data, f.path())
	for _, d := range decls {
		page.Declare(d.VarName, d.Value, d.Source)
	}
	page.Signature = sig
	if len(sig) > 0 {
		page.Trust = Trust.Verify(data, sig)
	}
	return page, nil
}

func (m *Manager) allocSeq() int64 {
	m.mu.Lock()
	seq := m.nextPageSeq
	m.nextPageSeq++
	m.mu.Unlock()
	return seq
}

