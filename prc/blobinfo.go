// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prc

// BlobInfo mirrors an optional host-exported record: a packager can
// bake configuration into the binary, and any non-empty field here
// supersedes the matching environment variable during
// [Manager.ReloadImplicitPages]. Panda3D's equivalent
// is a C struct read via dlsym/GetProcAddress; a Go program instead
// just sets [BlobInfo] (typically from an init function in a generated
// file) before the first call to ReloadImplicitPages.
type BlobInfo struct {
	Version            int
	PrcData            string
	DefaultPrcDir      string
	DirEnvvars         string
	PathEnvvars        string
	Patterns           string
	EncryptedPatterns  string
	EncryptionKey      string
	ExecutablePatterns string
	ExecutableArgsEnv  string
	MainDir            string
}

// HostBlob is the process-wide blob-info record. It is nil unless the
// embedding application sets it before reloading implicit pages.
var HostBlob *BlobInfo
