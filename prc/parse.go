// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prc

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

const signatureMarker = "#### BEGIN SIGNATURE ####"

// parsePrcText parses one page's worth of ".prc" text: whitespace-led
// comment lines starting with '#' are skipped, blank lines are skipped,
// and every other line is split on the first run of whitespace into a
// variable name and the remainder of the line as its value. A trailing
// signature block, if present, is split off and returned separately
// rather than being parsed as declarations.
func parsePrcText(data []byte, source string) (lines []Declaration, signature []byte) {
	text := string(data)
	if i := strings.Index(text, signatureMarker); i >= 0 {
		signature = []byte(strings.TrimSpace(text[i+len(signatureMarker):]))
		text = text[:i]
	}

	scanner := bufio.NewScanner(bytes.NewReader([]byte(text)))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := []string{line}
		if i := strings.IndexAny(line, " \t"); i >= 0 {
			fields = []string{line[:i], line[i+1:]}
		}
		name := fields[0]
		if i := strings.IndexAny(name, "\t"); i >= 0 {
			// A variable name followed immediately by a tab with no
			// intervening space still splits correctly.
			name = strings.Fields(line)[0]
		}
		value := ""
		if len(fields) > 1 {
			value = strings.TrimSpace(fields[1])
		} else {
			rest := strings.Fields(line)
			if len(rest) > 1 {
				name = rest[0]
				value = strings.Join(rest[1:], " ")
			}
		}
		lines = append(lines, Declaration{
			VarName: name,
			Value:   value,
			Source:  fmt.Sprintf("%s:%d", source, lineNo),
		})
	}
	return lines, signature
}
