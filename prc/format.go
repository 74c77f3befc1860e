// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"pandacore.dev/engine/base/errors"
)

// parseStructured decodes a TOML or YAML page into the same
// Declaration model parsePrcText produces. Panda3D only ever had
// line-oriented ".prc" text; a flat `variable = value` or
// `variable: value` top-level document maps onto the same
// [Declaration] model with no change to priority or lookup semantics.
// Tables/mappings are flattened to any depth, with nested keys joined
// by "."; an array yields one declaration per element under the same
// name, and the last of them shadows the others on lookup.
func parseStructured(data []byte, name, source string) ([]Declaration, error) {
	var raw map[string]any
	var err error
	switch {
	case strings.HasSuffix(name, ".toml"):
		err = toml.Unmarshal(data, &raw)
	case strings.HasSuffix(name, ".yaml"), strings.HasSuffix(name, ".yml"):
		err = yaml.Unmarshal(data, &raw)
	default:
		return nil, errors.Errorf("prc: %s: unrecognized structured page extension", name)
	}
	if err != nil {
		return nil, errors.Wrap(err)
	}
	return flattenStructured(raw, "", source), nil
}

func flattenStructured(m map[string]any, prefix, source string) []Declaration {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []Declaration
	for _, k := range keys {
		full := k
		if prefix != "" {
			full = prefix + "." + k
		}
		switch v := m[k].(type) {
		case map[string]any:
			out = append(out, flattenStructured(v, full, source)...)
		case []any:
			for _, item := range v {
				out = append(out, Declaration{VarName: full, Value: fmt.Sprint(item), Source: source})
			}
		default:
			out = append(out, Declaration{VarName: full, Value: fmt.Sprint(v), Source: source})
		}
	}
	return out
}
