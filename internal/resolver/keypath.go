// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package resolver

import "strings"

// DerivePath computes the canonical coordination-service key for a named
// parameter: `/{directory}/{parameter}`, or
// `/{directory}/{environment}/{parameter}` when environment is non-empty.
// An explicit remote path in a property definition bypasses derivation
// entirely; this function is only consulted when none is given.
func DerivePath(directory, parameter, environment string) string {
	var b strings.Builder
	b.WriteString("/")
	b.WriteString(directory)
	b.WriteString("/")
	if environment != "" {
		b.WriteString(environment)
		b.WriteString("/")
	}
	b.WriteString(parameter)

	return b.String()
}

// InScope reports whether a key path lies inside the service's writable
// subtree. A path qualifies only when it carries at least three non-empty
// segments: `/{dir}/{sub}/{param}` is in scope, the shallower
// `/{dir}/{param}` and `/{dir}` are not. Bare top-level keys under the
// service directory therefore require the explicit out-of-scope override.
func InScope(keyPath string) bool {
	var segments int
	for _, segment := range strings.Split(keyPath, "/") {
		if segment != "" {
			segments++
		}
	}

	return segments >= 3
}
