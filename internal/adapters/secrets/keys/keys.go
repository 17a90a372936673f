// Package keys maps credential references onto backend entry names.
package keys

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Entry turns a reference such as "pacer://maya/credential" into the slash
// separated entry "pacer/maya/credential". Plain relative keys pass through.
func Entry(ref string) (string, error) {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return "", errors.New("secret key is empty")
	}

	if scheme, rest, ok := strings.Cut(trimmed, "://"); ok {
		if scheme == "" || rest == "" {
			return "", fmt.Errorf("invalid secret key %q", ref)
		}
		trimmed = scheme + "/" + rest
	}

	cleaned := path.Clean(trimmed)
	if strings.HasPrefix(cleaned, "/") || cleaned == ".." || strings.HasPrefix(cleaned, "../") || cleaned == "." || strings.Contains(cleaned, `\`) {
		return "", fmt.Errorf("invalid secret key %q", ref)
	}

	return cleaned, nil
}
