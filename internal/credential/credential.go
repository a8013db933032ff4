// Package credential reads dashboard credentials from an INI file shared
// with the inventory tool.
package credential

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

var (
	ErrUnreadable      = errors.New("cannot read credential file")
	ErrSectionNotFound = errors.New("credential section not found")
	ErrMissingURL      = errors.New("credential section has no url")
	ErrBadValue        = errors.New("malformed credential value")
)

// ConfigError reports a credential file that cannot be used.
type ConfigError struct {
	Path    string
	Section string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Path, e.Section, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Credentials are the key/value pairs of one credential file section.
type Credentials struct {
	section string
	values  map[string]string
}

// Section returns the name of the section the values were read from.
func (c Credentials) Section() string { return c.section }

// URL returns the dashboard base URL.
func (c Credentials) URL() string { return c.values["url"] }

// Get returns the value stored under key.
func (c Credentials) Get(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Keys returns the sorted key names.
func (c Credentials) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load reads section from the INI file at path. Key names are matched
// case-insensitively and stored lower case; section names are not. Values
// are plain literals: surrounding whitespace and one pair of matching
// quotes are removed.
func Load(path, section string) (Credentials, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		InsensitiveKeys:         true,
		PreserveSurroundedQuote: true,
	}, path)
	if err != nil {
		return Credentials{}, &ConfigError{Path: path, Err: fmt.Errorf("%w: %v", ErrUnreadable, err)}
	}

	if !f.HasSection(section) {
		return Credentials{}, &ConfigError{Path: path, Section: section, Err: ErrSectionNotFound}
	}
	sec := f.Section(section)

	creds := Credentials{section: section, values: make(map[string]string)}
	for _, key := range sec.Keys() {
		v, err := parseLiteral(key.Value())
		if err != nil {
			return Credentials{}, &ConfigError{Path: path, Section: section, Err: fmt.Errorf("%s: %w", key.Name(), err)}
		}
		creds.values[key.Name()] = v
	}

	if creds.URL() == "" {
		return Credentials{}, &ConfigError{Path: path, Section: section, Err: ErrMissingURL}
	}
	return creds, nil
}

func parseLiteral(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if len(s) < 2 {
		return s, nil
	}
	switch first, last := s[0], s[len(s)-1]; {
	case first == '"' && last == '"':
		v, err := strconv.Unquote(s)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrBadValue, s)
		}
		return v, nil
	case first == '\'' && last == '\'':
		return s[1 : len(s)-1], nil
	case first == '"' || first == '\'':
		return "", fmt.Errorf("%w: unterminated quote in %s", ErrBadValue, s)
	}
	return s, nil
}
