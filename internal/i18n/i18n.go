// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package i18n holds the user-facing copy of authshell.
//
// Catalogs are TOML files embedded in the binary, one per language. Nested
// tables flatten to dotted keys, so [signin] title = "Sign In" is looked up
// as "signin.title". Lookups fall back to English and then to the key.
package i18n

import (
	"embed"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
)

//go:embed catalogs/*.toml
var catalogFS embed.FS

// Fallback is the language used for missing keys.
var Fallback = language.English

var (
	loadOnce sync.Once
	loadErr  error
	catalogs map[language.Tag]map[string]string
	matcher  language.Matcher
	tags     []language.Tag
)

func load() {
	entries, err := catalogFS.ReadDir("catalogs")
	if err != nil {
		loadErr = fmt.Errorf("failed to list catalogs: %w", err)
		return
	}

	catalogs = make(map[language.Tag]map[string]string)
	for _, e := range entries {
		name := e.Name()
		tag, err := language.Parse(strings.TrimSuffix(name, path.Ext(name)))
		if err != nil {
			loadErr = fmt.Errorf("catalog %s has an invalid language name: %w", name, err)
			return
		}
		data, err := catalogFS.ReadFile("catalogs/" + name)
		if err != nil {
			loadErr = fmt.Errorf("failed to read catalog %s: %w", name, err)
			return
		}
		var raw map[string]any
		if _, err := toml.Decode(string(data), &raw); err != nil {
			loadErr = fmt.Errorf("failed to parse catalog %s: %w", name, err)
			return
		}
		flat := make(map[string]string)
		flatten("", raw, flat)
		catalogs[tag] = flat
	}

	if _, ok := catalogs[Fallback]; !ok {
		loadErr = fmt.Errorf("missing %s catalog", Fallback)
		return
	}

	// The fallback goes first so the matcher prefers it on no confidence.
	tags = []language.Tag{Fallback}
	for tag := range catalogs {
		if tag != Fallback {
			tags = append(tags, tag)
		}
	}
	sort.Slice(tags[1:], func(i, j int) bool { return tags[i+1].String() < tags[j+1].String() })
	matcher = language.NewMatcher(tags)
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// Languages returns the available catalog languages, fallback first.
func Languages() []language.Tag {
	loadOnce.Do(load)
	out := make([]language.Tag, len(tags))
	copy(out, tags)
	return out
}

// Localizer resolves keys for one language. It is immutable and safe for
// concurrent use.
type Localizer struct {
	tag      language.Tag
	messages map[string]string
	fallback map[string]string
}

// New returns a localizer for the best catalog match of locale, e.g. "tr",
// "tr_TR.UTF-8" or "en-GB". Unknown or empty locales get the fallback.
func New(locale string) (*Localizer, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, loadErr
	}

	tag := Fallback
	if want, err := language.Parse(normalizeLocale(locale)); err == nil {
		_, idx, conf := matcher.Match(want)
		if conf != language.No {
			tag = tags[idx]
		}
	}

	return &Localizer{
		tag:      tag,
		messages: catalogs[tag],
		fallback: catalogs[Fallback],
	}, nil
}

// MustNew is New for the embedded catalogs, which are known to load.
func MustNew(locale string) *Localizer {
	l, err := New(locale)
	if err != nil {
		panic(err)
	}
	return l
}

// Language returns the matched catalog language.
func (l *Localizer) Language() language.Tag {
	return l.tag
}

// T returns the message for key, the fallback language's message, or key.
func (l *Localizer) T(key string) string {
	if msg, ok := l.messages[key]; ok {
		return msg
	}
	if msg, ok := l.fallback[key]; ok {
		return msg
	}
	return key
}

// Tf formats the message for key with args.
func (l *Localizer) Tf(key string, args ...any) string {
	return fmt.Sprintf(l.T(key), args...)
}

// Has reports whether key exists in the localizer's own catalog.
func (l *Localizer) Has(key string) bool {
	_, ok := l.messages[key]
	return ok
}

// DetectLocale returns configured when set, otherwise the POSIX locale from
// the environment (LC_ALL, LC_MESSAGES, LANG), otherwise "".
func DetectLocale(configured string) string {
	if configured != "" {
		return configured
	}
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(env); v != "" && v != "C" && v != "POSIX" {
			return v
		}
	}
	return ""
}

// normalizeLocale turns a POSIX locale such as tr_TR.UTF-8@euro into a BCP 47
// tag string.
func normalizeLocale(locale string) string {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	return strings.ReplaceAll(locale, "_", "-")
}

// Active is a swappable localizer. Long-lived components hold an Active so a
// locale change reaches them without being rebuilt.
type Active struct {
	mu sync.RWMutex
	l  *Localizer
}

// NewActive returns an Active starting with l.
func NewActive(l *Localizer) *Active {
	return &Active{l: l}
}

// Set replaces the current localizer.
func (a *Active) Set(l *Localizer) {
	a.mu.Lock()
	a.l = l
	a.mu.Unlock()
}

// Current returns the current localizer.
func (a *Active) Current() *Localizer {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.l
}

// T resolves key with the current localizer.
func (a *Active) T(key string) string {
	return a.Current().T(key)
}

// Tf formats key with the current localizer.
func (a *Active) Tf(key string, args ...any) string {
	return a.Current().Tf(key, args...)
}
