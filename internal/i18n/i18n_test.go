// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package i18n

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestNew_Matching(t *testing.T) {
	tests := []struct {
		locale string
		want   language.Tag
	}{
		{"", language.English},
		{"en", language.English},
		{"en-GB", language.English},
		{"tr", language.Turkish},
		{"tr_TR.UTF-8", language.Turkish},
		{"tr-TR", language.Turkish},
		{"de", language.English},
		{"not a locale!", language.English},
	}

	for _, tc := range tests {
		t.Run(tc.locale, func(t *testing.T) {
			l, err := New(tc.locale)
			require.NoError(t, err)
			base, _ := l.Language().Base()
			wantBase, _ := tc.want.Base()
			assert.Equal(t, wantBase, base)
		})
	}
}

func TestT(t *testing.T) {
	en := MustNew("en")
	tr := MustNew("tr")

	assert.Equal(t, "Sign In", en.T("signin.title"))
	assert.Equal(t, "Giriş Yap", tr.T("signin.title"))
	assert.Equal(t, "Geçersiz email", tr.T("validation.email_invalid"))
	assert.Equal(t, "no.such.key", en.T("no.such.key"))
	assert.Equal(t, "Signed in as a@b.com", en.Tf("signin.welcome", "a@b.com"))
}

// Every key in every catalog must exist in every other catalog.
func TestCatalogs_SameKeys(t *testing.T) {
	Languages()
	en := catalogs[Fallback]
	require.NotEmpty(t, en)

	for tag, msgs := range catalogs {
		var missing, extra []string
		for k := range en {
			if _, ok := msgs[k]; !ok {
				missing = append(missing, k)
			}
		}
		for k := range msgs {
			if _, ok := en[k]; !ok {
				extra = append(extra, k)
			}
		}
		sort.Strings(missing)
		sort.Strings(extra)
		assert.Empty(t, missing, "%s is missing keys", tag)
		assert.Empty(t, extra, "%s has keys not in %s", tag, Fallback)
	}
}

func TestLanguages_FallbackFirst(t *testing.T) {
	langs := Languages()
	require.GreaterOrEqual(t, len(langs), 2)
	assert.Equal(t, Fallback, langs[0])
}

func TestDetectLocale(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "tr_TR.UTF-8")

	assert.Equal(t, "en", DetectLocale("en"))
	assert.Equal(t, "tr_TR.UTF-8", DetectLocale(""))

	t.Setenv("LANG", "C")
	assert.Equal(t, "", DetectLocale(""))
}

func TestActive_Swap(t *testing.T) {
	a := NewActive(MustNew("en"))
	assert.Equal(t, "Sign In", a.T("signin.title"))

	a.Set(MustNew("tr"))
	assert.Equal(t, language.Turkish, a.Current().Language())
	assert.NotEqual(t, "Sign In", a.T("signin.title"))
	assert.Contains(t, a.Tf("page.signed_in_as", "a@b.com"), "a@b.com")
}
