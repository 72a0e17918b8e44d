// Package i18n holds the Korean and Japanese UI strings.
//
// Lookups fall back to Korean, then to the key itself. Placeholders are
// written {{name}}.
package i18n

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/naveenspark/langgpt/internal/storage"
)

// Lang is a supported UI language.
type Lang string

// Supported languages.
const (
	Ko Lang = "ko"
	Ja Lang = "ja"
)

// Fallback is used when nothing else matches.
const Fallback = Ko

var matcher = language.NewMatcher([]language.Tag{language.Korean, language.Japanese})

// ParseLang accepts "ko", "ja" and any BCP 47 or POSIX locale naming one
// of them ("ja-JP", "ko_KR.UTF-8").
func ParseLang(s string) (Lang, bool) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, "_", "-")
	if s == "" || s == "C" || s == "POSIX" {
		return "", false
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return "", false
	}
	if idx == 1 {
		return Ja, true
	}
	return Ko, true
}

// Detect picks the UI language: a stored preference first, then the
// POSIX locale variables, then Fallback.
func Detect(store storage.Store, getenv func(string) string) Lang {
	if store != nil {
		if v, err := store.Get(storage.LanguageKey); err == nil {
			if l, ok := ParseLang(v); ok {
				return l
			}
		}
	}
	if getenv != nil {
		for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
			if l, ok := ParseLang(getenv(name)); ok {
				return l
			}
		}
	}
	return Fallback
}

// Lookup translates key into lang, substituting {{name}} placeholders
// from kv, given as name, value pairs.
func Lookup(lang Lang, key string, kv ...string) string {
	s, ok := catalog[lang][key]
	if !ok {
		s, ok = catalog[Fallback][key]
	}
	if !ok {
		s = key
	}
	return interpolate(s, kv)
}

func interpolate(s string, kv []string) string {
	if len(kv) == 0 || !strings.Contains(s, "{{") {
		return s
	}
	pairs := make([]string, 0, len(kv))
	for i := 0; i+1 < len(kv); i += 2 {
		pairs = append(pairs, "{{"+kv[i]+"}}", kv[i+1])
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

// Translator is the current UI language. It is safe for concurrent use.
type Translator struct {
	store storage.Store

	mu   sync.RWMutex
	lang Lang
}

// New returns a Translator starting in lang. store may be nil, in which
// case language changes are not persisted.
func New(store storage.Store, lang Lang) *Translator {
	if lang != Ko && lang != Ja {
		lang = Fallback
	}
	return &Translator{store: store, lang: lang}
}

// Lang returns the active language.
func (t *Translator) Lang() Lang {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lang
}

// T translates key into the active language.
func (t *Translator) T(key string, kv ...string) string {
	return Lookup(t.Lang(), key, kv...)
}

// SetLanguage switches the active language and persists the choice.
func (t *Translator) SetLanguage(lang Lang) error {
	if lang != Ko && lang != Ja {
		return fmt.Errorf("i18n: unsupported language %q", lang)
	}
	t.mu.Lock()
	t.lang = lang
	t.mu.Unlock()

	if t.store == nil {
		return nil
	}
	if err := t.store.Set(storage.LanguageKey, string(lang)); err != nil {
		return fmt.Errorf("i18n.SetLanguage: %w", err)
	}
	return nil
}

// Toggle switches between Korean and Japanese.
func (t *Translator) Toggle() (Lang, error) {
	next := Ja
	if t.Lang() == Ja {
		next = Ko
	}
	return next, t.SetLanguage(next)
}
