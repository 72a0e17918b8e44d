package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenspark/langgpt/internal/storage"
)

func TestCatalogsHaveSameKeys(t *testing.T) {
	for key := range catalog[Ko] {
		assert.Contains(t, catalog[Ja], key)
	}
	for key := range catalog[Ja] {
		assert.Contains(t, catalog[Ko], key)
	}
}

func TestLookup(t *testing.T) {
	assert.Equal(t, "비밀번호가 일치하지 않습니다.", Lookup(Ko, "errors.password_mismatch"))
	assert.Equal(t, "パスワードが一致しません。", Lookup(Ja, "errors.password_mismatch"))
	assert.Equal(t, "mina님, 환영합니다", Lookup(Ko, "nav.welcome", "username", "mina"))
	assert.Equal(t, "minaさん、ようこそ", Lookup(Ja, "nav.welcome", "username", "mina"))
	assert.Equal(t, "no.such.key", Lookup(Ja, "no.such.key"))
	assert.Equal(t, Lookup(Ko, "loading"), Lookup(Lang("fr"), "loading"))
}

func TestParseLang(t *testing.T) {
	tests := []struct {
		in   string
		want Lang
		ok   bool
	}{
		{"ko", Ko, true},
		{"ja", Ja, true},
		{"ja_JP.UTF-8", Ja, true},
		{"ko-KR", Ko, true},
		{"en_US.UTF-8", "", false},
		{"C", "", false},
		{"", "", false},
		{"!!", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLang(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetect(t *testing.T) {
	env := func(m map[string]string) func(string) string {
		return func(k string) string { return m[k] }
	}

	st := storage.NewMemoryStore()
	assert.Equal(t, Ko, Detect(st, env(nil)))
	assert.Equal(t, Ja, Detect(st, env(map[string]string{"LANG": "ja_JP.UTF-8"})))
	assert.Equal(t, Ko, Detect(st, env(map[string]string{"LANG": "ja_JP.UTF-8", "LC_ALL": "ko_KR.UTF-8"})))
	assert.Equal(t, Ko, Detect(st, env(map[string]string{"LANG": "en_US.UTF-8"})))

	require.NoError(t, st.Set(storage.LanguageKey, "ja"))
	assert.Equal(t, Ja, Detect(st, env(map[string]string{"LANG": "ko_KR.UTF-8"})))
	assert.Equal(t, Ko, Detect(nil, nil))
}

func TestTranslatorPersistsLanguage(t *testing.T) {
	st := storage.NewMemoryStore()
	tr := New(st, Ko)
	assert.Equal(t, "번역 기록", tr.T("nav.history"))

	lang, err := tr.Toggle()
	require.NoError(t, err)
	assert.Equal(t, Ja, lang)
	assert.Equal(t, "翻訳履歴", tr.T("nav.history"))

	v, err := st.Get(storage.LanguageKey)
	require.NoError(t, err)
	assert.Equal(t, "ja", v)

	require.Error(t, tr.SetLanguage("fr"))
	assert.Equal(t, Ja, tr.Lang())
}
