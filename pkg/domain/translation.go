package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Direction selects the translation pair.
type Direction string

const (
	KoToJa Direction = "ko2ja"
	JaToKo Direction = "ja2ko"
)

// DefaultDirection is used when the user has not toggled the pair.
const DefaultDirection = KoToJa

// Valid reports whether d is one of the two supported pairs.
func (d Direction) Valid() bool {
	return d == KoToJa || d == JaToKo
}

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == JaToKo {
		return KoToJa
	}
	return JaToKo
}

// ParseDirection accepts "ko2ja" / "ja2ko" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("invalid direction %q: want %s or %s", s, KoToJa, JaToKo)
	}
	return d, nil
}

// TranslationResult is the /translate response: the source text, the
// first-pass draft and the reviewed final translation.
type TranslationResult struct {
	Original   string `json:"original"`
	Translated string `json:"translated"`
	Reviewed   string `json:"reviewed"`
}

// TranslationRecord is one server-owned history entry.
type TranslationRecord struct {
	ID             int64     `json:"id"`
	OriginalText   string    `json:"original_text"`
	TranslatedText string    `json:"translated_text"`
	ReviewedText   string    `json:"reviewed_text"`
	CreatedAt      Timestamp `json:"created_at"`
}

// Timestamp decodes the backend's created_at, which is an ISO-8601
// string that may or may not carry a zone offset.
type Timestamp struct {
	time.Time
}

// zoneless layouts are interpreted in local time, matching how the
// backend writes datetime.now().isoformat().
var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = parsed
		return nil
	}
	for _, layout := range zonelessLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("timestamp: unrecognized format %q", s)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}
