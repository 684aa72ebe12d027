package speech

import (
	"strings"

	"github.com/alnah/go-codestory/internal/lang"
)

// Gender is the guessed gender of a voice.
type Gender int

// Gender values.
const (
	Neutral Gender = iota
	Female
	Male
)

func (g Gender) String() string {
	switch g {
	case Female:
		return "female"
	case Male:
		return "male"
	default:
		return "neutral"
	}
}

// ParseGender maps "female" and "male" to their Gender. Anything else is
// Neutral.
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "female":
		return Female
	case "male":
		return Male
	default:
		return Neutral
	}
}

// Voice is one installed engine voice.
type Voice struct {
	Name   string
	Locale string
}

var (
	femaleKeywords = []string{
		"female", "woman", "zira", "helena", "sabina", "karen", "moira",
		"tessa", "veena", "raveena", "kendra", "joanna", "salli",
		"neerja", "aditi", "priya", "shruti",
	}
	maleKeywords = []string{
		"male", "man", "david", "mark", "richard", "ryan", "kevin",
		"matthew", "justin", "joey", "geraint", "rishi", "anuj",
	}
)

// Gender guesses the voice gender from keywords in its name. Female
// keywords win, so "female" is never read as "male".
func (v Voice) Gender() Gender {
	name := strings.ToLower(v.Name)
	for _, k := range femaleKeywords {
		if strings.Contains(name, k) {
			return Female
		}
	}
	for _, k := range maleKeywords {
		if strings.Contains(name, k) {
			return Male
		}
	}
	return Neutral
}

// SelectVoice picks the best voice for a language. Voices whose locale
// shares the language's two-letter prefix are preferred, falling back to
// English voices. Within that set the preferred gender wins, then any
// voice, then the first installed voice.
func SelectVoice(voices []Voice, code string, preferred Gender) (Voice, bool) {
	if len(voices) == 0 {
		return Voice{}, false
	}

	candidates := voicesWithPrefix(voices, localePrefix(lang.VoiceLocale(code)))
	if len(candidates) == 0 {
		candidates = voicesWithPrefix(voices, "en")
	}

	if preferred != Neutral {
		for _, v := range candidates {
			if v.Gender() == preferred {
				return v, true
			}
		}
	}
	if len(candidates) > 0 {
		return candidates[0], true
	}
	return voices[0], true
}

func voicesWithPrefix(voices []Voice, prefix string) []Voice {
	var out []Voice
	for _, v := range voices {
		if strings.HasPrefix(strings.ToLower(v.Locale), prefix) {
			out = append(out, v)
		}
	}
	return out
}

func localePrefix(locale string) string {
	locale = strings.ToLower(locale)
	if len(locale) > 2 {
		return locale[:2]
	}
	return locale
}
