// Package lang holds the table of reader languages and their mappings to
// speech locales and translation backend codes.
package lang

import "strings"

// Frontend language codes.
const (
	English  = "en"
	Hindi    = "hi"
	Telugu   = "te"
	Hinglish = "hinglish"
	Telgish  = "telgish"
)

// Default is the source language of every generated tutorial.
const Default = English

// Language describes one reader language.
type Language struct {
	Code string
	Name string

	// VoiceLocale is the BCP 47 tag handed to the speech capability.
	VoiceLocale string

	// TranslatorCode is the code sent to translation backends that only
	// know ISO 639-1 codes. Mixed languages translate through their base.
	TranslatorCode string
}

var languages = []Language{
	{Code: English, Name: "English", VoiceLocale: "en-US", TranslatorCode: "en"},
	{Code: Hindi, Name: "Hindi", VoiceLocale: "hi-IN", TranslatorCode: "hi"},
	{Code: Telugu, Name: "Telugu", VoiceLocale: "te-IN", TranslatorCode: "te"},
	{Code: Hinglish, Name: "Hinglish", VoiceLocale: "en-IN", TranslatorCode: "hi"},
	{Code: Telgish, Name: "Telgish", VoiceLocale: "en-IN", TranslatorCode: "te"},
}

// Supported returns the supported frontend codes in display order.
func Supported() []string {
	codes := make([]string, len(languages))
	for i, l := range languages {
		codes[i] = l.Code
	}
	return codes
}

// Lookup returns the language for code, matched case-insensitively.
func Lookup(code string) (Language, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, l := range languages {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// IsSupported reports whether code names a supported language.
func IsSupported(code string) bool {
	_, ok := Lookup(code)
	return ok
}

// Normalize returns the canonical form of code, or Default when the code is
// not supported.
func Normalize(code string) string {
	if l, ok := Lookup(code); ok {
		return l.Code
	}
	return Default
}

// Name returns the display name of code, or code itself when unknown.
func Name(code string) string {
	if l, ok := Lookup(code); ok {
		return l.Name
	}
	return code
}

// VoiceLocale returns the speech locale for code, defaulting to en-US.
func VoiceLocale(code string) string {
	if l, ok := Lookup(code); ok {
		return l.VoiceLocale
	}
	return "en-US"
}

// TranslatorCode returns the ISO 639-1 code used by translation backends.
// Unknown codes pass through unchanged.
func TranslatorCode(code string) string {
	if l, ok := Lookup(code); ok {
		return l.TranslatorCode
	}
	return code
}
