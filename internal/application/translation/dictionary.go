package translation

import "strings"

// dictionary is the last-resort word list used when the external service
// yields nothing. It only covers exact short phrases; sentences are left
// alone rather than mangled word by word.
var dictionary = map[string]map[string]string{
	"ms": {
		"saya":         "I",
		"anda":         "you",
		"tidak":        "no",
		"ya":           "yes",
		"terima kasih": "thank you",
		"maaf":         "sorry",
		"tolong":       "help",
		"bantuan":      "help",
	},
	"vi": {
		"tôi":      "I",
		"bạn":      "you",
		"không":    "no",
		"có":       "yes",
		"xin chào": "hello",
		"cảm ơn":   "thank you",
	},
}

// lookupDictionary returns the fallback translation for an exact phrase, or
// ("", false) when the source language or phrase is not covered.
func lookupDictionary(text, source string) (string, bool) {
	words, ok := dictionary[source]
	if !ok {
		return "", false
	}
	translated, ok := words[strings.ToLower(strings.TrimSpace(text))]
	return translated, ok
}
