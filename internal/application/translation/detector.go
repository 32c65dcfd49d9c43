package translation

import (
	"strings"

	"golang.org/x/text/language"
)

// Detector guesses the language of a message. Implementations are
// interchangeable; the default is a cheap heuristic good enough to decide
// whether a translation call is worth making at all.
type Detector interface {
	Detect(text string) language.Tag
}

// HeuristicDetector scores a few scripts and keyword lists. It only has to
// separate the languages the desk actually sees; anything else falls through
// to English, which short-circuits translation.
type HeuristicDetector struct{}

func NewHeuristicDetector() *HeuristicDetector {
	return &HeuristicDetector{}
}

var malayWords = []string{
	"saya", "anda", "dengan", "untuk", "dari", "ini", "itu", "yang",
	"ada", "tidak", "dia", "terima kasih", "selamat", "tolong",
	"masalah", "bagaimana",
}

var vietnameseChars = []string{
	"ă", "â", "đ", "ê", "ô", "ơ", "ư", "à", "á", "ả", "ã", "ạ",
}

var vietnameseWords = []string{
	"tôi", "bạn", "với", "để", "từ", "không", "mà", "có", "anh",
	"chị", "xin chào", "cảm ơn", "giúp", "vấn đề",
}

func (d *HeuristicDetector) Detect(text string) language.Tag {
	if text == "" {
		return language.English
	}
	lower := strings.ToLower(text)

	for _, w := range malayWords {
		if strings.Contains(lower, w) {
			return language.Malay
		}
	}

	for _, r := range text {
		if r >= 0x0E00 && r <= 0x0E7F {
			return language.Thai
		}
		if r >= 0x1780 && r <= 0x17FF {
			return language.Khmer
		}
	}

	for _, c := range vietnameseChars {
		if strings.Contains(lower, c) {
			return language.Vietnamese
		}
	}
	for _, w := range vietnameseWords {
		if strings.Contains(lower, w) {
			return language.Vietnamese
		}
	}

	return language.English
}
