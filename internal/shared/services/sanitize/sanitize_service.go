// Package sanitize strips markup from user-supplied message text. Messages
// are stored and rendered as plain text, so everything HTML-shaped goes.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

type Service interface {
	Sanitize(text string) string
}

type serviceImpl struct {
	policy *bluemonday.Policy
}

func NewService() Service {
	return &serviceImpl{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize removes all markup and returns trimmed plain text. Entities the
// policy escaped on the way through are unescaped again so "<3" survives as
// typed.
func (s *serviceImpl) Sanitize(text string) string {
	cleaned := s.policy.Sanitize(text)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}
