package translation

import (
	"context"
	"strings"

	"parley/internal/shared/errors"
	"parley/internal/shared/logger"
)

// Client calls an external translation backend. A failed or useless call is
// reported as an error or an empty string; the service absorbs both.
type Client interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Limiter gates outbound calls.
type Limiter interface {
	Wait(ctx context.Context) error
}

type Command struct {
	Text   string
	Target string
}

type Result struct {
	Translated string
	Source     string
	Target     string
	Changed    bool
	Note       string
	Method     string
}

const (
	MethodExternal   = "external_api"
	MethodDictionary = "dictionary_fallback"
)

// Service is the best-effort translator. Translation never blocks the desk:
// any failure past input validation degrades to returning the original text
// with a note, not an error.
type Service struct {
	detector Detector
	client   Client
	limiter  Limiter
	logger   logger.Interface
}

func NewService(detector Detector, client Client, limiter Limiter, logger logger.Interface) *Service {
	return &Service{
		detector: detector,
		client:   client,
		limiter:  limiter,
		logger:   logger,
	}
}

func (s *Service) Translate(ctx context.Context, cmd Command) (*Result, error) {
	text := strings.TrimSpace(cmd.Text)
	if text == "" {
		return nil, errors.NewValidationError("text is required")
	}

	target := strings.ToLower(strings.TrimSpace(cmd.Target))
	if target == "" {
		target = "en"
	}

	source := s.detector.Detect(text).String()

	if source == target || source == "en" {
		return &Result{
			Translated: text,
			Source:     source,
			Target:     target,
			Note:       "already in English or target language",
		}, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		s.logger.Warnw("translation throttled out", "error", err)
		return s.unavailable(text, source, target), nil
	}

	translated, err := s.client.Translate(ctx, text, source, target)
	if err != nil {
		s.logger.Warnw("external translation failed", "error", err, "source", source, "target", target)
	} else if translated != "" && !strings.EqualFold(strings.TrimSpace(translated), text) {
		return &Result{
			Translated: translated,
			Source:     source,
			Target:     target,
			Changed:    true,
			Method:     MethodExternal,
		}, nil
	}

	if fallback, ok := lookupDictionary(text, source); ok && !strings.EqualFold(fallback, text) {
		return &Result{
			Translated: fallback + " (basic translation)",
			Source:     source,
			Target:     target,
			Changed:    true,
			Method:     MethodDictionary,
		}, nil
	}

	return s.unavailable(text, source, target), nil
}

func (s *Service) unavailable(text, source, target string) *Result {
	return &Result{
		Translated: text,
		Source:     source,
		Target:     target,
		Note:       "translation not available for this text",
	}
}
