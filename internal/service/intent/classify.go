package intent

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/heartmarshall/regatta-backend/internal/adapter/llm"
	"github.com/heartmarshall/regatta-backend/internal/domain"
)

// Classify never fails. Local rules are tried first, then the external
// classifier. An unusable reply, empty replies included, falls back to the
// name heuristic; an unreachable classifier yields an unknown intent.
func (c *Classifier) Classify(ctx context.Context, text string) domain.Intent {
	text = strings.TrimSpace(text)
	if text == "" {
		return c.done("empty", domain.Unknown(""))
	}

	for _, r := range rules {
		if in, ok := r.match(text); ok {
			return c.done(r.name, in)
		}
	}

	if c.llm == nil {
		return c.done("unavailable", domain.Unknown(text))
	}

	raw, err := c.llm.Complete(ctx, systemPrompt, text)
	if errors.Is(err, llm.ErrEmptyResponse) {
		raw, err = "", nil
	}
	if err != nil {
		c.metrics.ClassifierError()
		c.log.WarnContext(ctx, "classifier unavailable", slog.String("error", err.Error()))
		return c.done("unavailable", domain.Unknown(text))
	}

	in, err := parseReply(raw, text)
	if err != nil {
		c.log.WarnContext(ctx, "unusable classifier reply",
			slog.String("error", err.Error()),
			slog.String("reply", truncate(raw, 200)),
		)
		if looksLikeName(text) {
			return c.done("name_heuristic", domain.SailorSearch(text))
		}
		return c.done("fallback", domain.Unknown(text))
	}

	return c.done("classifier", in)
}

func (c *Classifier) done(strategy string, in domain.Intent) domain.Intent {
	c.metrics.IntentClassified(strategy, in.Type.String())
	return in
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
