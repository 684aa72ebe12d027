package translate

import (
	"context"
	"errors"
	"strings"
)

// Chain tries each translator in order and returns the first non-blank
// result. When all of them fail the joined errors are returned.
type Chain []Translator

// Translate implements Translator.
func (c Chain) Translate(ctx context.Context, text, source, target string) (string, error) {
	if len(c) == 0 {
		return "", errors.New("empty translator chain")
	}

	var errs []error
	for _, t := range c {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		out, err := t.Translate(ctx, text, source, target)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if strings.TrimSpace(out) == "" {
			errs = append(errs, ErrEmptyTranslation)
			continue
		}
		return out, nil
	}
	return "", errors.Join(errs...)
}

var _ Translator = Chain(nil)
