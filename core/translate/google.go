package translate

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

const googleEndpoint = "https://translate.googleapis.com/translate_a/single"

// google uses the public gtx endpoint, which needs no key.
type google struct {
	httpBackend
}

func newGoogle(cfg Config, client *http.Client) (Backend, error) {
	return &google{newHTTPBackend(cfg, client, googleEndpoint)}, nil
}

func (g *google) Name() string { return string(ServiceGoogle) }

func (g *google) Translate(ctx context.Context, text, targetLang string) (string, error) {
	source := g.source
	if source == "" {
		source = DefaultSourceLanguage
	}
	query := url.Values{
		"client": {"gtx"},
		"sl":     {source},
		"tl":     {targetLang},
		"dt":     {"t"},
	}
	req, err := formRequest(ctx, g.endpoint+"?"+query.Encode(), url.Values{"q": {text}})
	if err != nil {
		return "", err
	}

	// The response is a nested array; the first element holds
	// [translated, original, ...] segments.
	var raw []any
	if err := g.do(req, &raw); err != nil {
		return "", err
	}
	return parseGoogleSegments(raw)
}

func parseGoogleSegments(raw []any) (string, error) {
	if len(raw) == 0 {
		return "", errors.New("google: empty response")
	}
	segments, ok := raw[0].([]any)
	if !ok {
		return "", errors.New("google: unexpected response shape")
	}
	var b strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if s, ok := parts[0].(string); ok {
			b.WriteString(s)
		}
	}
	if b.Len() == 0 {
		return "", errors.New("google: no translated segments")
	}
	return b.String(), nil
}
