package translate

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

const papagoEndpoint = "https://openapi.naver.com/v1/papago/n2mt"

type papago struct {
	httpBackend
	clientID     string
	clientSecret string
}

// newPapago expects the api key as "clientID:clientSecret".
func newPapago(cfg Config, client *http.Client) (Backend, error) {
	id, secret, ok := strings.Cut(cfg.APIKey, ":")
	if !ok || id == "" || secret == "" {
		return nil, errors.New(`papago requires an api key of the form "clientID:clientSecret"`)
	}
	return &papago{
		httpBackend:  newHTTPBackend(cfg, client, papagoEndpoint),
		clientID:     id,
		clientSecret: secret,
	}, nil
}

func (p *papago) Name() string { return string(ServicePapago) }

func (p *papago) Translate(ctx context.Context, text, targetLang string) (string, error) {
	// n2mt has no auto-detection; the source sites publish Japanese.
	source := p.source
	if p.autoSource() {
		source = "ja"
	}
	form := url.Values{
		"source": {source},
		"target": {targetLang},
		"text":   {text},
	}
	req, err := formRequest(ctx, p.endpoint, form)
	if err != nil {
		return "", err
	}
	req.Header.Set("X-Naver-Client-Id", p.clientID)
	req.Header.Set("X-Naver-Client-Secret", p.clientSecret)

	var resp struct {
		Message struct {
			Result struct {
				TranslatedText string `json:"translatedText"`
			} `json:"result"`
		} `json:"message"`
	}
	if err := p.do(req, &resp); err != nil {
		return "", err
	}
	if resp.Message.Result.TranslatedText == "" {
		return "", errors.New("papago: empty translation")
	}
	return resp.Message.Result.TranslatedText, nil
}
