package translate

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

const (
	deeplEndpoint     = "https://api.deepl.com/v2/translate"
	deeplFreeEndpoint = "https://api-free.deepl.com/v2/translate"
)

type deepl struct {
	httpBackend
}

func newDeepL(cfg Config, client *http.Client) (Backend, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("deepl requires an api key")
	}
	endpoint := deeplEndpoint
	// Free-tier keys end in ":fx" and are only accepted by the free host.
	if strings.HasSuffix(cfg.APIKey, ":fx") {
		endpoint = deeplFreeEndpoint
	}
	return &deepl{newHTTPBackend(cfg, client, endpoint)}, nil
}

func (d *deepl) Name() string { return string(ServiceDeepL) }

func (d *deepl) Translate(ctx context.Context, text, targetLang string) (string, error) {
	form := url.Values{
		"text":        {text},
		"target_lang": {strings.ToUpper(targetLang)},
	}
	if !d.autoSource() {
		form.Set("source_lang", strings.ToUpper(d.source))
	}
	req, err := formRequest(ctx, d.endpoint, form)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "DeepL-Auth-Key "+d.apiKey)

	var resp struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}
	if err := d.do(req, &resp); err != nil {
		return "", err
	}
	if len(resp.Translations) == 0 {
		return "", errors.New("deepl: no translations in response")
	}
	return resp.Translations[0].Text, nil
}
