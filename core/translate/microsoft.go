package translate

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

const microsoftEndpoint = "https://api.cognitive.microsofttranslator.com"

type microsoft struct {
	httpBackend
	region string
}

// newMicrosoft accepts "key" or "key@region" as the api key.
func newMicrosoft(cfg Config, client *http.Client) (Backend, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("microsoft requires an api key")
	}
	key, region, _ := strings.Cut(cfg.APIKey, "@")
	b := newHTTPBackend(cfg, client, microsoftEndpoint)
	b.apiKey = key
	return &microsoft{httpBackend: b, region: region}, nil
}

func (m *microsoft) Name() string { return string(ServiceMicrosoft) }

func (m *microsoft) Translate(ctx context.Context, text, targetLang string) (string, error) {
	query := url.Values{
		"api-version": {"3.0"},
		"to":          {targetLang},
	}
	if !m.autoSource() {
		query.Set("from", m.source)
	}
	req, err := jsonRequest(ctx, m.endpoint+"/translate?"+query.Encode(), []map[string]string{{"Text": text}})
	if err != nil {
		return "", err
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", m.apiKey)
	if m.region != "" {
		req.Header.Set("Ocp-Apim-Subscription-Region", m.region)
	}

	var resp []struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}
	if err := m.do(req, &resp); err != nil {
		return "", err
	}
	if len(resp) == 0 || len(resp[0].Translations) == 0 {
		return "", errors.New("microsoft: no translations in response")
	}
	return resp[0].Translations[0].Text, nil
}
