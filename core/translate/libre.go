package translate

import (
	"context"
	"errors"
	"net/http"
)

const libreEndpoint = "https://libretranslate.com"

type libre struct {
	httpBackend
}

func newLibre(cfg Config, client *http.Client) (Backend, error) {
	return &libre{newHTTPBackend(cfg, client, libreEndpoint)}, nil
}

func (l *libre) Name() string { return string(ServiceLibre) }

func (l *libre) Translate(ctx context.Context, text, targetLang string) (string, error) {
	source := l.source
	if l.autoSource() {
		source = DefaultSourceLanguage
	}
	body := map[string]string{
		"q":      text,
		"source": source,
		"target": targetLang,
		"format": "text",
	}
	if l.apiKey != "" {
		body["api_key"] = l.apiKey
	}
	req, err := jsonRequest(ctx, l.endpoint+"/translate", body)
	if err != nil {
		return "", err
	}

	var resp struct {
		TranslatedText string `json:"translatedText"`
		Error          string `json:"error"`
	}
	if err := l.do(req, &resp); err != nil {
		return "", err
	}
	if resp.Error != "" {
		return "", errors.New("libre: " + resp.Error)
	}
	return resp.TranslatedText, nil
}
