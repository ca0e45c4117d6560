package translate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const yandexEndpoint = "https://translate.yandex.net/api/v1.5/tr.json/translate"

type yandex struct {
	httpBackend
}

func newYandex(cfg Config, client *http.Client) (Backend, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("yandex requires an api key")
	}
	return &yandex{newHTTPBackend(cfg, client, yandexEndpoint)}, nil
}

func (y *yandex) Name() string { return string(ServiceYandex) }

func (y *yandex) Translate(ctx context.Context, text, targetLang string) (string, error) {
	lang := targetLang
	if !y.autoSource() {
		lang = y.source + "-" + targetLang
	}
	form := url.Values{
		"key":  {y.apiKey},
		"text": {text},
		"lang": {lang},
	}
	req, err := formRequest(ctx, y.endpoint, form)
	if err != nil {
		return "", err
	}

	var resp struct {
		Code int      `json:"code"`
		Text []string `json:"text"`
	}
	if err := y.do(req, &resp); err != nil {
		return "", err
	}
	if resp.Code != http.StatusOK {
		return "", fmt.Errorf("yandex: code %d", resp.Code)
	}
	return strings.Join(resp.Text, ""), nil
}
