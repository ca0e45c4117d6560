package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const myMemoryEndpoint = "https://api.mymemory.translated.net/get"

type myMemory struct {
	httpBackend
}

func newMyMemory(cfg Config, client *http.Client) (Backend, error) {
	return &myMemory{newHTTPBackend(cfg, client, myMemoryEndpoint)}, nil
}

func (m *myMemory) Name() string { return string(ServiceMyMemory) }

func (m *myMemory) Translate(ctx context.Context, text, targetLang string) (string, error) {
	source := m.source
	if m.autoSource() {
		source = "Autodetect"
	}
	query := url.Values{
		"q":        {text},
		"langpair": {source + "|" + targetLang},
	}
	if m.apiKey != "" {
		query.Set("key", m.apiKey)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	var resp struct {
		ResponseData struct {
			TranslatedText string `json:"translatedText"`
		} `json:"responseData"`
		// The status is a number on success and sometimes a string on error.
		ResponseStatus  json.RawMessage `json:"responseStatus"`
		ResponseDetails string          `json:"responseDetails"`
	}
	if err := m.do(req, &resp); err != nil {
		return "", err
	}
	if status := strings.Trim(string(resp.ResponseStatus), `"`); status != "" && status != "200" {
		return "", fmt.Errorf("mymemory: status %s: %s", status, resp.ResponseDetails)
	}
	return resp.ResponseData.TranslatedText, nil
}
