package adapters

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	backoff "github.com/cenkalti/backoff/v4"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"

	"github.com/innocenzi/dependi/internal/shared"
)

const (
	defaultRegistryTimeout = 15 * time.Second
	defaultRegistryRetries = 3
)

// httpJSONClient is the shared transport for registry and advisory
// adapters: JSON GET/POST with exponential-backoff retry on transient
// upstream failures. 4xx responses are permanent and never retried.
type httpJSONClient struct {
	client *http.Client
}

func newHTTPJSONClient() httpJSONClient {
	return httpJSONClient{client: &http.Client{Timeout: defaultRegistryTimeout}}
}

func (c httpJSONClient) getJSON(ctx context.Context, url string, out any) error {
	return c.do(ctx, http.MethodGet, url, nil, out)
}

func (c httpJSONClient) postJSON(ctx context.Context, url string, body []byte, out any) error {
	return c.do(ctx, http.MethodPost, url, body, out)
}

func (c httpJSONClient) do(ctx context.Context, method string, url string, body []byte, out any) error {
	operation := func() error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return backoff.Permanent(err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		switch {
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("package not found in registry").
				WithCause(shared.HTTPStatusError(resp.StatusCode, url)))
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			return backoff.Permanent(shared.HTTPStatusError(resp.StatusCode, url))
		case resp.StatusCode >= 500:
			return shared.HTTPStatusError(resp.StatusCode, url)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		return decodeRegistryBody(url, data, out)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), defaultRegistryRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		log.Ctx(ctx).Debug().Str("url", url).Err(err).Msg("registry request failed")
		return err
	}
	return nil
}

func decodeRegistryBody(url string, data []byte, out any) error {
	if raw, ok := out.(*[]byte); ok {
		*raw = data
		return nil
	}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, out); err != nil {
		return backoff.Permanent(errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("malformed registry response: " + url).
			WithCause(err))
	}
	return nil
}
