// Package wda reads iOS devices and simulators through a running
// WebDriverAgent server.
package wda

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mj1618/uistate/internal/model"
	"github.com/mj1618/uistate/internal/platform"
)

// DefaultURL is where WebDriverAgent listens when started with default
// settings or forwarded by iproxy.
const DefaultURL = "http://127.0.0.1:8100"

func init() {
	platform.Register("wda", func(opts platform.Options) (platform.Driver, error) {
		return New(opts.WDAURL, nil, opts.Logger), nil
	})
}

// Driver talks to one WebDriverAgent endpoint.
type Driver struct {
	base   string
	client *http.Client
	logger *zap.Logger
}

// New returns a driver for baseURL. A nil client gets a 30s timeout.
func New(baseURL string, client *http.Client, logger *zap.Logger) *Driver {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{base: strings.TrimRight(baseURL, "/"), client: client, logger: logger}
}

func (d *Driver) Platform() model.Platform { return model.IOS }

// get fetches path and returns the raw body. WDA wraps results as
// {"value": ..., "sessionId": ...}.
func (d *Driver) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.base+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", path, resp.Status)
	}
	d.logger.Debug("wda", zap.String("path", path), zap.Int("bytes", len(body)))
	return body, nil
}

type envelope struct {
	Value     json.RawMessage `json:"value"`
	SessionID string          `json:"sessionId"`
}

func (d *Driver) value(ctx context.Context, path string, v interface{}) error {
	body, err := d.get(ctx, path)
	if err != nil {
		return err
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return json.Unmarshal(env.Value, v)
}

func (d *Driver) session(ctx context.Context) (string, error) {
	body, err := d.get(ctx, "/status")
	if err != nil {
		return "", fmt.Errorf("wda status: %w", err)
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", fmt.Errorf("decode status: %w", err)
	}
	if env.SessionID == "" {
		return "", fmt.Errorf("wda has no active session")
	}
	return env.SessionID, nil
}

// Hierarchy returns the JSON page source, still wrapped in its envelope.
func (d *Driver) Hierarchy(ctx context.Context) ([]byte, error) {
	body, err := d.get(ctx, "/source?format=json")
	if err != nil {
		return nil, fmt.Errorf("wda source: %w", err)
	}
	return body, nil
}

func (d *Driver) Screenshot(ctx context.Context, scale float64) ([]byte, error) {
	var b64 string
	if err := d.value(ctx, "/screenshot", &b64); err != nil {
		return nil, fmt.Errorf("wda screenshot: %w", err)
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	return platform.ScaleImage(data, scale)
}

// WindowSize returns the window size in points.
func (d *Driver) WindowSize(ctx context.Context) (int, int, error) {
	sid, err := d.session(ctx)
	if err != nil {
		return 0, 0, err
	}
	var size struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	}
	if err := d.value(ctx, "/session/"+sid+"/window/size", &size); err != nil {
		return 0, 0, fmt.Errorf("wda window size: %w", err)
	}
	return int(size.Width), int(size.Height), nil
}

func (d *Driver) Orientation(ctx context.Context) (string, error) {
	sid, err := d.session(ctx)
	if err != nil {
		return "", err
	}
	var o string
	if err := d.value(ctx, "/session/"+sid+"/orientation", &o); err != nil {
		return "", fmt.Errorf("wda orientation: %w", err)
	}
	return strings.ToUpper(o), nil
}
