// Package browser drives an already running Chrome over the DevTools
// protocol. It attaches to an existing DevTools endpoint and never launches
// or closes the browser itself.
package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
	"go.uber.org/zap"

	"github.com/mj1618/uistate/internal/model"
	"github.com/mj1618/uistate/internal/platform"
)

func init() {
	platform.Register("browser", func(opts platform.Options) (platform.Driver, error) {
		return Connect(opts.BrowserURL, opts.Logger)
	})
}

// snapshotJS lists every element in document order with its viewport rect.
// Attribute names must match the chrome adapter's allowlist.
const snapshotJS = `() => {
	const keep = ["id","class","name","type","href","src","alt","title","placeholder","role","onclick","aria-label"];
	const skip = new Set(["HTML","HEAD","BODY","SCRIPT","STYLE","META","LINK","NOSCRIPT","TEMPLATE"]);
	const out = [];
	for (const el of document.querySelectorAll("*")) {
		if (skip.has(el.tagName)) continue;
		const r = el.getBoundingClientRect();
		const cs = window.getComputedStyle(el);
		const attrs = {};
		for (const k of keep) {
			const v = el.getAttribute(k);
			if (v) attrs[k] = v;
		}
		const text = (el.innerText || el.value || "").trim().slice(0, 200);
		out.push({
			tag: el.tagName.toLowerCase(),
			text: text,
			attributes: attrs,
			rect: {x: r.x, y: r.y, width: r.width, height: r.height},
			visible: cs.display !== "none" && cs.visibility !== "hidden" && r.width > 0 && r.height > 0,
			enabled: !el.disabled,
		});
	}
	return out;
}`

const viewportJS = `() => ({width: window.innerWidth, height: window.innerHeight})`

const orientationJS = `() => (screen.orientation && screen.orientation.type) || ""`

// Driver is attached to one page.
type Driver struct {
	browser *rod.Browser
	page    *rod.Page
	cancel  context.CancelFunc
	logger  *zap.Logger
}

// Connect attaches to controlURL, which may be a ws:// DevTools URL or an
// http://host:port address. The first open page is used.
func Connect(controlURL string, logger *zap.Logger) (*Driver, error) {
	if controlURL == "" {
		return nil, fmt.Errorf("browser driver: DevTools URL is required (--browser-url)")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	u := controlURL
	if !strings.HasPrefix(u, "ws://") && !strings.HasPrefix(u, "wss://") {
		resolved, err := launcher.ResolveURL(u)
		if err != nil {
			return nil, fmt.Errorf("resolve DevTools URL %s: %w", u, err)
		}
		u = resolved
	}

	ctx, cancel := context.WithCancel(context.Background())
	b := rod.New().Context(ctx).ControlURL(u)
	if err := b.Connect(); err != nil {
		cancel()
		return nil, fmt.Errorf("connect to browser: %w", err)
	}
	pages, err := b.Pages()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("list pages: %w", err)
	}
	var page *rod.Page
	if len(pages) > 0 {
		page = pages.First()
	} else if page, err = b.Page(proto.TargetCreateTarget{URL: "about:blank"}); err != nil {
		cancel()
		return nil, fmt.Errorf("open page: %w", err)
	}
	logger.Debug("attached to browser", zap.String("url", u))
	return &Driver{browser: b, page: page, cancel: cancel, logger: logger}, nil
}

// Close drops the DevTools connection. The browser keeps running.
func (d *Driver) Close() error {
	d.cancel()
	return nil
}

func (d *Driver) Platform() model.Platform { return model.Chrome }

func (d *Driver) eval(ctx context.Context, js string) (gson.JSON, error) {
	res, err := d.page.Context(ctx).Eval(js)
	if err != nil {
		return gson.JSON{}, err
	}
	return res.Value, nil
}

func (d *Driver) Hierarchy(ctx context.Context) ([]byte, error) {
	v, err := d.eval(ctx, snapshotJS)
	if err != nil {
		return nil, fmt.Errorf("dom snapshot: %w", err)
	}
	return SnapshotBytes(v)
}

func (d *Driver) Screenshot(ctx context.Context, scale float64) ([]byte, error) {
	data, err := d.page.Context(ctx).Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	return platform.ScaleImage(data, scale)
}

func (d *Driver) WindowSize(ctx context.Context) (int, int, error) {
	v, err := d.eval(ctx, viewportJS)
	if err != nil {
		return 0, 0, fmt.Errorf("viewport size: %w", err)
	}
	return Viewport(v)
}

func (d *Driver) Orientation(ctx context.Context) (string, error) {
	v, err := d.eval(ctx, orientationJS)
	if err != nil {
		return "", fmt.Errorf("screen orientation: %w", err)
	}
	if o := OrientationFromType(v.Str()); o != "" {
		return o, nil
	}
	w, h, err := d.WindowSize(ctx)
	if err != nil {
		return "", err
	}
	return platform.OrientationFor(w, h), nil
}

// SnapshotBytes encodes the evaluated snapshot array for the chrome adapter.
func SnapshotBytes(v gson.JSON) ([]byte, error) {
	if v.Nil() {
		return nil, fmt.Errorf("dom snapshot returned nothing")
	}
	return []byte(v.JSON("", "")), nil
}

// Viewport reads {width, height} from an evaluated result.
func Viewport(v gson.JSON) (int, int, error) {
	w, h := v.Get("width").Int(), v.Get("height").Int()
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid viewport %s", v.JSON("", ""))
	}
	return w, h, nil
}

// OrientationFromType maps screen.orientation.type values such as
// "landscape-primary". It returns "" for anything else.
func OrientationFromType(t string) string {
	switch {
	case strings.HasPrefix(t, "portrait"):
		return "PORTRAIT"
	case strings.HasPrefix(t, "landscape"):
		return "LANDSCAPE"
	default:
		return ""
	}
}
