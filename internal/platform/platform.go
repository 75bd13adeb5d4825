// Package platform defines the driver bridge: the thin layer that fetches raw
// hierarchy dumps and screenshots from a device, browser or desktop.
// Drivers never retry, reconnect or close sessions on their own.
package platform

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/mj1618/uistate/internal/model"
)

// Driver fetches raw state from one UI surface.
type Driver interface {
	Platform() model.Platform
	// Hierarchy returns the platform-native dump understood by the matching
	// adapter.
	Hierarchy(ctx context.Context) ([]byte, error)
	// Screenshot returns PNG or JPEG bytes. scale resizes the capture; 0 or 1
	// keeps it as is.
	Screenshot(ctx context.Context, scale float64) ([]byte, error)
	WindowSize(ctx context.Context) (width, height int, err error)
	Orientation(ctx context.Context) (string, error)
}

// Closer is implemented by drivers holding a connection.
type Closer interface {
	Close() error
}

// Options configures a driver.
type Options struct {
	Platform       model.Platform
	DumpPath       string       // file driver
	ScreenshotPath string       // file driver
	Window         model.Window // file driver override; zero infers
	ADB            string       // adb command line
	BrowserURL     string       // DevTools endpoint
	WDAURL         string       // WebDriverAgent base URL
	Logger         *zap.Logger
}

// ErrUnknownDriver is returned by Open for unregistered driver names.
var ErrUnknownDriver = errors.New("unknown driver")

// ErrUnsupported is returned by drivers for operations they cannot perform.
var ErrUnsupported = errors.New("operation not supported by driver")

// OpenFunc constructs a driver. Set by driver packages via init().
type OpenFunc func(opts Options) (Driver, error)

var (
	mu      sync.RWMutex
	drivers = make(map[string]OpenFunc)
)

// Register adds a driver constructor under name.
func Register(name string, fn OpenFunc) {
	mu.Lock()
	defer mu.Unlock()
	drivers[name] = fn
}

// Drivers returns the registered driver names, sorted.
func Drivers() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(drivers))
	for n := range drivers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Open constructs the named driver.
func Open(name string, opts Options) (Driver, error) {
	mu.RLock()
	fn, ok := drivers[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrUnknownDriver, name, Drivers())
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return fn(opts)
}

// DefaultDriver returns the live driver name for p.
func DefaultDriver(p model.Platform) string {
	switch p {
	case model.Android:
		return "adb"
	case model.IOS:
		return "wda"
	case model.Chrome:
		return "browser"
	default:
		return "osascript"
	}
}
