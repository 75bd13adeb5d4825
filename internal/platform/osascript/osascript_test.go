package osascript

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/uistate/internal/adapter/mac"
	"github.com/mj1618/uistate/internal/model"
)

func fakeRun(outputs map[string]string) func(context.Context, []string) ([]byte, error) {
	var mu sync.Mutex
	return func(_ context.Context, argv []string) ([]byte, error) {
		mu.Lock()
		defer mu.Unlock()
		script := argv[len(argv)-1]
		for key, out := range outputs {
			if strings.Contains(script, key) {
				return []byte(out + "\n"), nil
			}
		}
		return nil, errors.New("script failed")
	}
}

func TestHierarchy(t *testing.T) {
	d := New(nil)
	d.Run = fakeRun(map[string]string{
		"frontmost":             "Safari",
		"every item of desktop": "a.txt, b.txt",
		`process "Dock"`:        "Finder, Safari",
		"menu bar 1":            "Apple, Safari",
		// window query fails and is left empty
	})
	data, err := d.Hierarchy(context.Background())
	require.NoError(t, err)

	var dump mac.Dump
	require.NoError(t, json.Unmarshal(data, &dump))
	assert.Equal(t, mac.Dump{FrontApp: "Safari", Desktop: "a.txt, b.txt", Dock: "Finder, Safari", MenuBar: "Apple, Safari"}, dump)

	nodes, err := mac.Adapter{}.Parse(data, model.Window{Height: 900})
	require.NoError(t, err)
	assert.Len(t, nodes, 6)
}

func TestHierarchyFrontAppFailure(t *testing.T) {
	d := New(nil)
	d.Run = fakeRun(map[string]string{})
	_, err := d.Hierarchy(context.Background())
	assert.Error(t, err)
}

func TestHierarchyCancelledStopsQueries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var scripts []string
	d := New(nil)
	d.Run = func(_ context.Context, argv []string) ([]byte, error) {
		mu.Lock()
		defer mu.Unlock()
		script := argv[len(argv)-1]
		scripts = append(scripts, script)
		if strings.Contains(script, "frontmost") {
			cancel()
			return []byte("Safari\n"), nil
		}
		return []byte("x\n"), nil
	}

	_, err := d.Hierarchy(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, scripts, 1, "no list query runs after cancellation")
}

func TestWindowSize(t *testing.T) {
	d := New(nil)
	d.Run = fakeRun(map[string]string{"bounds of window of desktop": "0, 0, 1728, 1117"})
	w, h, err := d.WindowSize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1728, w)
	assert.Equal(t, 1117, h)

	o, err := d.Orientation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "LANDSCAPE", o)
}

func TestParseBounds(t *testing.T) {
	_, _, err := ParseBounds("missing value")
	assert.Error(t, err)
	_, _, err = ParseBounds("0, 0, 0, 0")
	assert.Error(t, err)
}
