package adb

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/uistate/internal/platform"
)

type fakeADB struct {
	calls   [][]string
	outputs map[string]string
}

func (f *fakeADB) run(_ context.Context, argv []string) ([]byte, error) {
	f.calls = append(f.calls, argv)
	key := strings.Join(argv, " ")
	for suffix, out := range f.outputs {
		if strings.HasSuffix(key, suffix) {
			return []byte(out), nil
		}
	}
	return nil, errors.New("unexpected command: " + key)
}

func newFake(t *testing.T, cmd string, outputs map[string]string) (*Driver, *fakeADB) {
	t.Helper()
	d, err := New(cmd, nil)
	require.NoError(t, err)
	f := &fakeADB{outputs: outputs}
	d.Run = f.run
	return d, f
}

func TestNewParsesCommandLine(t *testing.T) {
	d, err := New(`adb -s "emulator 5554"`, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"adb", "-s", "emulator 5554"}, d.Argv())

	d, err = New("", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"adb"}, d.Argv())

	_, err = New(`adb "unterminated`, nil)
	assert.Error(t, err)
}

func TestHierarchy(t *testing.T) {
	d, f := newFake(t, "adb -s abc", map[string]string{
		"exec-out uiautomator dump /dev/tty": "<hierarchy/>UI hierchary dumped to: /dev/tty\n",
	})
	out, err := d.Hierarchy(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "<hierarchy/>"))
	assert.Equal(t, []string{"adb", "-s", "abc", "exec-out", "uiautomator", "dump", "/dev/tty"}, f.calls[0])
}

func TestWindowSizeAndOrientation(t *testing.T) {
	d, _ := newFake(t, "adb", map[string]string{
		"shell wm size":        "Physical size: 1080x2400\nOverride size: 720x1600\n",
		"shell dumpsys input": "  Viewport INTERNAL\n    SurfaceOrientation: 1\n",
	})
	ctx := context.Background()
	w, h, err := d.WindowSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1600, w, "override size, rotated to landscape")
	assert.Equal(t, 720, h)

	o, err := d.Orientation(ctx)
	require.NoError(t, err)
	assert.Equal(t, "LANDSCAPE", o)
}

func TestScreenshot(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 80))))
	d, _ := newFake(t, "adb", map[string]string{"exec-out screencap -p": buf.String()})

	out, err := d.Screenshot(context.Background(), 0.5)
	require.NoError(t, err)
	w, h, err := platform.ImageSize(out)
	require.NoError(t, err)
	assert.Equal(t, 20, w)
	assert.Equal(t, 40, h)
}

func TestParsers(t *testing.T) {
	_, _, err := ParseWMSize("error: no devices")
	assert.Error(t, err)

	o, err := ParseSurfaceOrientation("SurfaceOrientation: 0")
	require.NoError(t, err)
	assert.Equal(t, "PORTRAIT", o)

	_, err = ParseSurfaceOrientation("nothing here")
	assert.Error(t, err)
}

func TestFetchErrorsWrapped(t *testing.T) {
	d, _ := newFake(t, "adb", map[string]string{})
	_, err := d.Hierarchy(context.Background())
	assert.ErrorContains(t, err, "uiautomator dump")
}
