package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mj1618/uistate/internal/annotate"
	"github.com/mj1618/uistate/internal/model"
	"github.com/mj1618/uistate/internal/output"
	"github.com/mj1618/uistate/internal/platform"
	"github.com/mj1618/uistate/internal/state"
)

// flagString reads a persistent flag from the root command.
func flagString(name string) string {
	v, _ := rootCmd.PersistentFlags().GetString(name)
	return v
}

func selectedPlatform() (model.Platform, error) {
	return model.ParsePlatform(flagString("platform"))
}

// driverOptions merges driver flags over the loaded config.
func driverOptions(p model.Platform) (platform.Options, error) {
	opts := platform.Options{
		Platform:       p,
		DumpPath:       flagString("dump"),
		ScreenshotPath: flagString("screenshot"),
		ADB:            cfg.Driver.ADB,
		BrowserURL:     cfg.Driver.BrowserURL,
		WDAURL:         cfg.Driver.WDAURL,
		Logger:         logger,
	}
	if v := flagString("adb"); v != "" {
		opts.ADB = v
	}
	if v := flagString("browser-url"); v != "" {
		opts.BrowserURL = v
	}
	if v := flagString("wda-url"); v != "" {
		opts.WDAURL = v
	}
	if v := flagString("window-size"); v != "" {
		w, h, err := platform.ParseWindowSize(v)
		if err != nil {
			return opts, err
		}
		opts.Window = model.Window{Width: w, Height: h, Orientation: platform.OrientationFor(w, h)}
	}
	return opts, nil
}

// driverName picks --driver, else "file" when a dump is given, else the
// platform's live driver.
func driverName(p model.Platform) string {
	if v := flagString("driver"); v != "" {
		return v
	}
	if flagString("dump") != "" {
		return "file"
	}
	return platform.DefaultDriver(p)
}

// openDriver opens the driver selected by the root flags. The returned
// cleanup closes connection-holding drivers.
func openDriver() (platform.Driver, func(), error) {
	p, err := selectedPlatform()
	if err != nil {
		return nil, nil, err
	}
	opts, err := driverOptions(p)
	if err != nil {
		return nil, nil, err
	}
	d, err := platform.Open(driverName(p), opts)
	if err != nil {
		return nil, nil, err
	}
	if d.Platform() != p {
		return nil, nil, fmt.Errorf("driver %s serves %s, not %s", driverName(p), d.Platform(), p)
	}
	cleanup := func() {
		if c, ok := d.(platform.Closer); ok {
			if err := c.Close(); err != nil {
				logger.Debug("driver close failed", zap.Error(err))
			}
		}
	}
	return d, cleanup, nil
}

// engineOptions builds engine settings for p from the loaded config.
func engineOptions(p model.Platform, screenshotScale float64) state.Options {
	pc := cfg.Platforms.For(p)
	return state.Options{
		Platform:        p,
		MinSize:         pc.MinSize,
		DefaultWindow:   pc.DefaultWindow,
		ScreenshotScale: screenshotScale,
		Render: annotate.Options{
			FontPaths:    cfg.Font.Paths,
			FontSize:     cfg.Font.Size,
			Padding:      pc.Padding,
			CaptureScale: pc.CaptureScale,
			RenderScale:  pc.RenderScale,
		},
	}
}

// printResult writes v to the command's output in the selected format.
func printResult(cmd *cobra.Command, v interface{}) error {
	return output.Fprint(cmd.OutOrStdout(), output.OutputFormat, v)
}
