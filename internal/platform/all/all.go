// Package all registers every driver.
package all

import (
	_ "github.com/mj1618/uistate/internal/platform/adb"
	_ "github.com/mj1618/uistate/internal/platform/browser"
	_ "github.com/mj1618/uistate/internal/platform/file"
	_ "github.com/mj1618/uistate/internal/platform/osascript"
	_ "github.com/mj1618/uistate/internal/platform/wda"
)
