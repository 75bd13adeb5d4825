// Package all registers every platform adapter.
package all

import (
	_ "github.com/mj1618/uistate/internal/adapter/android"
	_ "github.com/mj1618/uistate/internal/adapter/chrome"
	_ "github.com/mj1618/uistate/internal/adapter/ios"
	_ "github.com/mj1618/uistate/internal/adapter/mac"
)
