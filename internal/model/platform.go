package model

import (
	"errors"
	"fmt"
	"strings"
)

// Platform identifies the kind of UI surface a dump came from.
type Platform string

const (
	Android Platform = "android"
	IOS     Platform = "ios"
	Chrome  Platform = "chrome"
	Mac     Platform = "mac"
)

// Platforms lists every supported platform in a fixed order.
var Platforms = []Platform{Android, IOS, Chrome, Mac}

// ErrUnknownPlatform is returned by ParsePlatform for unrecognised names.
var ErrUnknownPlatform = errors.New("unknown platform")

// ParsePlatform converts a flag value to a Platform.
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "android":
		return Android, nil
	case "ios":
		return IOS, nil
	case "chrome", "web", "browser":
		return Chrome, nil
	case "mac", "macos", "darwin":
		return Mac, nil
	default:
		return "", fmt.Errorf("%w: %q (expected android, ios, chrome, or mac)", ErrUnknownPlatform, s)
	}
}

// Title returns the display name used in serialized state headers.
func (p Platform) Title() string {
	switch p {
	case Android:
		return "Android"
	case IOS:
		return "iOS"
	case Chrome:
		return "Chrome"
	case Mac:
		return "Mac"
	default:
		return string(p)
	}
}
