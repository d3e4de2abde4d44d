package useragent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/sessionguard/pkg/useragent"
)

const (
	uaChromeWindows = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	uaEdgeWindows   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.0.0"
	uaSafariMac     = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15"
	uaSafariIPhone  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	uaSafariIPad    = "Mozilla/5.0 (iPad; CPU OS 16_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.6 Mobile/15E148 Safari/604.1"
	uaChromePhone   = "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36"
	uaChromeTablet  = "Mozilla/5.0 (Linux; Android 13; SM-X906C) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	uaFirefoxLinux  = "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0"
	uaOperaWindows  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36 OPR/105.0.0.0"
)

func TestParse_DeviceType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ua   string
		want useragent.DeviceType
	}{
		{"ipad marker classifies as tablet", uaSafariIPad, useragent.DeviceTablet},
		{"explicit tablet token classifies as tablet", "SomeBrowser/1.0 (tablet; rv:1.0)", useragent.DeviceTablet},
		{"android without mobile token classifies as tablet", uaChromeTablet, useragent.DeviceTablet},
		{"generic mobile marker classifies as mobile", uaChromePhone, useragent.DeviceMobile},
		{"iphone classifies as mobile", uaSafariIPhone, useragent.DeviceMobile},
		{"desktop agent classifies as desktop", uaChromeWindows, useragent.DeviceDesktop},
		{"unrecognized string defaults to desktop", "definitely-not-a-browser", useragent.DeviceDesktop},
		{"empty string defaults to desktop", "", useragent.DeviceDesktop},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, useragent.Parse(tt.ua).DeviceType)
		})
	}
}

func TestParse_Browser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ua   string
		want string
	}{
		{"edge wins over embedded chrome token", uaEdgeWindows, "Edge"},
		{"opera wins over embedded chrome token", uaOperaWindows, "Opera"},
		{"chrome wins over embedded safari token", uaChromeWindows, "Chrome"},
		{"plain safari", uaSafariMac, "Safari"},
		{"firefox", uaFirefoxLinux, "Firefox"},
		{"unrecognized input degrades to Unknown", "curl-ish thing", useragent.Unknown},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, useragent.Parse(tt.ua).Browser)
		})
	}
}

func TestParse_OS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ua   string
		want string
	}{
		{"windows", uaChromeWindows, "Windows"},
		{"macos", uaSafariMac, "macOS"},
		{"iphone reports iOS despite mac token", uaSafariIPhone, "iOS"},
		{"ipad reports iOS despite mac token", uaSafariIPad, "iOS"},
		{"android reports Android despite linux token", uaChromePhone, "Android"},
		{"linux", uaFirefoxLinux, "Linux"},
		{"unrecognized input degrades to Unknown", "???", useragent.Unknown},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, useragent.Parse(tt.ua).OS)
		})
	}
}

func TestParse_DeviceName(t *testing.T) {
	t.Parallel()

	t.Run("renders browser on os", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Chrome on Windows", useragent.Parse(uaChromeWindows).DeviceName)
	})

	t.Run("fully unrecognized input renders Unknown device", func(t *testing.T) {
		t.Parallel()

		info := useragent.Parse("gibberish 12345")
		assert.Equal(t, "Unknown device", info.DeviceName)
		assert.Equal(t, useragent.Unknown, info.Browser)
		assert.Equal(t, useragent.Unknown, info.OS)
	})

	t.Run("partial match still renders both parts", func(t *testing.T) {
		t.Parallel()

		info := useragent.Parse("something windows something")
		assert.Equal(t, "Unknown on Windows", info.DeviceName)
	})
}

func TestParse_IsTotal(t *testing.T) {
	t.Parallel()

	// Hostile or degenerate inputs must never panic and always yield a
	// usable descriptor.
	inputs := []string{
		"",
		" ",
		"\x00\xff\xfe",
		string(make([]byte, 64<<10)),
		"Mozilla/5.0 (((((",
	}

	for _, in := range inputs {
		info := useragent.Parse(in)
		assert.NotEmpty(t, info.DeviceName)
		assert.NotEmpty(t, info.DeviceType)
	}
}
