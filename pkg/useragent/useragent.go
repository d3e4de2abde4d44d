package useragent

import "strings"

// DeviceType classifies the hardware class derived from a User-Agent string.
type DeviceType string

const (
	DeviceDesktop DeviceType = "desktop"
	DeviceMobile  DeviceType = "mobile"
	DeviceTablet  DeviceType = "tablet"
	DeviceUnknown DeviceType = "unknown"
)

// Unknown is the fallback value for browser and OS when no marker matches.
const Unknown = "Unknown"

// DeviceInfo is the device descriptor derived from a User-Agent string.
// It is ephemeral; callers copy the fields they want to persist.
type DeviceInfo struct {
	DeviceName string
	DeviceType DeviceType
	Browser    string
	OS         string
}

// rule maps a lowercase User-Agent marker to a display name.
// Rules are evaluated in order; the first match wins.
type rule struct {
	marker string
	name   string
}

// Chromium-based secondary browsers carry the tokens of the engine they are
// built on ("Chrome", "Safari"), so they must be matched first. Safari is
// last among the majors because nearly every WebKit agent contains "safari".
var browserRules = []rule{
	{"edg", "Edge"},
	{"opr", "Opera"},
	{"opera", "Opera"},
	{"samsungbrowser", "Samsung Internet"},
	{"firefox", "Firefox"},
	{"fxios", "Firefox"},
	{"crios", "Chrome"},
	{"chrome", "Chrome"},
	{"safari", "Safari"},
	{"msie", "Internet Explorer"},
	{"trident", "Internet Explorer"},
}

// iOS precedes macOS because iPhone/iPad agents contain "like Mac OS X";
// Android and ChromeOS precede Linux for the same embedded-token reason.
var osRules = []rule{
	{"windows phone", "Windows Phone"},
	{"windows", "Windows"},
	{"iphone", "iOS"},
	{"ipad", "iOS"},
	{"ipod", "iOS"},
	{"mac os x", "macOS"},
	{"macintosh", "macOS"},
	{"android", "Android"},
	{"cros", "ChromeOS"},
	{"linux", "Linux"},
}

var mobileMarkers = []string{"mobi", "iphone", "ipod", "windows phone", "android"}

var tabletMarkers = []string{"ipad", "tablet", "kindle", "silk", "playbook"}

// Parse extracts device, browser, and OS information from a raw User-Agent
// string. It is deterministic, side-effect-free, and never fails: arbitrary
// or hostile input produces the desktop/Unknown fallback descriptor.
func Parse(raw string) DeviceInfo {
	ua := strings.ToLower(strings.TrimSpace(raw))

	browser := scan(ua, browserRules)
	os := scan(ua, osRules)

	return DeviceInfo{
		DeviceName: deviceName(browser, os),
		DeviceType: detectDeviceType(ua),
		Browser:    browser,
		OS:         os,
	}
}

func scan(ua string, rules []rule) string {
	for _, r := range rules {
		if strings.Contains(ua, r.marker) {
			return r.name
		}
	}
	return Unknown
}

// detectDeviceType classifies the agent, applying tablet rules last so they
// take precedence over a broader mobile match (iPad agents also contain
// mobile markers; Android tablets omit "Mobile" but contain "Android").
func detectDeviceType(ua string) DeviceType {
	deviceType := DeviceDesktop

	for _, marker := range mobileMarkers {
		if strings.Contains(ua, marker) {
			deviceType = DeviceMobile
			break
		}
	}

	for _, marker := range tabletMarkers {
		if strings.Contains(ua, marker) {
			return DeviceTablet
		}
	}
	// Android without the "Mobile" token is the conventional tablet signal.
	if strings.Contains(ua, "android") && !strings.Contains(ua, "mobi") {
		return DeviceTablet
	}

	return deviceType
}

func deviceName(browser, os string) string {
	if browser == Unknown && os == Unknown {
		return "Unknown device"
	}
	return browser + " on " + os
}
