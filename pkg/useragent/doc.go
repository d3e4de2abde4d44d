// Package useragent provides User-Agent string parsing to extract browser,
// operating system, and device information for session fingerprinting.
//
// Parsing is a total function: any input, including empty or garbage strings,
// produces a usable DeviceInfo. Unrecognized input degrades to
// Browser="Unknown", OS="Unknown" and the desktop device type, which keeps
// the common path functional without an error branch.
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/sessionguard/pkg/useragent"
//
//	info := useragent.Parse(r.Header.Get("User-Agent"))
//
//	fmt.Println(info.DeviceType) // "mobile"
//	fmt.Println(info.Browser)    // "Chrome"
//	fmt.Println(info.OS)         // "Android"
//	fmt.Println(info.DeviceName) // "Chrome on Android"
//
// # Detection Order
//
// Device classification checks tablet markers after generic mobile markers so
// that tablet agents (iPad, Android tablets) which also match broader mobile
// patterns end up classified as tablets. Browser detection runs a fixed
// precedence scan: Chromium-based secondary browsers (Edge, Opera, Samsung
// Internet) are matched before Chrome, and Chrome before Safari, since their
// User-Agent strings embed the tokens of the engines they are built on.
package useragent
