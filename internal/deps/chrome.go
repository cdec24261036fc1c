package deps

import (
	"os/exec"
	"strings"
)

// chromeCandidates mirrors the executable names chromedp probes on Linux and macOS.
var chromeCandidates = []string{
	"headless_shell",
	"headless-shell",
	"chromium",
	"chromium-browser",
	"google-chrome",
	"google-chrome-stable",
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	"/Applications/Chromium.app/Contents/MacOS/Chromium",
}

// ResolveChrome returns the browser the PDF renderer will launch. An explicit
// configured path wins; otherwise the first candidate found on PATH is used.
// When nothing is found the first candidate name is returned so status output
// still names what was looked for.
func ResolveChrome(configured string) string {
	if configured = strings.TrimSpace(configured); configured != "" {
		return configured
	}
	for _, candidate := range chromeCandidates {
		if path, err := exec.LookPath(candidate); err == nil {
			return path
		}
	}
	return "chromium"
}
