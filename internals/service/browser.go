package service

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// openBrowser hands a link to the desktop browser. Only web URLs are
// allowed through; the webview must not be able to launch arbitrary
// programs.
func openBrowser(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open non-web URL %q", raw)
	}

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", raw).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", raw).Start()
	default:
		return exec.Command("xdg-open", raw).Start()
	}
}
