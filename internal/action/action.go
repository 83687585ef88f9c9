// Package action holds the terminal side-effecting leaves that matched
// skills invoke: opening URLs in the default browser and launching local
// applications from configured paths. These sit behind narrow interfaces so
// the router and skills stay testable without touching the desktop.
package action

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"runtime"
)

// Browser opens URLs in the user's default browser.
type Browser interface {
	Open(url string) error
}

// SystemBrowser shells out to the platform opener.
type SystemBrowser struct{}

// Open starts the platform URL handler without waiting for it.
func (SystemBrowser) Open(target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		cmd = exec.Command("xdg-open", target)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}
	return nil
}

// SearchURL builds a Google search URL for the query.
func SearchURL(query string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(query)
}

// Launcher starts local applications from configured paths.
type Launcher interface {
	Launch(path string, args ...string) error
}

// ExecLauncher validates the configured path and starts the process
// detached. A missing path is a normal "unavailable" state surfaced as an
// error for the skill to voice, not a crash.
type ExecLauncher struct{}

// Launch starts the application at path without waiting for it to exit.
func (ExecLauncher) Launch(path string, args ...string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("app path %q: %w", path, err)
	}
	if err := exec.Command(path, args...).Start(); err != nil {
		return fmt.Errorf("launch %q: %w", path, err)
	}
	return nil
}
