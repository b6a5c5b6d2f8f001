package browser

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"bookmarked/internal/ports"
)

// Opener implements ports.URLOpener
type Opener struct {
	goos   string
	getenv func(string) string
}

// Ensure Opener implements URLOpener
var _ ports.URLOpener = (*Opener)(nil)

// NewOpener creates a new browser opener
func NewOpener() *Opener {
	return &Opener{goos: runtime.GOOS, getenv: os.Getenv}
}

// OpenURL opens a URL in the user's preferred browser
func (o *Opener) OpenURL(target string) error {
	cmd, err := o.Command(target)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening a URL.
// This is useful for integrating with bubbletea's ExecProcess
func (o *Opener) Command(target string) (*exec.Cmd, error) {
	u, err := url.Parse(target)
	if err != nil || u.Scheme == "" {
		return nil, fmt.Errorf("not an absolute URL: %q", target)
	}

	// $BROWSER may list several programs separated by colons; %s marks the URL
	if browser := o.getenv("BROWSER"); browser != "" {
		first, _, _ := strings.Cut(browser, ":")
		fields := strings.Fields(first)
		if len(fields) > 0 {
			replaced := false
			for i, f := range fields {
				if strings.Contains(f, "%s") {
					fields[i] = strings.ReplaceAll(f, "%s", target)
					replaced = true
				}
			}
			if !replaced {
				fields = append(fields, target)
			}
			return exec.Command(fields[0], fields[1:]...), nil
		}
	}

	switch o.goos {
	case "darwin":
		return exec.Command("open", target), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", target), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", "", target), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", o.goos)
	}
}
