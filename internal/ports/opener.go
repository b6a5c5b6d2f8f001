package ports

import "os/exec"

// URLOpener opens a bookmark target in an external program
type URLOpener interface {
	// OpenURL opens the URL with the user's preferred browser.
	// It uses the $BROWSER environment variable, falling back to the platform opener.
	OpenURL(url string) error

	// Command returns an exec.Cmd for opening a URL.
	// This is useful for integrating with bubbletea's ExecProcess
	Command(url string) (*exec.Cmd, error)
}
