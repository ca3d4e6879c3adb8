package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// Opener opens recipe source URLs in a browser
type Opener struct {
	command string // configured browser command, empty for system default
	logger  *slog.Logger
}

// NewOpener creates a new Opener
func NewOpener(command string, logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{command: command, logger: logger}
}

// Open launches the URL in the configured browser or the system default
func (o *Opener) Open(url string) error {
	if url == "" {
		return fmt.Errorf("no source url")
	}

	if o.command != "" {
		if _, err := exec.LookPath(o.command); err != nil {
			o.logger.Warn("configured browser not found, using system default", "command", o.command)
			return o.openDefault(url)
		}
		o.logger.Info("opening url with configured browser", "command", o.command, "url", url)
		return exec.Command(o.command, url).Start()
	}

	return o.openDefault(url)
}

// openDefault opens the URL using the system default handler
func (o *Opener) openDefault(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", url)
	default:
		// Linux and other Unix-like systems
		cmd = exec.Command("xdg-open", url)
	}

	o.logger.Info("opening url with system default", "os", runtime.GOOS, "url", url)

	return cmd.Start()
}
