package adapter

import (
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
)

// Launcher opens movie detail pages in a browser
type Launcher struct {
	command string   // configured browser command, empty for system default
	args    []string // additional arguments for the browser
	goos    string
	logger  *slog.Logger

	// lookPath and start are swapped out in tests
	lookPath func(string) (string, error)
	start    func(name string, args ...string) error
}

// NewLauncher creates a launcher for the configured browser command
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:  command,
		args:     args,
		goos:     runtime.GOOS,
		logger:   logger,
		lookPath: exec.LookPath,
		start:    startDetached,
	}
}

func startDetached(name string, args ...string) error {
	_, err := spawn(name, args...)
	return err
}

// spawn starts the command and reaps it in the background. The channel
// receives the exit result.
func spawn(name string, args ...string) (<-chan error, error) {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()
	return done, nil
}

// Open opens rawURL in the configured browser or the system default
func (l *Launcher) Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("refusing to open %q: not an http(s) URL", rawURL)
	}

	name, args := l.commandFor(rawURL)
	l.logger.Info("opening url", "command", name, "args", args)

	if err := l.start(name, args...); err != nil {
		return fmt.Errorf("failed to open %s: %w", rawURL, err)
	}
	return nil
}

// commandFor builds the command line that opens rawURL
func (l *Launcher) commandFor(rawURL string) (string, []string) {
	if l.command == "" {
		return l.defaultCommand(rawURL)
	}

	args := append([]string{}, l.args...)

	// On macOS, launch GUI apps with 'open -a' if command not in PATH
	if l.goos == "darwin" {
		if _, err := l.lookPath(l.command); err != nil {
			cmdArgs := []string{"-a", l.command}
			if len(args) > 0 {
				cmdArgs = append(cmdArgs, "--args")
				cmdArgs = append(cmdArgs, args...)
			}
			return "open", append(cmdArgs, rawURL)
		}
	}

	return l.command, append(args, rawURL)
}

// defaultCommand opens the URL using the system default handler
func (l *Launcher) defaultCommand(rawURL string) (string, []string) {
	switch l.goos {
	case "darwin":
		return "open", []string{rawURL}
	case "windows":
		return "cmd", []string{"/c", "start", "", rawURL}
	default:
		// Linux and other Unix-like systems
		return "xdg-open", []string{rawURL}
	}
}
