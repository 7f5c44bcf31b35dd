package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reelfind/internal/adapter"
	"github.com/mmcdole/reelfind/internal/analysis"
	"github.com/mmcdole/reelfind/internal/clip"
	"github.com/mmcdole/reelfind/internal/config"
	"github.com/mmcdole/reelfind/internal/controller"
	"github.com/mmcdole/reelfind/internal/domain"
	"github.com/mmcdole/reelfind/internal/log"
	"github.com/mmcdole/reelfind/internal/service"
	"github.com/mmcdole/reelfind/internal/store"
	"github.com/mmcdole/reelfind/internal/tui"
	"github.com/mmcdole/reelfind/internal/tui/styles"
	"golang.org/x/term"
	"golang.org/x/time/rate"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                              \r"

const usage = `Usage:
  reelfind                  start the interactive interface
  reelfind identify <url>   identify the movie in a clip and print it
  reelfind saved [query]    list saved movies, optionally fuzzy-filtered
`

func main() {
	// Handle version flag
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if showVersion {
		fmt.Printf("reelfind %s\n", Version)
		return
	}

	if err := run(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles the wired services
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	kv       *store.LocalStore
	poller   *service.JobPoller
	saved    *service.SavedService
	ctrl     *controller.Controller
	preview  domain.ClipPreviewer
	launcher *adapter.Launcher
}

func run(args []string) error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, logFile, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	} else {
		defer logFile.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting reelfind", "version", Version)

	a, err := wire(cfg, logger)
	if err != nil {
		return err
	}
	defer a.kv.Close()

	if len(args) == 0 {
		if err := cfg.Validate(); err != nil {
			return err
		}
		return a.runTUI()
	}

	switch args[0] {
	case "identify":
		if len(args) < 2 {
			return fmt.Errorf("identify needs a clip URL\n\n%s", usage)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return a.identify(args[1])
	case "saved":
		return a.listSaved(strings.Join(args[1:], " "))
	default:
		return fmt.Errorf("unknown command %q\n\n%s", args[0], usage)
	}
}

func wire(cfg *config.Config, logger *slog.Logger) (*app, error) {
	kv, err := store.NewLocalStore(cfg.Storage.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open saved movies: %w", err)
	}

	var limiter *rate.Limiter
	if cfg.Server.MaxRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Server.MaxRPS), 1)
	}
	client := analysis.NewClient(cfg.Server.URL, cfg.Server.Timeout, limiter, logger)

	// Create services
	poller := service.NewJobPoller(client, cfg.Poll.Interval, logger)
	saved := service.NewSavedService(kv, logger)

	a := &app{
		cfg:      cfg,
		logger:   logger,
		kv:       kv,
		poller:   poller,
		saved:    saved,
		ctrl:     controller.New(poller, saved, logger),
		launcher: adapter.NewLauncher(cfg.Browser.Command, cfg.Browser.Args, logger),
	}
	if cfg.Preview.Enabled {
		a.preview = clip.NewPreviewer(nil, logger)
	}
	return a, nil
}

func (a *app) runTUI() error {
	model := tui.NewModel(a.ctrl, a.poller, a.preview, a.launcher)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	a.logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	a.logger.Info("shutting down")
	return nil
}

// identify runs one job to completion, showing a spinner on a terminal
func (a *app) identify(clipURL string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	progress := make(chan domain.PollProgress, 8)
	done := make(chan error, 1)

	go func() {
		done <- a.ctrl.Run(ctx, clipURL, tui.NewChannelObserver(progress))
	}()

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	frame := 0
	label := "Submitting clip..."
	if interactive {
		fmt.Printf("\r%s %s", styles.SpinnerFrames[frame], label)
	}

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case p := <-progress:
			if !p.Done {
				label = fmt.Sprintf("Analyzing clip (check %d)...", p.Attempt)
			}

		case <-ticker.C:
			if interactive {
				frame++
				fmt.Printf("\r%s %s", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)], label)
			}

		case err := <-done:
			if interactive {
				fmt.Print(clearSpinnerLine)
			}
			if err != nil {
				if msg := a.ctrl.Err(); msg != "" {
					return fmt.Errorf("%s", msg)
				}
				return err
			}
			printMovie(a.ctrl.Current())
			return nil
		}
	}
}

func printMovie(m *domain.MovieRecord) {
	if m == nil {
		return
	}
	fmt.Printf("%s (%s)\n", m.Title, m.Year)
	if m.OriginalTitle != "" && m.OriginalTitle != m.Title {
		fmt.Printf("  Original title: %s\n", m.OriginalTitle)
	}
	if pct, ok := m.ConfidencePercent(); ok {
		fmt.Printf("  Match: %d%%\n", pct)
	}
	if link, ok := m.DetailURL(); ok {
		fmt.Printf("  %s\n", link)
	}
}

func (a *app) listSaved(query string) error {
	a.saved.Load()
	movies := a.saved.Search(query)
	if len(movies) == 0 {
		fmt.Println("No saved movies.")
		return nil
	}
	for _, m := range movies {
		line := fmt.Sprintf("%s (%s)", m.Title, m.Year)
		if link, ok := m.DetailURL(); ok {
			line += "  " + link
		}
		fmt.Println(line)
	}
	return nil
}
