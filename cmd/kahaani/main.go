package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kahaaniverse/kahaani/internal/adapter"
	"github.com/kahaaniverse/kahaani/internal/content"
	"github.com/kahaaniverse/kahaani/internal/contentserver"
	"github.com/kahaaniverse/kahaani/internal/domain"
	"github.com/kahaaniverse/kahaani/internal/reader"
	"github.com/kahaaniverse/kahaani/internal/service"
	"github.com/kahaaniverse/kahaani/internal/store"
	"github.com/kahaaniverse/kahaani/internal/tui"
	"github.com/kahaaniverse/kahaani/internal/tui/styles"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

const (
	probeTimeout    = 15 * time.Second
	shutdownTimeout = 10 * time.Second
)

type options struct {
	showVersion bool
	demo        bool
	ephemeral   bool
}

func main() {
	var opts options
	flag.BoolVar(&opts.showVersion, "v", false, "print version")
	flag.BoolVar(&opts.showVersion, "version", false, "print version")
	flag.BoolVar(&opts.demo, "demo", false, "read the built-in sample books")
	flag.BoolVar(&opts.ephemeral, "ephemeral", false, "keep reading data in memory only")
	flag.Usage = usage
	flag.Parse()

	if opts.showVersion {
		fmt.Printf("kahaani %s\n", Version)
		return
	}

	if err := run(opts, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: kahaani [flags] [command]

Commands:
  read    open the reader (default)
  list    print the catalog with reading progress; list <query> searches it
  serve   publish books over HTTP
  init    write a configuration file
  reset   clear bookmarks, progress, library and language

Flags:
`)
	flag.PrintDefaults()
}

func run(opts options, args []string) error {
	command := "read"
	if len(args) > 0 {
		command = args[0]
	}

	// init runs before a config exists
	if command == "init" {
		return runSetupFlow()
	}

	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.demo {
		cfg.Content.Demo = true
	}
	if opts.ephemeral {
		cfg.Storage.Dir = ""
	}

	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)
	styles.ApplyTheme(cfg.UI.Theme)

	logger.Info("starting kahaani", "version", Version, "command", command)

	switch command {
	case "serve":
		return runServe(cfg, logger)
	case "read", "list", "reset":
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}

	provider, err := newProvider(cfg, logger)
	if err != nil {
		return err
	}

	dataDir, err := adapter.ExpandHome(cfg.Storage.Dir)
	if err != nil {
		return err
	}
	st, err := store.Open(dataDir, logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	switch command {
	case "reset":
		if err := service.NewSessionService(st, provider, logger).Reset(); err != nil {
			return fmt.Errorf("failed to reset reading data: %w", err)
		}
		fmt.Println("✓ Reading data cleared")
		return nil
	}

	readingSvc := service.NewReadingService(provider, st, logger,
		reader.WithTransitionWindow(cfg.Reader.TransitionWindow()))

	if command == "list" {
		return printCatalog(os.Stdout, readingSvc, strings.Join(args[1:], " "))
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the reader needs a terminal; use 'kahaani list' for plain output")
	}

	p := tea.NewProgram(tui.NewModel(readingSvc, logger), tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// newProvider picks the content source from configuration
func newProvider(cfg *adapter.Config, logger *slog.Logger) (domain.ContentProvider, error) {
	switch {
	case cfg.Content.Demo || cfg.Content.Source == "":
		return content.NewSampleProvider(), nil
	case cfg.Content.IsRemote():
		return content.NewHTTPProvider(cfg.Content.Source, logger), nil
	default:
		dir, err := adapter.ExpandHome(cfg.Content.Source)
		if err != nil {
			return nil, err
		}
		return content.NewDirProvider(dir, logger), nil
	}
}

// printCatalog writes the catalog, or the books matching query, with
// library progress as plain text
func printCatalog(w io.Writer, svc *service.ReadingService, query string) error {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	progress := make(map[string]string)
	for _, entry := range svc.Library(ctx) {
		progress[entry.Book.BookID] = entry.Progress.Label
	}

	books := svc.Catalog(ctx)
	if query != "" {
		books = svc.Search(ctx, query)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tGENRE\tPROGRESS")
	for _, b := range books {
		label, ok := progress[b.ID]
		if !ok {
			label = "-"
		}
		if page, ok := svc.Bookmark(b.ID); ok {
			label += fmt.Sprintf(" ★%d", page)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", b.ID, b.Title, b.Author, b.Genre, label)
	}
	return tw.Flush()
}

// runServe publishes books over HTTP until interrupted
func runServe(cfg *adapter.Config, logger *slog.Logger) error {
	var provider domain.ContentProvider = content.NewSampleProvider()
	if cfg.Server.Dir != "" {
		dir, err := adapter.ExpandHome(cfg.Server.Dir)
		if err != nil {
			return err
		}
		provider = content.NewDirProvider(dir, logger)
	}

	srv := contentserver.New(provider, cfg.Server.Addr, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	fmt.Printf("Serving books on %s\n", cfg.Server.Addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("content server: %w", err)
	case <-ctx.Done():
		logger.Info("content server stopping")
		return srv.Shutdown(shutdownTimeout)
	}
}

// runSetupFlow asks for a content source, checks it and writes the config
func runSetupFlow() error {
	fmt.Println()
	fmt.Println("Welcome to Kahaani!")
	fmt.Println()

	cfg := adapter.DefaultConfig()
	in := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("Book source URL or directory (leave empty for the sample books): ")
		input, err := in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read input: %w", err)
		}
		eof := errors.Is(err, io.EOF)
		source := strings.TrimSpace(input)

		if source == "" {
			cfg.Content.Demo = true
			cfg.Content.Source = ""
			break
		}

		cfg.Content.Demo = false
		cfg.Content.Source = source
		provider, err := newProvider(cfg, adapter.NullLogger())
		if err != nil {
			return err
		}

		fmt.Println()
		count, err := probeWithSpinner(provider)
		if err != nil {
			fmt.Printf("\n✗ %v\n", err)
			if eof {
				return err
			}
			fmt.Println("Please check the source and try again.")
			fmt.Println()
			continue
		}
		fmt.Printf("✓ Found %d books\n", count)
		break
	}

	if err := adapter.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Printf("✓ Configuration saved to %s\n", adapter.ConfigFile())
	fmt.Println()
	fmt.Println("Run kahaani again to start reading.")
	return nil
}

// probeWithSpinner loads the catalog of provider with a visual spinner
func probeWithSpinner(provider domain.ContentProvider) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	resultCh := make(chan int, 1)
	go func() {
		resultCh <- len(provider.GetCatalog(ctx))
	}()

	frame := 0
	fmt.Printf("\r%s Loading catalog...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case count := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if count == 0 {
				return 0, errors.New("no books found")
			}
			return count, nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Loading catalog...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return 0, errors.New("catalog request timed out")
		}
	}
}
