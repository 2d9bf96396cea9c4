package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/rpggio/statusdeck/internal/config"
	"github.com/rpggio/statusdeck/internal/mcp"
	"github.com/rpggio/statusdeck/internal/sqlite"
	"github.com/rpggio/statusdeck/internal/storage"
	"github.com/rpggio/statusdeck/internal/store"
	"github.com/rpggio/statusdeck/internal/timeutil"
	"github.com/rpggio/statusdeck/internal/tui"
	"github.com/rpggio/statusdeck/internal/views"
)

// Default storage locations when config leaves the path empty.
const (
	defaultStateDir   = "statusdeck-state"
	defaultSQLitePath = "statusdeck.db"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "statusdeck",
		Short: "Project status board with an MCP tool surface",
		Long: `statusdeck keeps a board of projects with weekly status updates.

Agents connect over MCP (stdio or streamable HTTP) to maintain the board:
create projects, file weekly updates, and read dashboard views. Run
'statusdeck present' to show the board as a full-screen slideshow.

Configuration comes from an optional YAML file (STATUSDECK_CONFIG_PATH)
plus STATUSDECK_* environment variables.`,
		// A bare invocation serves, which is what MCP client configs expect.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
	rootCmd.AddCommand(newServeCmd(), newPresentCmd())
	return rootCmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio or HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func newPresentCmd() *cobra.Command {
	var (
		dateFlag     string
		intervalFlag int
	)
	cmd := &cobra.Command{
		Use:   "present",
		Short: "Show the board as a full-screen slideshow",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresent(dateFlag, intervalFlag)
		},
	}
	cmd.Flags().StringVar(&dateFlag, "date", "", "Report date (YYYY-MM-DD). Defaults to the stored report date.")
	cmd.Flags().IntVar(&intervalFlag, "interval", 0, "Seconds between slides. 0 uses the slide_seconds preference; negative disables autoplay.")
	return cmd
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// stdout carries JSON-RPC in stdio mode, so console logs go to stderr.
	console := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		console = os.Stderr
	}
	logger, closeLog := buildLogger(cfg.Log.Level, console)
	defer closeLog()

	blobs, cleanup, err := openBlobStore(cfg.Storage)
	if err != nil {
		logger.Error("failed to open storage", "backend", cfg.Storage.Backend, "error", err)
		return err
	}
	defer cleanup()

	st, err := store.Open(context.Background(), blobs, logger)
	if err != nil {
		logger.Error("failed to load board state", "error", err)
		return err
	}

	mcpServer := mcp.NewServer(mcp.Config{
		Board:  st,
		Logger: logger,
	})

	if cfg.Transport.Mode == "stdio" {
		return runStdioMode(logger, mcpServer)
	}
	return runHTTPMode(logger, mcpServer, cfg.Server.Host, cfg.Server.Port)
}

func runPresent(dateFlag string, intervalFlag int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// The terminal belongs to the slideshow; logs go to the optional file.
	logger, closeLog := buildLogger(cfg.Log.Level, io.Discard)
	defer closeLog()

	blobs, cleanup, err := openBlobStore(cfg.Storage)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer cleanup()

	st, err := store.Open(context.Background(), blobs, logger)
	if err != nil {
		return fmt.Errorf("load board state: %w", err)
	}

	date := dateFlag
	if date == "" {
		date = st.SelectedDate()
	} else if _, err := timeutil.ParseDay(date); err != nil {
		return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", dateFlag)
	}

	prefs := st.Prefs()
	interval := intervalFlag
	if interval == 0 {
		interval = prefs.SlideSeconds
	}

	projects := st.Projects()
	weekStart := timeutil.WeekMonday(date)
	deck := tui.Deck{
		Title:     prefs.Title,
		Subtitle:  prefs.Subtitle,
		Date:      date,
		WeekStart: weekStart,
		WeekLabel: timeutil.FormatRange(weekStart),
		Summary:   views.Summary(projects),
		Statuses:  views.StatusDistribution(projects),
		Slides:    views.Slides(projects, date),
	}

	app := tui.New(deck, time.Duration(interval)*time.Second)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

// openBlobStore builds the configured persistence backend. The returned
// cleanup must run after the store is no longer used.
func openBlobStore(cfg config.StorageConfig) (storage.BlobStore, func(), error) {
	switch cfg.Backend {
	case "memory":
		return storage.NewMemory(), func() {}, nil

	case "sqlite":
		path := cfg.Path
		if path == "" {
			path = defaultSQLitePath
		}
		if path != ":memory:" {
			if err := ensureParentDir(path); err != nil {
				return nil, nil, fmt.Errorf("prepare database path: %w", err)
			}
		}
		db, err := sqlite.New(path)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(); err != nil {
			db.Close()
			return nil, nil, err
		}
		return sqlite.NewBlobRepository(db), func() { db.Close() }, nil

	default: // "file"
		dir := cfg.Path
		if dir == "" {
			dir = defaultStateDir
		}
		files, err := storage.NewFile(dir)
		if err != nil {
			return nil, nil, err
		}
		return files, func() {}, nil
	}
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) error {
	logger.Info("starting stdio transport")

	// Run ends when stdin closes or a signal cancels the context.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("stdio server error", "error", err)
		return err
	}
	logger.Info("shutting down")
	return nil
}

func runHTTPMode(logger *slog.Logger, mcpServer *sdkmcp.Server, host string, port int) error {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	mux := http.NewServeMux()
	mux.Handle("/mcp", mcpHandler)
	mux.Handle("/mcp/", mcpHandler)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	addr := fmt.Sprintf("%s:%d", host, port)
	srv := &http.Server{Addr: addr, Handler: mux}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		serveErr <- srv.ListenAndServe()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	return nil
}

// buildLogger writes structured logs to console, or to the file named by
// STATUSDECK_LOG_PATH when set. The returned closer flushes the file.
func buildLogger(level string, console io.Writer) (*slog.Logger, func()) {
	writer := console
	closeFn := func() {}

	if logPath := os.Getenv("STATUSDECK_LOG_PATH"); logPath != "" {
		fileWriter, file, err := newLogFileWriter(logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			writer = fileWriter
			closeFn = func() { file.Close() }
		}
	}

	logger := slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}))
	return logger, closeFn
}

// ensureParentDir creates the directory holding path when it is missing.
func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

const (
	maxLogSizeBytes  = 6 * 1024 * 1024
	keepLogSizeBytes = 5 * 1024 * 1024
)

// logFileWriter appends to a log file, trimming it back to the newest
// keepLogSizeBytes once it grows past maxLogSizeBytes.
type logFileWriter struct {
	mu   sync.Mutex
	file *os.File
}

func newLogFileWriter(path string) (*logFileWriter, *os.File, error) {
	if err := ensureParentDir(path); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	w := &logFileWriter{file: file}
	if err := w.trim(); err != nil {
		file.Close()
		return nil, nil, err
	}
	return w, file, nil
}

func (w *logFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}
	return n, w.trim()
}

func (w *logFileWriter) trim() error {
	info, err := w.file.Stat()
	if err != nil {
		return err
	}
	if info.Size() <= maxLogSizeBytes {
		return nil
	}

	tail := make([]byte, keepLogSizeBytes)
	n, err := w.file.ReadAt(tail, info.Size()-keepLogSizeBytes)
	if err != nil && err != io.EOF {
		return err
	}
	if err := w.file.Truncate(0); err != nil {
		return err
	}
	// The O_APPEND write lands at the new end, offset zero.
	_, err = w.file.Write(tail[:n])
	return err
}
