// filepath: internal/cli/root.go
package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/knkgun/gallery/internal/api/handlers"
	"github.com/knkgun/gallery/internal/audit"
	"github.com/knkgun/gallery/internal/config"
	"github.com/knkgun/gallery/internal/housekeeping"
	"github.com/knkgun/gallery/internal/httpserver"
	"github.com/knkgun/gallery/internal/logging"
	"github.com/knkgun/gallery/internal/preview"
	"github.com/knkgun/gallery/internal/services"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version info
	Version   = "1.0.0"
	StartTime time.Time

	// Global config object populated by flags/env/file
	cfg *config.Config

	// v resolves flag and environment overrides
	v = viper.New()
)

// RootCmd represents the base command when called without any subcommands.
// It starts the HTTP server.
var RootCmd = &cobra.Command{
	Use:   "gallery",
	Short: "Gallery preview service",
	Long:  `An HTTP service rendering previews, thumbnails and downloads of gallery images.`,
	// PersistentPreRunE loads the configuration before any command runs.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig()
	},
	// RunE executes the main server logic.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	StartTime = time.Now()

	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setting binds a config key to a flag and an environment variable.
type setting struct {
	key  string
	flag string
	env  string
}

// Flags shared by every command.
var persistentSettings = []setting{
	{"config_path", "config_path", "GALLERY_CONFIG_PATH"},
	{"logging.level", "log-level", "GALLERY_LOG_LEVEL"},
	{"database.path", "database-path", "GALLERY_DATABASE_PATH"},
	{"database.storage_root", "storage-root", "GALLERY_STORAGE_ROOT"},
	{"preview.square_thumbnail_width", "square-width", "GALLERY_SQUARE_WIDTH"},
	{"preview.svg_enabled", "svg", "GALLERY_SVG_ENABLED"},
	{"preview.convert_path", "convert-path", "GALLERY_CONVERT_PATH"},
	{"preview.icon_dir", "icon-dir", "GALLERY_ICON_DIR"},
	{"preview.default_owner", "default-owner", "GALLERY_DEFAULT_OWNER"},
	{"cache.backend", "cache-backend", "GALLERY_CACHE_BACKEND"},
	{"cache.redis_addr", "redis-addr", "GALLERY_REDIS_ADDR"},
	{"cache.redis_password", "", "GALLERY_REDIS_PASSWORD"},
}

// Server flags.
var serverSettings = []setting{
	{"server.host", "host", "GALLERY_HOST"},
	{"server.port", "port", "GALLERY_PORT"},
	{"server.max_download_size", "max-download-size", "GALLERY_MAX_DOWNLOAD_SIZE"},
	{"logging.audit_enabled", "audit-enabled", "GALLERY_AUDIT_ENABLED"},
	{"housekeeping.interval", "housekeeping-interval", "GALLERY_HOUSEKEEPING_INTERVAL"},
	{"housekeeping.max_age", "housekeeping-max-age", "GALLERY_HOUSEKEEPING_MAX_AGE"},
}

func init() {
	pf := RootCmd.PersistentFlags()
	pf.String("config_path", "config.toml", "Path to the base configuration file. (Env: GALLERY_CONFIG_PATH)")
	pf.String("log-level", "", "Logging level (debug, info, warn, error). (Env: GALLERY_LOG_LEVEL)")
	pf.String("database-path", "", "Path to the sqlite database. (Env: GALLERY_DATABASE_PATH)")
	pf.String("storage-root", "", "Directory holding the galleries, one folder per owner. (Env: GALLERY_STORAGE_ROOT)")
	pf.Int("square-width", 0, "Width of the square thumbnails that get repaired. (Env: GALLERY_SQUARE_WIDTH)")
	pf.Bool("svg", false, "Render SVG previews with ImageMagick. (Env: GALLERY_SVG_ENABLED)")
	pf.String("convert-path", "", "Path to the ImageMagick convert executable. (Env: GALLERY_CONVERT_PATH)")
	pf.String("icon-dir", "", "Directory with media type icons. (Env: GALLERY_ICON_DIR)")
	pf.String("default-owner", "", "Owner used when a request names none. (Env: GALLERY_DEFAULT_OWNER)")
	pf.String("cache-backend", "", "Preview cache: sqlite, memory or redis. (Env: GALLERY_CACHE_BACKEND)")
	pf.String("redis-addr", "", "Address of the redis preview cache. (Env: GALLERY_REDIS_ADDR)")

	f := RootCmd.Flags()
	f.String("host", "", "Interface for the HTTP server. (Env: GALLERY_HOST)")
	f.Int("port", 0, "Port for the HTTP server. (Env: GALLERY_PORT)")
	f.String("max-download-size", "", "Largest file served as a download (e.g. '64MB'). (Env: GALLERY_MAX_DOWNLOAD_SIZE)")
	f.Bool("audit-enabled", false, "Enable detailed audit logging. (Env: GALLERY_AUDIT_ENABLED=true)")
	f.String("housekeeping-interval", "", "Interval of the cache purge, '0' disables it. (Env: GALLERY_HOUSEKEEPING_INTERVAL)")
	f.String("housekeeping-max-age", "", "Age after which cached previews are purged. (Env: GALLERY_HOUSEKEEPING_MAX_AGE)")

	bindSettings(pf, persistentSettings)
	bindSettings(f, serverSettings)
}

// initializeConfig loads and overrides configuration values.
func initializeConfig() error {
	cfgFile := v.GetString("config_path")

	var err error
	cfg, err = config.LoadConfig(cfgFile)
	if err != nil {
		if os.IsNotExist(err) {
			// Create empty config if not found, rely on defaults/flags
			cfg = &config.Config{}
		} else {
			return fmt.Errorf("failed to load configuration from %s: %w", cfgFile, err)
		}
	}

	// Flags take precedence over environment variables, both over the file.
	applyOverrides(cfg)

	if err := cfg.ParseAndValidate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logging.Init(cfg.Logging.Level)
	return nil
}

// runServer contains the logic to start the HTTP server with graceful shutdown.
func runServer() error {
	app, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	worker := housekeeping.NewService(app.Repo, cfg.HousekeepingInterval, cfg.HousekeepingMaxAge)
	housekeepingService := services.NewHousekeepingService(worker)
	infoService := services.NewInfoService(
		Version,
		StartTime,
		app.Engine.IsMimeSupported(preview.MediaTypeSVG),
		app.Store.Backend(),
		app.Previews.Validator.SquareWidth,
	)
	previewService := services.NewPreviewService(app.Previews)
	loggerAuditor := audit.NewLoggerAuditor(cfg.Logging.AuditEnabled)

	housekeepingService.Start()
	// No defer stop here, we stop explicitly during graceful shutdown

	h := handlers.NewHandlers(infoService, previewService, housekeepingService, loggerAuditor, cfg)
	r := httpserver.SetupRouter(h)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Create a channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logging.Log.Infof("Server starting on %s (cache: %s)", serverAddr, app.Store.Backend())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Block until a signal is received or the listener fails
	select {
	case <-stop:
	case err := <-serverErr:
		housekeepingService.Stop()
		return fmt.Errorf("server failed to start: %w", err)
	}
	logging.Log.Info("Shutting down server...")

	// Create a deadline for existing requests to complete (30 seconds)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	housekeepingService.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Log.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	logging.Log.Info("Server exiting")
	return nil
}
