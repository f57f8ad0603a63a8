package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kennethkenn/Fitness-Log/internal/config"
	"github.com/kennethkenn/Fitness-Log/internal/database"
	"github.com/kennethkenn/Fitness-Log/internal/logging"
	"github.com/kennethkenn/Fitness-Log/internal/maintenance"
	"github.com/kennethkenn/Fitness-Log/internal/tracker"
	"github.com/kennethkenn/Fitness-Log/internal/web"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// CLI flags
var (
	port        int
	bind        string
	allowSubnet string
	dbPath      string
	logFile     string
	verbosity   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fitness-log",
		Short: "Fitness-Log - Workout tracking server",
		Long:  `Fitness-Log is the backend for a personal workout tracker: it persists exercises, workouts, and sets in SQLite and serves aggregated history over HTTP.`,
		RunE:  run,
	}

	// Flags
	rootCmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP server port (required, or set PORT env var)")
	rootCmd.Flags().StringVarP(&bind, "bind", "b", "", "IP address to bind to (e.g., 127.0.0.1, 0.0.0.0)")
	rootCmd.Flags().StringVarP(&allowSubnet, "allow-subnet", "a", "", "CIDR subnet allowed to connect (e.g., 192.168.1.0/24)")
	rootCmd.Flags().StringVarP(&dbPath, "db", "d", "./fitness-log.db", "SQLite database path (or set DB_PATH env var)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Rotating log file path (disabled when empty)")
	rootCmd.Flags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v debug, -vv trace)")

	// Version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("fitness-log %s (commit: %s, built: %s)\n", version, commit, date)
		},
	})

	// Vacuum command
	vacuumCmd := &cobra.Command{
		Use:   "vacuum",
		Short: "Rebuild the database file to reclaim unused space",
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(verbosity, "", logging.DefaultRotationSettings())
			db, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := maintenance.NewManager(db).RunVacuum(); err != nil {
				return err
			}
			log.Info().Str("database", db.Path()).Msg("Vacuum complete")
			return nil
		},
	}
	vacuumCmd.Flags().StringVarP(&dbPath, "db", "d", "./fitness-log.db", "SQLite database path (or set DB_PATH env var)")
	rootCmd.AddCommand(vacuumCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// Check for PORT env var if flag not set
	if port == 0 {
		if envPort := os.Getenv("PORT"); envPort != "" {
			if _, err := fmt.Sscanf(envPort, "%d", &port); err != nil {
				return fmt.Errorf("invalid PORT environment variable %q: %w", envPort, err)
			}
		}
	}

	// Validate port
	if port == 0 {
		return fmt.Errorf("--port flag or PORT environment variable is required")
	}

	// Validate bind address if provided
	if bind != "" {
		if ip := net.ParseIP(bind); ip == nil {
			return fmt.Errorf("invalid bind address: %s", bind)
		}
	}

	// Validate and parse allow-subnet if provided
	var allowedNet *net.IPNet
	if allowSubnet != "" {
		_, parsedNet, err := net.ParseCIDR(allowSubnet)
		if err != nil {
			return fmt.Errorf("invalid allow-subnet CIDR: %s", allowSubnet)
		}
		allowedNet = parsedNet
	}

	logging.Setup(verbosity, logFile, logging.DefaultRotationSettings())

	// Warn if binding to all interfaces without an allow list
	if (bind == "" || bind == "0.0.0.0" || bind == "::") && allowSubnet == "" {
		log.Warn().Msg("Server is accessible from all interfaces without subnet restrictions. Consider using --bind or --allow-subnet for security.")
	}

	log.Info().
		Str("version", version).
		Int("port", port).
		Str("bind", bind).
		Str("allow_subnet", allowSubnet).
		Str("database", dbPath).
		Msg("Starting Fitness-Log")

	// Initialize storage; any failure here is an unrecoverable startup error
	db, err := openDatabase()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}
	if err := db.InitializeDefaults(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize default settings")
	}
	if err := db.SeedExercises(); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed exercise catalog")
	}

	// Re-apply logging with rotation settings from the database
	if logFile != "" {
		loader := config.NewLoader(db)
		logging.Setup(verbosity, logFile, logging.RotationSettings{
			MaxSizeMB:  loader.Int("log.max_size_mb", logging.DefaultMaxSizeMB),
			MaxBackups: loader.Int("log.max_backups", logging.DefaultMaxBackups),
			MaxAgeDays: loader.Int("log.max_age_days", logging.DefaultMaxAgeDays),
			Compress:   loader.Bool("log.compress", logging.DefaultCompress),
		})
	}

	service := tracker.New(db)
	server := web.NewServer(db, service, port, bind, allowedNet)

	// Scheduled database maintenance
	maintenanceMgr := maintenance.NewManager(db)
	if started := maintenanceMgr.Start(); started {
		defer maintenanceMgr.Stop()
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}

	log.Info().Msg("Fitness-Log stopped")
	return nil
}

func openDatabase() (*database.DB, error) {
	// Check for DB_PATH env var if using default
	if dbPath == "./fitness-log.db" {
		if envDB := os.Getenv("DB_PATH"); envDB != "" {
			dbPath = envDB
		}
	}
	return database.New(dbPath)
}
