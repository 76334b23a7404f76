package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	internalApp "github.com/felixgeelhaar/dayslot/internal/app"
	"github.com/felixgeelhaar/dayslot/pkg/config"
	"github.com/felixgeelhaar/dayslot/pkg/observability"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	verbose   bool
	workStart string
	workEnd   string
	detection string
	logger    *slog.Logger
	container *internalApp.Container
)

type commandContext struct {
	correlationID uuid.UUID
	startedAt     time.Time
}

type commandContextKey struct{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dayslot",
	Short: "Dayslot - plan one day and catch overlapping events",
	Long: `Dayslot keeps a single day's events in start order, flags events
that overlap their neighbour and suggests free slots within working hours.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		info := commandContext{
			correlationID: uuid.New(),
			startedAt:     time.Now(),
		}
		ctx := observability.WithCorrelationID(cmd.Context(), info.correlationID.String())
		cmd.SetContext(context.WithValue(ctx, commandContextKey{}, info))

		if cmd.Annotations[skipContainerAnnotation] == "true" || GetApp() != nil {
			return nil
		}
		if err := bootstrap(cmd.Context()); err != nil {
			return err
		}

		logger.DebugContext(cmd.Context(), "command start",
			"command", cmd.CommandPath(),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		info, ok := cmd.Context().Value(commandContextKey{}).(commandContext)
		if ok && logger != nil {
			logger.DebugContext(cmd.Context(), "command end",
				"command", cmd.CommandPath(),
				"duration_ms", time.Since(info.startedAt).Milliseconds(),
			)
		}
		if container != nil {
			_ = container.Close(context.Background())
			container = nil
		}
	},
}

// skipContainerAnnotation marks commands that run without a schedule.
const skipContainerAnnotation = "dayslot/skip-container"

// bootstrap loads configuration, applies flag overrides and builds the
// application container.
func bootstrap(ctx context.Context) error {
	cfg, err := config.LoadFile(cfgFile)
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg)

	if logger == nil {
		logger = newLogger(cfg)
	}

	c, err := internalApp.NewContainer(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	container = c
	SetApp(NewAppFromContainer(c))
	return nil
}

func applyFlagOverrides(cfg *config.Config) {
	if workStart != "" {
		cfg.WorkStart = workStart
	}
	if workEnd != "" {
		cfg.WorkEnd = workEnd
	}
	if detection != "" {
		cfg.Detection = detection
	}
	if verbose {
		cfg.LogLevel = string(observability.LogLevelDebug)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	logCfg := observability.DefaultLogConfig()
	if cfg.IsProduction() {
		logCfg = observability.ProductionLogConfig()
	}
	logCfg.Level = observability.LogLevel(cfg.LogLevel)
	logCfg.Format = observability.LogFormat(cfg.LogFormat)
	logCfg.ServiceVersion = Version
	return observability.NewLogger(logCfg)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&workStart, "work-start", "", "working hours start (HH:MM, default 08:00)")
	rootCmd.PersistentFlags().StringVar(&workEnd, "work-end", "", "working hours end (HH:MM or 24:00, default 18:00)")
	rootCmd.PersistentFlags().StringVar(&detection, "detection", "", "conflict detection mode (adjacent, sweep)")
}

// AddCommand adds a command to the root command.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// SetLogger sets the CLI logger.
func SetLogger(l *slog.Logger) {
	logger = l
}

// Logger returns the CLI logger, falling back to the default logger.
func Logger() *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
