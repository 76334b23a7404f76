package app

import (
	"context"
	"log/slog"

	scheduleCommands "github.com/felixgeelhaar/dayslot/internal/scheduling/application/commands"
	scheduleQueries "github.com/felixgeelhaar/dayslot/internal/scheduling/application/queries"
	scheduleSubs "github.com/felixgeelhaar/dayslot/internal/scheduling/application/subscribers"
	schedulingDomain "github.com/felixgeelhaar/dayslot/internal/scheduling/domain"
	"github.com/felixgeelhaar/dayslot/internal/scheduling/infrastructure/icalendar"
	"github.com/felixgeelhaar/dayslot/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/dayslot/pkg/config"
	"github.com/felixgeelhaar/dayslot/pkg/observability"
)

// Container holds all application dependencies for one day's schedule.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *observability.PrometheusMetrics

	// Events
	EventBus           *eventbus.InProcessEventBus
	ScheduleSubscriber *scheduleSubs.ScheduleSubscriber

	// Domain
	Scheduler *schedulingDomain.Scheduler

	// Schedule Command Handlers
	AddEventHandler *scheduleCommands.AddEventHandler

	// Schedule Query Handlers
	GetScheduleHandler     *scheduleQueries.GetScheduleHandler
	DetectConflictsHandler *scheduleQueries.DetectConflictsHandler
	FindFreeSlotsHandler   *scheduleQueries.FindFreeSlotsHandler

	// Calendar files
	Importer *icalendar.Importer
	Exporter *icalendar.Exporter

	metricsServer *observability.MetricsServer
}

// SchedulerConfig converts application settings to scheduler settings.
func SchedulerConfig(cfg *config.Config) (schedulingDomain.SchedulerConfig, error) {
	hours, err := schedulingDomain.ParseWorkingHours(cfg.WorkStart, cfg.WorkEnd)
	if err != nil {
		return schedulingDomain.SchedulerConfig{}, err
	}
	detection, err := schedulingDomain.ParseDetectionMode(cfg.Detection)
	if err != nil {
		return schedulingDomain.SchedulerConfig{}, err
	}

	return schedulingDomain.SchedulerConfig{
		WorkingHours:   hours,
		Detection:      detection,
		SlotStep:       cfg.SlotStep,
		MaxSuggestions: cfg.MaxSuggestions,
	}, nil
}

// NewContainer creates and wires all dependencies.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = observability.DiscardLogger()
	}

	schedulerCfg, err := SchedulerConfig(cfg)
	if err != nil {
		return nil, err
	}
	scheduler, err := schedulingDomain.NewScheduler(schedulerCfg)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config:    cfg,
		Logger:    logger,
		Metrics:   observability.NewPrometheusMetrics(),
		EventBus:  eventbus.NewInProcessEventBus(logger),
		Scheduler: scheduler,
		Exporter:  icalendar.NewExporter(),
	}

	c.Importer = icalendar.NewImporter(logger).WithMetrics(c.Metrics)

	c.ScheduleSubscriber = scheduleSubs.NewScheduleSubscriber(c.Metrics, logger)
	c.EventBus.RegisterConsumer(c.ScheduleSubscriber)

	c.AddEventHandler = scheduleCommands.NewAddEventHandler(scheduler, c.EventBus, c.Metrics, logger)
	c.GetScheduleHandler = scheduleQueries.NewGetScheduleHandler(scheduler)
	c.DetectConflictsHandler = scheduleQueries.NewDetectConflictsHandler(scheduler)
	c.FindFreeSlotsHandler = scheduleQueries.NewFindFreeSlotsHandler(scheduler)

	c.metricsServer = observability.StartMetricsServer(cfg.MetricsAddr, c.Metrics, logger)

	logger.DebugContext(ctx, "container ready",
		"working_hours", schedulerCfg.WorkingHours.String(),
		"detection", string(schedulerCfg.Detection),
		"consumers", c.EventBus.Registry().ConsumerCount(),
	)

	return c, nil
}

// Close releases resources held by the container.
func (c *Container) Close(ctx context.Context) error {
	if c.Config.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Config.ShutdownTimeout)
		defer cancel()
	}

	if err := c.metricsServer.Shutdown(ctx); err != nil {
		c.Logger.Warn("metrics server shutdown failed", observability.ErrorKey, err)
	}
	return c.EventBus.Close()
}
