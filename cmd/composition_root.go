package cmd

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	httpadapter "morna/internal/adapters/in/http"
	kafkain "morna/internal/adapters/in/kafka"
	"morna/internal/adapters/in/pgnotify"
	kafkaout "morna/internal/adapters/out/kafka"
	"morna/internal/adapters/out/postgres"
	"morna/internal/core/application/realtime"
	"morna/internal/core/application/usecases/commands"
	"morna/internal/core/application/usecases/queries"
	"morna/internal/core/ports"
	"morna/internal/jobs"
	"morna/internal/pkg/metrics"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	metrics    *metrics.Recorder
	publisher  *kafkaout.ChangePublisher
	uowFactory *postgres.GormUnitOfWorkFactory
	reconciler *realtime.Reconciler
	fetcher    *realtime.QueryFetcher
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	c := &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		logger:     logger,
		metrics:    metrics.NewRecorder(),
		reconciler: realtime.NewReconciler(logger),
	}

	// With the postgres feed the triggers announce changes, so the unit of
	// work publishes nothing itself.
	var publisher ports.ChangePublisher
	if configs.ChangeFeed == ChangeFeedKafka {
		c.publisher = kafkaout.NewChangePublisher(configs.KafkaHost, configs.KafkaChangesTopic)
		publisher = c.publisher
	}
	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger)

	c.fetcher = realtime.NewQueryFetcher(
		c.CreateListOrdersQueryHandler(),
		c.CreateListBoxesQueryHandler(),
		c.CreateListContainersQueryHandler(),
		c.CreateCountChildrenQueryHandler(),
	)

	c.metrics.RegisterGauge("realtime_sessions", "Dashboards currently attached.", func() float64 {
		return float64(c.reconciler.Sessions())
	})

	return c
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uowFactoryFunc() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateQuoteOrderCommandHandler() commands.QuoteOrderCommandHandler {
	return commands.NewQuoteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	return commands.NewAdvanceOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreatePackOrderCommandHandler() commands.PackOrderCommandHandler {
	return commands.NewPackOrderCommandHandler(c.uowFactoryFunc())
}

func (c *CompositionRoot) CreateLoadBoxCommandHandler() commands.LoadBoxCommandHandler {
	return commands.NewLoadBoxCommandHandler(c.uowFactoryFunc())
}

func (c *CompositionRoot) CreateBoxLifecycleCommandHandler() commands.BoxLifecycleCommandHandler {
	return commands.NewBoxLifecycleCommandHandler(c.uowFactoryFunc())
}

func (c *CompositionRoot) CreateContainerLifecycleCommandHandler() commands.ContainerLifecycleCommandHandler {
	return commands.NewContainerLifecycleCommandHandler(c.uowFactoryFunc())
}

func (c *CompositionRoot) CreateSendContainerCommandHandler() commands.SendContainerCommandHandler {
	return commands.NewSendContainerCommandHandler(c.uowFactoryFunc())
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListBoxesQueryHandler() queries.ListBoxesQueryHandler {
	return queries.NewListBoxesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListContainersQueryHandler() queries.ListContainersQueryHandler {
	return queries.NewListContainersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCountChildrenQueryHandler() queries.CountChildrenQueryHandler {
	return queries.NewCountChildrenQueryHandler(c.gormDB)
}

func (c *CompositionRoot) Metrics() *metrics.Recorder {
	return c.metrics
}

func (c *CompositionRoot) NewHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		QuoteOrder:         c.CreateQuoteOrderCommandHandler(),
		AdvanceOrder:       c.CreateAdvanceOrderCommandHandler(),
		PackOrder:          c.CreatePackOrderCommandHandler(),
		LoadBox:            c.CreateLoadBoxCommandHandler(),
		BoxLifecycle:       c.CreateBoxLifecycleCommandHandler(),
		ContainerLifecycle: c.CreateContainerLifecycleCommandHandler(),
		SendContainer:      c.CreateSendContainerCommandHandler(),
	}, c.fetcher, c.metrics, c.logger)
}

func (c *CompositionRoot) NewRealtimeEndpoint() *httpadapter.RealtimeEndpoint {
	cfg := realtime.Config{
		Debounce:      c.configs.RealtimeDebounce,
		MaxWait:       c.configs.RealtimeMaxWait,
		RetryInterval: c.configs.RealtimeRetryInterval,
	}
	return httpadapter.NewRealtimeEndpoint(c.reconciler, c.fetcher, cfg, c.metrics, c.logger)
}

func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.reconciler, c.configs.RealtimeResyncSchedule, c.logger)
}

// changeHandler counts every event before handing it to the reconciler.
func (c *CompositionRoot) changeHandler() ports.ChangeHandler {
	return ports.ChangeHandlerFunc(func(ctx context.Context, event ports.ChangeEvent) {
		c.metrics.ObserveChange(string(event.Table))
		c.reconciler.HandleChange(ctx, event)
	})
}

// NewChangeFeed returns the loop that feeds committed changes into the
// reconciler. It runs until ctx is done.
//
// The Kafka topic only carries what this service writes. Client rows are
// edited elsewhere, so in that mode their row triggers are still followed
// over LISTEN/NOTIFY.
func (c *CompositionRoot) NewChangeFeed() func(ctx context.Context) error {
	if c.configs.ChangeFeed != ChangeFeedKafka {
		listener := c.newListener(c.changeHandler())
		return listener.Run
	}

	consumer := kafkain.NewChangeConsumer(
		c.configs.KafkaHost,
		c.configs.KafkaChangesTopic,
		c.configs.KafkaConsumerGroup,
		c.configs.ChangeFeedReconnect,
		c.changeHandler(),
		c.logger,
	)
	consumer.OnConnect = c.resyncOnConnect
	clients := c.newListener(ports.OnlyTables(c.changeHandler(), ports.TableClients))

	return func(ctx context.Context) error {
		var (
			wg         sync.WaitGroup
			clientsErr error
		)
		wg.Add(1)
		go func() {
			defer wg.Done()
			clientsErr = clients.Run(ctx)
		}()

		err := consumer.Run(ctx)
		wg.Wait()
		return errors.Join(err, clientsErr)
	}
}

func (c *CompositionRoot) newListener(handler ports.ChangeHandler) *pgnotify.Listener {
	listener := pgnotify.NewListener(
		c.configs.DSN(),
		postgres.ChangeChannel,
		handler,
		c.configs.ChangeFeedReconnect,
		c.logger,
	)
	listener.OnConnect = c.resyncOnConnect
	return listener
}

// resyncOnConnect refreshes every dashboard after a change feed (re)connects,
// covering whatever was missed while it was down.
func (c *CompositionRoot) resyncOnConnect(ctx context.Context) {
	if n := c.reconciler.ResyncAll(); n > 0 {
		c.logger.InfoContext(ctx, "change feed connected, resyncing dashboards", "sessions", n)
	}
}

func (c *CompositionRoot) Close() error {
	if c.publisher != nil {
		return c.publisher.Close()
	}
	return nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
