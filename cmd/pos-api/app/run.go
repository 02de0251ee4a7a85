package app

import (
	"context"
	"time"

	"github.com/faisalawaludin/kasir-chain/configs"
	"github.com/faisalawaludin/kasir-chain/internal/adapter/cache"
	"github.com/faisalawaludin/kasir-chain/internal/adapter/http"
	"github.com/faisalawaludin/kasir-chain/internal/adapter/kafka"
	"github.com/faisalawaludin/kasir-chain/internal/adapter/remote"
	"github.com/faisalawaludin/kasir-chain/internal/logging"
	"github.com/faisalawaludin/kasir-chain/internal/poller"
	"github.com/faisalawaludin/kasir-chain/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	log := logging.Init(cfg.App.Name, cfg.App.LogFile, cfg.App.LogLevel)
	log.Info("pos-api: starting up", "terminal", cfg.App.Terminal)

	// init redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, nil, err
	}

	// remote catalog/order/voucher service
	backend := remote.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, cfg.Backend.UserAgent)

	// kafka is optional: no brokers means a single-terminal install
	var (
		events   usecase.EventPublisher
		producer *kafka.Publisher
	)
	if len(cfg.Kafka.Brokers) > 0 {
		prod, err := kafka.NewProducer(cfg.Kafka.Brokers)
		if err != nil {
			return nil, nil, err
		}
		producer = kafka.NewPublisher(prod, cfg.Kafka.TopicOrders, cfg.Kafka.TopicTickets)
		events = producer
	}

	// usecases
	carts := usecase.NewCartRegistry()
	ordersCache := usecase.NewOrdersCache()
	catalog := usecase.NewCatalog(backend, cache.NewRedisCatalogCache(rdb, cfg.Catalog.CacheTTL))
	resolver := usecase.NewVoucherResolver(backend)
	checkout := usecase.NewCheckout(backend, resolver, ordersCache, events, cfg.App.Terminal)
	lifecycle := usecase.NewOrderLifecycle(backend, ordersCache, events, cfg.App.Terminal)
	ledger := usecase.NewQueueLedger(ctx, cache.NewRedisTicketStore(rdb), logging.New("queue"))
	sync := usecase.NewLifecycleSync(ledger, lifecycle, events, cfg.App.Terminal, logging.New("sync"))

	// order list poller
	refresher := poller.New(lifecycle.Reload, cfg.Poll.Interval, logging.New("poller"))
	go refresher.Start(context.Background())

	// fold in status events from other terminals
	if len(cfg.Kafka.Brokers) > 0 {
		setupKafkaListener(cfg, lifecycle)
	}

	// handlers + router
	router := http.NewRouter(http.Handlers{
		Cart:    http.NewCartHandler(carts, catalog, checkout, resolver),
		Catalog: http.NewCatalogHandler(catalog),
		Orders:  http.NewOrderHandler(lifecycle, sync),
		Queue:   http.NewQueueHandler(ledger),
		Voucher: http.NewVoucherHandler(backend),
	})

	cleanup := func() {
		refresher.Stop()
		if producer != nil {
			_ = producer.Close()
		}
		_ = rdb.Close()
	}

	return &App{Router: router}, cleanup, nil
}

func setupKafkaListener(cfg configs.Config, lifecycle *usecase.OrderLifecycle) {
	grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		panic(err)
	}

	h := kafka.NewOrderStatusChangedHandler(lifecycle, cfg.App.Terminal)
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.TopicOrders}, h.Handle, logging.New("kafka"))

	go func() {
		if err := consumer.Start(context.Background()); err != nil && err != context.Canceled {
			logging.New("kafka").Error("consumer stopped", "error", err)
		}
	}()
}
