package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/renanbmello/api-ecommerce/configs"
	"github.com/renanbmello/api-ecommerce/internal/adapter/cache"
	"github.com/renanbmello/api-ecommerce/internal/adapter/http"
	"github.com/renanbmello/api-ecommerce/internal/adapter/http/middleware"
	"github.com/renanbmello/api-ecommerce/internal/adapter/kafka"
	"github.com/renanbmello/api-ecommerce/internal/adapter/queue"
	"github.com/renanbmello/api-ecommerce/internal/adapter/repo"
	"github.com/renanbmello/api-ecommerce/internal/logging"
	"github.com/renanbmello/api-ecommerce/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

// InitWithConfig wires the whole application and returns it with a
// cleanup func that releases connections and stops background workers.
func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logging.Init(cfg.App.Name, "./logs/app.log")
	l := logging.New("bootstrap")

	// money fields serialize as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true

	// mysql
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open mysql: %w", err)
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	if err := db.PingContext(context.Background()); err != nil {
		return nil, nil, fmt.Errorf("ping mysql: %w", err)
	}

	// redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}

	// rabbitmq
	conn, err := amqp091.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	producer, err := queue.NewRabbitProducer(ch)
	if err != nil {
		return nil, nil, err
	}

	// repos
	userRepo := repo.NewMySQLUserRepo(db)
	productRepo := repo.NewMySQLProductRepo(db)
	cartRepo := repo.NewMySQLCartRepo(db)
	discountRepo := repo.NewMySQLDiscountRepo(db)
	orderRepo := repo.NewMySQLOrderRepo(db)
	outboxRepo := repo.NewMySQLOutboxRepo(db)
	checkoutStore := repo.NewMySQLCheckoutStore(db)
	idem := cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)
	statusCache := cache.NewRedisCache(rdb, cfg.Cache.StatusTTL)

	// usecases
	authUC := usecase.NewAuth(userRepo)
	productsUC := usecase.NewProducts(productRepo)
	cartsUC := usecase.NewCarts(cartRepo, productRepo)
	discountsUC := usecase.NewDiscounts(discountRepo, cartRepo)
	checkoutUC := usecase.NewCheckout(cartRepo, discountRepo, checkoutStore, idem, statusCache)
	ordersUC := usecase.NewOrders(orderRepo)

	// background workers
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	relay := queue.NewOutboxRelay(outboxRepo, producer, cfg.Outbox.PollInterval)
	go relay.Run(workerCtx)
	startKafkaListener(workerCtx, cfg, orderRepo, statusCache)

	// http
	h := http.Handlers{
		Auth:     http.NewAuthHandler(authUC, cfg),
		Product:  http.NewProductHandler(productsUC),
		Cart:     http.NewCartHandler(cartsUC, discountsUC),
		Order:    http.NewOrderHandler(checkoutUC, ordersUC),
		Discount: http.NewDiscountHandler(discountsUC),
	}
	router := http.NewRouter(h, middleware.NewAuthz(cfg))

	l.Info("wired", "http_addr", cfg.App.HTTPAddr)

	cleanup := func() {
		stopWorkers()
		_ = ch.Close()
		_ = conn.Close()
		_ = rdb.Close()
		_ = db.Close()
	}
	return &App{Router: router}, cleanup, nil
}

func startKafkaListener(ctx context.Context, cfg configs.Config, orders usecase.OrderRepo, statusCache usecase.OrderCache) {
	grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		logging.New("kafka").Error("consumer group init failed", "err", err.Error())
		return
	}

	h := kafka.NewOrderStatusChangedHandler(orders, statusCache)
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.TopicEvents}, h.Handle)

	go func() {
		if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
			logging.New("kafka").Error("consumer stopped", "err", err.Error())
		}
	}()
}
