package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/TaoufikZa/watami-mvp/internal/dal/interfaces/inotifier"
	"github.com/TaoufikZa/watami-mvp/internal/dal/postgres"
	"github.com/TaoufikZa/watami-mvp/internal/dal/rabbitmq"
	eventrepo "github.com/TaoufikZa/watami-mvp/internal/dal/repositories/event/rabbitmq"
	merchantrepo "github.com/TaoufikZa/watami-mvp/internal/dal/repositories/merchant/postgres"
	messagerepo "github.com/TaoufikZa/watami-mvp/internal/dal/repositories/message/postgres"
	"github.com/TaoufikZa/watami-mvp/internal/dal/repositories/notifier/bot"
	"github.com/TaoufikZa/watami-mvp/internal/dal/repositories/notifier/evolution"
	orderrepo "github.com/TaoufikZa/watami-mvp/internal/dal/repositories/order/postgres"
	outboxrepo "github.com/TaoufikZa/watami-mvp/internal/dal/repositories/outbox/postgres"
	productrepo "github.com/TaoufikZa/watami-mvp/internal/dal/repositories/product/postgres"
	"github.com/TaoufikZa/watami-mvp/internal/otel"
	"github.com/TaoufikZa/watami-mvp/internal/service/services/catalogsvc"
	"github.com/TaoufikZa/watami-mvp/internal/service/services/chatsvc"
	"github.com/TaoufikZa/watami-mvp/internal/service/services/lifecyclesvc"
	httptransport "github.com/TaoufikZa/watami-mvp/internal/transport/http"
	outboxworker "github.com/TaoufikZa/watami-mvp/internal/worker/outbox"
)

// App represents the application.
type App struct {
	lifecycleSvc   *lifecyclesvc.LifecycleService
	catalogSvc     *catalogsvc.CatalogService
	chatSvc        *chatsvc.ChatService
	transport      *httptransport.HTTPTransport
	outboxWorker   *outboxworker.Worker
	rabbitMqClient *rabbitmq.Client
	postgresClient *postgres.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()
	postgresClient := postgres.MustNewClient()
	rabbitMqClient := rabbitmq.MustNewClient()

	orderRepository := orderrepo.NewOrderRepository(postgresClient)
	merchantRepository := merchantrepo.NewMerchantRepository(postgresClient)
	productRepository := productrepo.NewProductRepository(postgresClient)
	messageRepository := messagerepo.NewMessageRepository(postgresClient)
	outboxRepository := outboxrepo.NewOutboxRepository(postgresClient)

	eventPublisher := eventrepo.NewEventRabbitMQRepository(rabbitMqClient, outboxRepository)

	lifecycleSvc := lifecyclesvc.MustNewLifecycleService(
		lifecyclesvc.WithOrderRepository(orderRepository),
		lifecyclesvc.WithNotifier(newNotifier(messageRepository)),
		lifecyclesvc.WithEventPublisher(eventPublisher),
	)

	catalogSvc := catalogsvc.MustNewCatalogService(
		catalogsvc.WithMerchantRepository(merchantRepository),
		catalogsvc.WithProductRepository(productRepository),
	)

	chatSvc := chatsvc.MustNewChatService(
		chatsvc.WithMessageRepository(messageRepository),
		chatsvc.WithLifecycle(lifecycleSvc),
	)

	transport := httptransport.NewHTTPTransport(lifecycleSvc, catalogSvc, chatSvc)
	transport.RegisterRoutes()

	outboxWorker := outboxworker.NewWorker(outboxRepository, rabbitMqClient)

	return &App{
		lifecycleSvc:   lifecycleSvc,
		catalogSvc:     catalogSvc,
		chatSvc:        chatSvc,
		transport:      transport,
		outboxWorker:   outboxWorker,
		rabbitMqClient: rabbitMqClient,
		postgresClient: postgresClient,
		otelController: otelController,
	}
}

// newNotifier selects the notification channel. The simulated bot writes to
// the chat log; evolution talks to a real WhatsApp instance.
func newNotifier(messageRepository *messagerepo.MessageRepository) inotifier.INotifier {
	mode := viper.GetString("notifier.mode")
	switch mode {
	case "evolution":
		return evolution.NewEvolutionNotifier()
	case "bot", "":
		return bot.NewBotNotifier(messageRepository)
	default:
		panic("unknown notifier mode: " + mode)
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	go func() {
		slog.Info("Starting outbox worker")
		a.outboxWorker.Start(ctx)
	}()

	<-stop
	slog.Info("Shutdown signal received")
	cancel()

	a.gracefulShutdown()
}

// gracefulShutdown shuts down components sequentially: outbox worker, HTTP
// server, RabbitMQ, PostgreSQL, and OpenTelemetry.
func (a *App) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a.outboxWorker.Stop()
	slog.Info("Outbox worker stopped gracefully")

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if err := a.rabbitMqClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	if err := a.postgresClient.Close(); err != nil {
		slog.Error("Database connection close error", "error", err)
	} else {
		slog.Info("Database connection closed gracefully")
	}

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Otel trace provider connection close error", "error", err)
	} else {
		slog.Info("Otel trace provider connection closed gracefully")
	}

	slog.Info("Application shutdown complete")
}
