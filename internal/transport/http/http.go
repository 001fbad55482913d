package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"

	"github.com/TaoufikZa/watami-mvp/internal/service/models/merchant"
	"github.com/TaoufikZa/watami-mvp/internal/service/models/message"
	"github.com/TaoufikZa/watami-mvp/internal/service/models/order"
	"github.com/TaoufikZa/watami-mvp/internal/service/models/product"
	createorder "github.com/TaoufikZa/watami-mvp/internal/transport/http/create_order"
	listmerchants "github.com/TaoufikZa/watami-mvp/internal/transport/http/list_merchants"
	listmessages "github.com/TaoufikZa/watami-mvp/internal/transport/http/list_messages"
	listorders "github.com/TaoufikZa/watami-mvp/internal/transport/http/list_orders"
	listproducts "github.com/TaoufikZa/watami-mvp/internal/transport/http/list_products"
	postmessage "github.com/TaoufikZa/watami-mvp/internal/transport/http/post_message"
	updateorder "github.com/TaoufikZa/watami-mvp/internal/transport/http/update_order"
	"github.com/TaoufikZa/watami-mvp/internal/transport/http/webhook"
	"github.com/TaoufikZa/watami-mvp/pkg/http/middleware/metrics"
	"github.com/TaoufikZa/watami-mvp/pkg/http/middleware/trace"
	"github.com/TaoufikZa/watami-mvp/pkg/logger"
)

// lifecycleService is the order engine surface the transport needs.
type lifecycleService interface {
	CreateOrder(ctx context.Context, model order.NewOrderModel) (order.Order, error)
	ConfirmIdentity(ctx context.Context, orderID string, phone string) (*order.Order, error)
	TransitionTo(ctx context.Context, orderID string, target order.Status) (*order.Order, error)
	GetOrders(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
}

// catalogService serves merchants and products.
type catalogService interface {
	GetMerchants(ctx context.Context) ([]merchant.Merchant, error)
	GetNearbyMerchants(ctx context.Context, lat, lng float64) ([]merchant.Merchant, error)
	GetProducts(ctx context.Context, merchantID string) ([]product.Product, error)
}

// chatService owns the simulated WhatsApp chat log.
type chatService interface {
	GetMessages(ctx context.Context) ([]message.Message, error)
	PostMessage(ctx context.Context, msg message.Message) (message.Message, error)
}

type HTTPTransport struct {
	server    *http.Server
	router    *chi.Mux
	lifecycle lifecycleService
	catalog   catalogService
	chat      chatService
}

func NewHTTPTransport(lifecycle lifecycleService, catalog catalogService, chat chatService) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:    server,
		router:    router,
		lifecycle: lifecycle,
		catalog:   catalog,
		chat:      chat,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Handle("/metrics", promhttp.Handler())

	h.router.Route("/api", func(r chi.Router) {
		r.Get("/merchants", h.listMerchants)
		r.Get("/merchants/nearby", h.listNearbyMerchants)
		r.Get("/products/{merchantId}", h.listProducts)

		r.Get("/orders", h.listOrders)
		r.Post("/orders", h.createOrder)
		r.Patch("/orders/{id}", h.updateOrder)

		r.Get("/messages", h.listMessages)
		r.Post("/messages", h.postMessage)

		r.Post("/whatsapp/webhook", h.whatsappWebhook)
	})
}

func (h *HTTPTransport) listMerchants(w http.ResponseWriter, r *http.Request) {
	listmerchants.ListMerchants(w, r, h.catalog)
}

func (h *HTTPTransport) listNearbyMerchants(w http.ResponseWriter, r *http.Request) {
	listmerchants.ListNearby(w, r, h.catalog)
}

func (h *HTTPTransport) listProducts(w http.ResponseWriter, r *http.Request) {
	listproducts.ListProducts(w, r, h.catalog)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.lifecycle)
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.lifecycle)
}

func (h *HTTPTransport) updateOrder(w http.ResponseWriter, r *http.Request) {
	updateorder.UpdateOrder(w, r, h.lifecycle)
}

func (h *HTTPTransport) listMessages(w http.ResponseWriter, r *http.Request) {
	listmessages.ListMessages(w, r, h.chat)
}

func (h *HTTPTransport) postMessage(w http.ResponseWriter, r *http.Request) {
	postmessage.PostMessage(w, r, h.chat)
}

func (h *HTTPTransport) whatsappWebhook(w http.ResponseWriter, r *http.Request) {
	webhook.HandleWebhook(w, r, h.lifecycle, h.chat)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)
	router.Use(metrics.NewMetricsMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
