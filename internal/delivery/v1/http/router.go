package http

import (
	_ "github.com/blogbox-store/go-backend/docs" // Импорт сгенерированных файлов
	"github.com/blogbox-store/go-backend/internal/cfg"
	"github.com/blogbox-store/go-backend/internal/usecase"
	"github.com/blogbox-store/go-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	cfg    *cfg.CORSCfg
	logger logger.Logger
}

func NewRouter(router *chi.Mux, cfg *cfg.CORSCfg, logger logger.Logger) *Router {
	return &Router{router: router, cfg: cfg, logger: logger}
}

func (r *Router) Init(orderUC usecase.OrderUC, prUC usecase.ProductUC) {
	// Доступ разрешен только витрине магазина
	r.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{r.cfg.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerOrderRoutes(v1, NewOrderHandler(orderUC, r.logger))
		registerProductRoutes(v1, NewProductHandler(prUC, r.logger))
	})
}

func registerOrderRoutes(router chi.Router, orderHandler *OrderHandler) {
	router.Route("/orders", func(or chi.Router) {
		or.Post("/", orderHandler.submitOrder)
		or.Get("/{id}", orderHandler.getOrder)
		or.Delete("/{id}", orderHandler.deleteOrder)
		or.Patch("/{id}/status", orderHandler.updateOrderStatus)
	})
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", prHandler.getProducts)
		pr.Post("/", prHandler.registerNewProduct)
	})
}
