package http

import (
	"net/http"
	"time"

	_ "github.com/DRSN-tech/stock-backend/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/stock-backend/internal/usecase"
	"github.com/DRSN-tech/stock-backend/pkg/logger"
	"github.com/DRSN-tech/stock-backend/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

// Deps — всё, что нужно маршрутизатору для обслуживания /api/v1.
type Deps struct {
	CategoryUC  usecase.CategoryUC
	ProductUC   usecase.ProductUC
	DashboardUC usecase.DashboardUC
	Idempotency usecase.IdempotencyRepository // nil — без защиты от повторов
	Metrics     *metrics.Metrics
	Ready       func() error // проверка готовности для /healthz
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(deps Deps) {
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.Recoverer)
	r.router.Use(r.requestLogger)
	if deps.Metrics != nil {
		r.router.Use(deps.Metrics.Middleware)
		r.router.Handle("/metrics", deps.Metrics.Handler())
	}

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // ссылка на JSON
	))
	r.router.Get("/healthz", healthz(deps.Ready))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		idempotent := Idempotency(deps.Idempotency, r.logger)

		registerCategoryRoutes(v1, NewCategoryHandler(deps.CategoryUC, r.logger), idempotent)
		registerProductRoutes(v1, NewProductHandler(deps.ProductUC, r.logger), idempotent)
		registerDashboardRoutes(v1, NewDashboardHandler(deps.DashboardUC, r.logger))
	})
}

func registerCategoryRoutes(router chi.Router, catHandler *CategoryHandler, idempotent func(http.Handler) http.Handler) {
	router.Route("/categories", func(cr chi.Router) {
		cr.Get("/", catHandler.listCategories)
		cr.With(idempotent).Post("/", catHandler.createCategory)
		cr.Delete("/{id}", catHandler.deleteCategory)
	})
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler, idempotent func(http.Handler) http.Handler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", prHandler.listProducts)
		pr.Get("/form", prHandler.productForm)
		pr.Get("/delete-options", prHandler.deleteOptions)
		pr.With(idempotent).Post("/", prHandler.createProduct)
		pr.Delete("/{id}", prHandler.deleteProduct)
	})
}

func registerDashboardRoutes(router chi.Router, dashHandler *DashboardHandler) {
	router.Route("/dashboard", func(dr chi.Router) {
		dr.Get("/", dashHandler.dashboard)
		dr.Post("/reports", dashHandler.exportReport)
	})
}

func healthz(ready func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if ready != nil {
			if err := ready(); err != nil {
				WriteSuccess(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (r *Router) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)

		next.ServeHTTP(ww, req)

		r.logger.Debugf("%s %s %d %s [%s]", req.Method, req.URL.Path, ww.Status(), time.Since(start), middleware.GetReqID(req.Context()))
	})
}
