package handler

import (
	"context"
	"io"
	"net/http"
	"time"

	"duka/manager/internal/service"
	"duka/manager/internal/service/authprovider"

	"github.com/andybalholm/brotli"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Authenticator resolves a bearer token to the user it was issued for.
type Authenticator interface {
	GetUser(ctx context.Context, token string) (authprovider.User, error)
}

type Services struct {
	Shops     *service.ShopService
	Inventory *service.InventoryService
	Credits   *service.CreditService
	Expenses  *service.ExpenseService
	Reports   *service.ReportService
}

type Handler struct {
	router *chi.Mux
	log    *zap.Logger
	authn  Authenticator
	svc    Services
}

func NewHandler(log *zap.Logger, authn Authenticator, svc Services) *Handler {
	router := chi.NewRouter()

	compressor := middleware.NewCompressor(5, "application/json", "text/plain")
	compressor.SetEncoder("br", func(w io.Writer, level int) io.Writer {
		return brotli.NewWriterLevel(w, level)
	})

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(log))
	router.Use(middleware.Recoverer)
	router.Use(compressor.Handler)

	h := &Handler{
		router: router,
		log:    log,
		authn:  authn,
		svc:    svc,
	}

	h.registerRoutes()
	return h
}

func (h *Handler) registerRoutes() {
	h.router.Route("/v1", func(r chi.Router) {
		r.Get("/health", h.HealthCheck)
		r.Post("/auth/signup", h.SignUp)
		r.Post("/auth/signin", h.SignIn)

		r.Group(func(r chi.Router) {
			r.Use(h.authenticate)

			r.Get("/me", h.Me)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", h.ListProducts)
				r.Post("/", h.AddProduct)
				r.Get("/low-stock", h.LowStock)
				r.Put("/{id}", h.UpdateProduct)
				r.Delete("/{id}", h.DeleteProduct)
			})

			r.Route("/sales", func(r chi.Router) {
				r.Get("/", h.ListSales)
				r.Post("/", h.RecordSale)
				r.Get("/history", h.SalesHistory)
			})

			r.Route("/customers", func(r chi.Router) {
				r.Get("/", h.ListCustomers)
				r.Post("/", h.AddCustomer)
				r.Get("/{id}/balance", h.CustomerBalance)
			})

			r.Route("/credits", func(r chi.Router) {
				r.Get("/", h.ListCredits)
				r.Get("/summary", h.CreditSummary)
				r.Get("/{id}/payments", h.ListPayments)
				r.Post("/{id}/payments", h.RecordPayment)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Get("/", h.ListExpenses)
				r.Post("/", h.AddExpense)
				r.Post("/tot", h.QuickAddTOT)
				r.Delete("/{id}", h.DeleteExpense)
			})

			r.Get("/dashboard", h.Dashboard)
			r.Get("/reports/sales", h.SalesReport)
			r.Get("/reports/month", h.MonthSummary)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.ListEmployees)
				r.Post("/", h.CreateEmployee)
				r.Delete("/{id}", h.RemoveEmployee)
			})
		})
	})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.Info("request",
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
