package wire

import (
	"net/http"

	"gezana/internal/adaptor"
	"gezana/internal/data/repository"
	"gezana/internal/usecase"
	"gezana/pkg/cache"
	"gezana/pkg/middleware"
	"gezana/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

func Wiring(repo *repository.Repository, profiles cache.ProfileCache, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, profiles, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics())

	wireAuth(r, handler.Auth, repo, logger)
	wireUser(r, handler.User, repo, logger)
	wireListing(r, handler.Listing, handler.Review, repo, logger)
	wireBooking(r, handler.Booking, handler.Payment, handler.Invoice, repo, logger)
	wireMembership(r, handler.Membership, handler.Invoice, repo, logger)
	wireAdmin(r, handler, repo, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
