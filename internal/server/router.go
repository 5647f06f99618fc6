// Package server собирает HTTP API админ-панели: маршруты, middleware и обработчики.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/salafuz/admin-panel/internal/server/handlers"
	"github.com/salafuz/admin-panel/internal/server/jwt"
	"github.com/salafuz/admin-panel/internal/server/middleware"
	"github.com/salafuz/admin-panel/internal/server/storage"
	"github.com/salafuz/admin-panel/pkg/api"
)

// APIPrefix общий префикс всех маршрутов API
const APIPrefix = "/api/v1"

// Storage объединяет все хранилища, которые нужны API
type Storage interface {
	storage.UserStorage
	storage.TokenStorage
	storage.ResourceStorage
	handlers.Pinger
}

// Options зависимости роутера
type Options struct {
	Logger       *slog.Logger
	Store        Storage
	Files        storage.FileStorage
	Tokens       *jwt.Service
	LoginLimiter *middleware.RateLimiter
	Registry     *prometheus.Registry
	Version      string
	MaxUpload    int64
}

// NewRouter регистрирует маршруты API и оборачивает их в общие middleware:
// recovery -> logging -> metrics -> mux
func NewRouter(opts Options) http.Handler {
	logger := opts.Logger

	authHandler := handlers.NewAuthHandler(logger, opts.Store, opts.Store, opts.Tokens)
	resources := handlers.NewResourceHandler(logger, opts.Store, handlers.DefaultKinds())
	images := handlers.NewImageHandler(logger, opts.Store, opts.Files, APIPrefix+"/images/preview/", opts.MaxUpload)
	health := handlers.NewHealthHandler(logger, opts.Store, opts.Version)

	authenticate := middleware.AuthMiddleware(logger, opts.Tokens)
	requireAdmin := middleware.RequireAdmin(logger)

	// auth - любой вошедший пользователь, admin - только роль admin
	auth := func(h http.HandlerFunc) http.Handler {
		return authenticate(h)
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return authenticate(requireAdmin(h))
	}

	mux := http.NewServeMux()

	// Служебные
	mux.HandleFunc("GET "+APIPrefix+"/health", health.Health)
	mux.Handle("GET /metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))

	// Авторизация
	login := http.Handler(http.HandlerFunc(authHandler.Login))
	if opts.LoginLimiter != nil {
		login = opts.LoginLimiter.Middleware(login)
	}
	mux.Handle("POST "+APIPrefix+"/auth/login", login)
	mux.HandleFunc("POST "+APIPrefix+"/auth/refresh", authHandler.Refresh)
	mux.Handle("POST "+APIPrefix+"/auth/logout", auth(authHandler.Logout))
	mux.Handle("GET "+APIPrefix+"/auth/me", auth(authHandler.Me))

	// Изображения; превью публичное, его открывают как обычную ссылку
	mux.HandleFunc("GET "+APIPrefix+"/images/preview/{name}", images.Preview)
	mux.Handle("POST "+APIPrefix+"/images/upload", auth(images.Upload))
	mux.Handle("DELETE "+APIPrefix+"/images/delete/{id}", admin(images.ForceDelete))

	mux.Handle("GET "+APIPrefix+"/categories/name/{name}", auth(resources.CategoryByName))
	mux.Handle("DELETE "+APIPrefix+"/posts/{id}/tags/{tagID}", auth(resources.DetachTag))

	// Коллекции
	mux.Handle("GET "+APIPrefix+"/{res}", auth(resources.List))
	mux.Handle("POST "+APIPrefix+"/{res}", auth(resources.Create))
	mux.Handle("GET "+APIPrefix+"/{res}/deleted", auth(resources.ListDeleted))
	mux.Handle("GET "+APIPrefix+"/{res}/{id}", auth(resources.Get))
	mux.Handle("PUT "+APIPrefix+"/{res}/{id}", auth(resources.Update))
	mux.Handle("DELETE "+APIPrefix+"/{res}/remove/{id}", auth(resources.SoftDelete))
	mux.Handle("DELETE "+APIPrefix+"/{res}/delete/{id}", admin(resources.ForceDelete))

	// POST /{res}/restore/{id} и POST /posts/{id}/tags пересекаются в ServeMux,
	// поэтому разбираем их одним шаблоном
	restore := requireAdmin(http.HandlerFunc(resources.Restore))
	mux.Handle("POST "+APIPrefix+"/{res}/{a}/{b}", auth(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.PathValue("a") == "restore":
			r.SetPathValue("id", r.PathValue("b"))
			restore.ServeHTTP(w, r)
		case r.PathValue("res") == api.ResourcePosts && r.PathValue("b") == "tags":
			r.SetPathValue("id", r.PathValue("a"))
			resources.AttachTag(w, r)
		default:
			notFound(w)
		}
	}))

	metrics := middleware.NewMetrics(opts.Registry)

	var handler http.Handler = mux
	handler = metrics.Middleware(handler)
	handler = middleware.LoggingWithSkip(logger, []string{APIPrefix + "/health", "/metrics"})(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	return handler
}

func notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{
		Error:   http.StatusText(http.StatusNotFound),
		Message: "not found",
	})
}
