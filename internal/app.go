package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stagehand/internal/controllers"
	"stagehand/internal/document/interfaces"
	"stagehand/internal/hub"
	"stagehand/internal/providers"
	"stagehand/internal/services"
	"stagehand/internal/structures"
)

type App struct {
	WebServer *http.Server
}

func NewApp(socketController *controllers.SocketController, healthController *controllers.HealthController, h *hub.Hub, scheduler interfaces.SchedulerInterface, service services.DocumentServiceInterface, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) (*App, error) {
	// Inner router: API routes
	api := chi.NewRouter()
	for _, route := range router.GetRoutes() {
		api.Method(route.Method, route.Url, route.Handler)
	}

	// Wrap API routes with metrics middleware
	instrumentedAPI := providers.MetricsMiddleware(metrics, api)

	// Outer router: infrastructure + websocket + instrumented API. The
	// websocket endpoint stays outside the metrics middleware, the upgrade
	// needs the raw http.ResponseWriter to hijack the connection.
	r := chi.NewRouter()
	r.Get("/health", healthController.Health)
	if conf.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}
	r.Get("/ws", socketController.ServeWs)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(conf.Uploads.Dir))))
	r.Mount("/api", instrumentedAPI)

	logger.Infof(providers.TypeApp, "Starting %s", conf.AppName)
	err := scheduler.Restore()
	if err != nil {
		logger.Errorf(providers.TypeApp, "Restore error: %s", err)
	}
	if err := h.Prime(service.Snapshot()); err != nil {
		return nil, fmt.Errorf("failed to prime init frame: %w", err)
	}

	app := &App{
		WebServer: &http.Server{
			Addr:              conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}

	go h.Run()
	scheduler.Init()

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof(providers.TypeApp, "Listening HTTP clients on %s:%d", conf.WebServer.Host, conf.WebServer.Port)
		if err := app.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		return nil, fmt.Errorf("server error: %w", err)
	}

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err = app.WebServer.Shutdown(ctx); err != nil {
		return nil, err
	}
	err = scheduler.Persist()
	if err != nil {
		return nil, err
	}
	logger.Infof(providers.TypeApp, "gracefully stopped")
	return app, nil
}
