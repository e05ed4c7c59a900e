package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hrms-lite-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hrms-lite-go/internal/handler/http"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/theme"
	"github.com/cmlabs-hris/hrms-lite-go/internal/presentation"
	"github.com/cmlabs-hris/hrms-lite-go/internal/repository/restapi"
	attendanceService "github.com/cmlabs-hris/hrms-lite-go/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/hrms-lite-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/hrms-lite-go/internal/service/employee"
)

func logLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := appHTTP.NewLogger(cfg.App.Env, logLevel(cfg.App.LogLevel))
	slog.SetDefault(logger)

	client := apiclient.New(cfg.API.BaseURL, cfg.API.Timeout)

	employeeRepo := restapi.NewEmployeeRepository(client)
	attendanceRepo := restapi.NewAttendanceRepository(client)
	dashboardRepo := restapi.NewDashboardRepository(client)

	hub := sse.NewHub()

	dashboardController := dashboardService.NewDashboardController(dashboardRepo, hub)
	employeeController := employeeService.NewEmployeeController(employeeRepo, hub)
	attendanceController := attendanceService.NewAttendanceController(employeeRepo, attendanceRepo, hub)

	themeStore := theme.NewStore(theme.NewFilePersister(cfg.Theme.PreferenceFile), cfg.Theme.PreferDark)
	stopTheme := appHTTP.PublishThemeChanges(themeStore, hub)
	defer stopTheme()

	renderer, err := presentation.NewRenderer()
	if err != nil {
		log.Fatal("Failed to parse templates:", err)
	}

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:            cfg.App.Env,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			Logger:         logger,
		},
		appHTTP.Handlers{
			Pages:      appHTTP.NewPageHandler(renderer, themeStore, dashboardController, employeeController, attendanceController),
			Dashboard:  appHTTP.NewDashboardHandler(dashboardController),
			Employee:   appHTTP.NewEmployeeHandler(employeeController),
			Attendance: appHTTP.NewAttendanceHandler(attendanceController),
			Theme:      appHTTP.NewThemeHandler(themeStore),
			Events:     appHTTP.NewEventHandler(hub),
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := cron.NewScheduler(ctx)
	if err := cron.RegisterDashboardRefresh(scheduler, dashboardController, cfg.Dashboard.RefreshInterval); err != nil {
		log.Fatal("Failed to register dashboard refresh:", err)
	}
	scheduler.Start()

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// event streams end with the signal context
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		slog.Info("Console running", "addr", fmt.Sprintf("http://localhost%s", cfg.Addr()), "api", cfg.API.BaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down console...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}

	scheduler.Stop()
	dashboardController.Close()
	employeeController.Close()
	attendanceController.Close()
}
