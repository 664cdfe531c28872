package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Hamza-Malik05/plant-management-backend/internal/config"
	appHTTP "github.com/Hamza-Malik05/plant-management-backend/internal/handler/http"
	"github.com/Hamza-Malik05/plant-management-backend/internal/pkg/cron"
	"github.com/Hamza-Malik05/plant-management-backend/internal/pkg/jwt"
	"github.com/Hamza-Malik05/plant-management-backend/internal/pkg/logger"
	"github.com/Hamza-Malik05/plant-management-backend/internal/pkg/sse"
	"github.com/Hamza-Malik05/plant-management-backend/internal/repository"
	attendanceService "github.com/Hamza-Malik05/plant-management-backend/internal/service/attendance"
	serviceAuth "github.com/Hamza-Malik05/plant-management-backend/internal/service/auth"
	employeeService "github.com/Hamza-Malik05/plant-management-backend/internal/service/employee"
	supervisorService "github.com/Hamza-Malik05/plant-management-backend/internal/service/supervisor"
)

const (
	appName    = "plant-management"
	appVersion = "v1.0.0"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(os.Stdout, appName, appVersion, cfg.App.Env, cfg.SlogLevel())
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := repository.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer repos.Close()
	slog.Info("Database connected", "driver", cfg.Database.Driver)

	hub := sse.NewHub()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	authService := serviceAuth.NewAuthService(repos.Supervisor, JWTService)
	supervisorSvc := supervisorService.NewSupervisorService(repos.Supervisor)
	employeeSvc := employeeService.NewEmployeeService(repos.Employee, repos.Supervisor, cfg.Attendance.DefaultLeaves)
	attendanceSvc := attendanceService.NewAttendanceService(repos.Transactor, repos.Attendance, repos.Employee, hub)

	scheduler := cron.NewScheduler(cfg.Location())
	attendanceJobs := cron.NewAttendanceJobs(attendanceSvc, cfg.Location())
	if err := attendanceJobs.RegisterJobs(scheduler, cfg.Attendance.InitSchedule, cfg.Attendance.AbsenceSweepSchedule); err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{Logger: log, AllowedOrigins: cfg.App.CORSAllowedOrigins},
		JWTService,
		appHTTP.NewAuthHandler(authService),
		appHTTP.NewSupervisorHandler(supervisorSvc),
		appHTTP.NewEmployeeHandler(employeeSvc, attendanceSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc, hub, cfg.Location()),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	// Event streams never finish on their own; end them when shutdown begins.
	srv.RegisterOnShutdown(hub.Close)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", srv.Addr, "timezone", cfg.App.Timezone)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server", "subscribers", hub.TotalSubscribers())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
