package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/config"
	appHTTP "github.com/cmlabs-hris/attendance-payroll-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/email"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/holiday"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/storage"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/repository/postgresql"
	absenceService "github.com/cmlabs-hris/attendance-payroll-go/internal/service/absence"
	attendanceService "github.com/cmlabs-hris/attendance-payroll-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/attendance-payroll-go/internal/service/auth"
	employeeService "github.com/cmlabs-hris/attendance-payroll-go/internal/service/employee"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/service/file"
	payrollService "github.com/cmlabs-hris/attendance-payroll-go/internal/service/payroll"
	submissionService "github.com/cmlabs-hris/attendance-payroll-go/internal/service/submission"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/service/workday"
)

const shutdownTimeout = 15 * time.Second

func logLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.App.LogLevel),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal("Error migrating database: ", err)
	}

	loc := cfg.Location()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	submissionRepo := postgresql.NewSubmissionRepository(db)

	holidays := holiday.NewCachedProvider(
		holiday.NewClient(cfg.Holiday.APIURL, cfg.Holiday.Timeout),
		cfg.Holiday.CacheTTL,
	)
	workdays := workday.NewCalculator(holidays)
	aggregator := attendanceService.NewAggregator(attendanceRepo)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage: ", err)
	}

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service: ", err)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authService := serviceAuth.NewAuthService(employeeRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, aggregator, workdays, loc)
	submissionSvc := submissionService.NewSubmissionService(submissionRepo, employeeRepo)
	generator := payrollService.NewGenerator(employeeRepo, payrollRepo, workdays, aggregator, loc)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, employeeRepo, generator, emailService)
	fileService := file.NewFileService(fileStorage)
	marker := absenceService.NewMarker(employeeRepo, attendanceRepo, holidays, loc)

	scheduler := cron.NewScheduler()
	if err := cron.NewAttendanceJobs(marker).RegisterJobs(scheduler, cfg.Scheduler.AutoAbsenceTime, loc); err != nil {
		log.Fatal("Failed to register attendance jobs: ", err)
	}
	if err := cron.NewPayrollJobs(generator).RegisterJobs(scheduler, cfg.Scheduler.AutoPayrollTime, loc); err != nil {
		log.Fatal("Failed to register payroll jobs: ", err)
	}

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authService),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Submission: appHTTP.NewSubmissionHandler(submissionSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Upload:     appHTTP.NewUploadHandler(fileService),
		Job:        appHTTP.NewJobHandler(scheduler),
	}, appHTTP.RouterConfig{
		Env:         cfg.App.Env,
		FrontendURL: cfg.App.FrontendURL,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	scheduler.Start()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err := <-serverErr:
		slog.Error("Server error", "error", err)
	}

	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	payrollSvc.WaitMail()

	slog.Info("Server stopped")
}
