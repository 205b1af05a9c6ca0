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

	"github.com/cmlabs-hris/liff-attendance-go/internal/config"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/sheet"
	appHTTP "github.com/cmlabs-hris/liff-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/liff-attendance-go/internal/pkg/cron"
	"github.com/cmlabs-hris/liff-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/liff-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/liff-attendance-go/internal/repository/googlesheets"
	"github.com/cmlabs-hris/liff-attendance-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/liff-attendance-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/liff-attendance-go/internal/service/auth"
	bootstrapService "github.com/cmlabs-hris/liff-attendance-go/internal/service/bootstrap"
	memberService "github.com/cmlabs-hris/liff-attendance-go/internal/service/member"
	notificationService "github.com/cmlabs-hris/liff-attendance-go/internal/service/notification"
	sheetService "github.com/cmlabs-hris/liff-attendance-go/internal/service/sheet"
	tableService "github.com/cmlabs-hris/liff-attendance-go/internal/service/table"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store sheet.Store
	switch cfg.Sheets.Backend {
	case config.BackendPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			fmt.Println("Error connecting to database:", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := postgresql.Migrate(ctx, db); err != nil {
			fmt.Println("Error migrating database:", err)
			os.Exit(1)
		}
		store = postgresql.NewSheetStore(db)
	default:
		store, err = googlesheets.NewStore(ctx, cfg.Google.CredentialsB64)
		if err != nil {
			fmt.Println("Error connecting to Google Sheets:", err)
			os.Exit(1)
		}
	}

	notifier, err := notificationService.NewNotifier(notificationService.Config{
		Kind:               cfg.Notifier.Kind,
		PushoverToken:      cfg.Pushover.Token,
		PushoverAdminToken: cfg.Pushover.AdminToken,
		PushoverUser:       cfg.Pushover.User,
		TelegramToken:      cfg.Telegram.BotToken,
		TelegramChatID:     cfg.Telegram.ChatID,
	})
	if err != nil {
		fmt.Println("Error initializing notifier:", err)
		os.Exit(1)
	}

	loc := cfg.Location()
	now := func() time.Time { return time.Now().In(loc) }

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	tables := tableService.NewTableService(store, cfg.Sheets.ConfigSheetID, cfg.Sheets.ConfigRange)

	authService := serviceAuth.NewAuthService(JWTService)
	sheetSvc := sheetService.NewSheetService(store, notifier)
	attendanceSvc := attendanceService.NewAttendanceService(store, tables, notifier, attendanceService.WithClock(now))
	memberSvc := memberService.NewMemberService(store, tables, notifier, now)
	bootstrapSvc := bootstrapService.NewBootstrapService(store, tables, now)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{Env: cfg.App.Env, FrontendURL: cfg.App.FrontendURL},
		JWTService,
		appHTTP.Handlers{
			Auth:         appHTTP.NewAuthHandler(authService),
			Sheet:        appHTTP.NewSheetHandler(sheetSvc),
			Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
			Leave:        appHTTP.NewLeaveHandler(attendanceSvc),
			Member:       appHTTP.NewMemberHandler(memberSvc),
			Notification: appHTTP.NewNotificationHandler(notifier),
			Bootstrap:    appHTTP.NewBootstrapHandler(bootstrapSvc),
		},
	)

	scheduler := cron.NewScheduler(ctx, 2*time.Minute)
	cron.NewAttendanceJobs(store, tables, notifier, now, cfg.Reminder.Hour, cfg.Reminder.Interval).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "backend", cfg.Sheets.Backend, "notifier", cfg.Notifier.Kind)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}
