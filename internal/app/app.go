package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "mindzy/docs"
	"mindzy/internal/config"
	"mindzy/internal/handlers"
	"mindzy/internal/pdf"
	"mindzy/internal/repositories"
	"mindzy/internal/routes"
	"mindzy/internal/services"
	"mindzy/internal/utils"
)

// App holds the wired server and its background workers.
type App struct {
	cfg    *config.Config
	db     *sql.DB
	Router *gin.Engine

	chat      *services.ChatService
	reminders *services.ReminderService
}

// Option overrides a collaborator, mostly for tests.
type Option func(*options)

type options struct {
	repo       repositories.KVRepository
	chatClient services.ChatClient
	messenger  services.Messenger
}

func WithRepository(repo repositories.KVRepository) Option {
	return func(o *options) { o.repo = repo }
}

func WithChatClient(client services.ChatClient) Option {
	return func(o *options) { o.chatClient = client }
}

func WithMessenger(m services.Messenger) Option {
	return func(o *options) { o.messenger = m }
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

func New(cfg *config.Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	a := &App{cfg: cfg}

	// === Repo ===
	repo := o.repo
	if repo == nil {
		if cfg.Database.DSN == "" {
			log.Printf("[app][db] no database url, device state kept in memory")
			repo = repositories.NewMemoryKVRepository()
		} else {
			db, err := openDB(cfg.Database.DSN)
			if err != nil {
				return nil, err
			}
			a.db = db
			repo = repositories.NewKVRepository(db)
		}
	}

	// === Services ===
	store := services.NewStateStore(repo, time.Now)
	taskService := services.NewTaskService(store)
	rewardService := services.NewRewardService(store)
	profileService := services.NewProfileService(store)

	chatClient := o.chatClient
	if chatClient == nil {
		if cfg.Gemini.APIKey == "" {
			log.Printf("[app][gemini] no api key, chat replies will use the fallback message")
		}
		chatClient = utils.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.BaseURL, cfg.Gemini.Timeout)
	}
	a.chat = services.NewChatService(chatClient, cfg.Chat.MaxMessagesPerSession, cfg.Chat.SessionTTL)

	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	pdfGen := pdf.NewTicketGenerator(cfg.Files.RootDir, cfg.Files.FontPath)
	eventService := services.NewEventService(cfg.Events.PaymentDelay, services.NewTicketService(pdfGen, emailService))
	navService := services.NewNavigationService(eventService)

	messenger := o.messenger
	if messenger == nil {
		tg, err := services.NewTelegramService(cfg.Telegram.BotToken)
		if err != nil {
			// reminders are optional
			log.Printf("[app][tg][err] %v", err)
		}
		if tg != nil {
			messenger = tg
		}
	}
	if messenger != nil {
		a.reminders = services.NewReminderService(store, messenger)
	}

	// === Handlers ===
	tokens := utils.NewTokenIssuer(cfg.Server.JWTSecret, cfg.Server.TokenTTL)
	authHandler := handlers.NewAuthHandler(profileService, tokens)
	profileHandler := handlers.NewProfileHandler(profileService)
	taskHandler := handlers.NewTaskHandler(taskService)
	rewardHandler := handlers.NewRewardHandler(rewardService)
	chatHandler := handlers.NewChatHandler(a.chat, profileService)
	eventHandler := handlers.NewEventHandler(eventService)
	navHandler := handlers.NewNavigationHandler(navService)

	// === Gin ===
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		tokens,
		cfg.Chat.RequestsPerMinute,
		authHandler,
		profileHandler,
		taskHandler,
		rewardHandler,
		chatHandler,
		eventHandler,
		navHandler,
	)
	a.Router = router
	return a, nil
}

// Run serves HTTP and the background workers until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.chat.RunJanitor(ctx, janitorInterval(a.cfg.Chat.SessionTTL))
	if a.reminders != nil {
		go a.reminders.Run(ctx, a.cfg.Reminders.Interval)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[app][http] listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Printf("[app][http] shutting down")
		shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		defer stop()
		return srv.Shutdown(shutdownCtx)
	}
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Migrate creates the device state table.
func Migrate(ctx context.Context, cfg *config.Config) error {
	if cfg.Database.DSN == "" {
		return errors.New("database.url is empty, nothing to migrate")
	}
	db, err := openDB(cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer db.Close()
	return repositories.Migrate(ctx, db)
}

func janitorInterval(ttl time.Duration) time.Duration {
	if every := ttl / 4; every > time.Minute {
		return every
	}
	return time.Minute
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
