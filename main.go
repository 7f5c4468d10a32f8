package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "tutorq/docs"
	"tutorq/internal/auth"
	"tutorq/internal/config"
	"tutorq/internal/discord"
	"tutorq/internal/handlers"
	"tutorq/internal/queue"
	"tutorq/internal/storage"
	"tutorq/internal/tasks"
	"tutorq/internal/ws"
)

// @Title						Очередь консультаций
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("[ERROR] Ошибка конфигурации: ", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("[ERROR] Ошибка конфигурации: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal("[ERROR] Ошибка подключения к базе данных: ", err)
	}

	delays, err := openDelayQueue(ctx, cfg)
	if err != nil {
		log.Fatal("[ERROR] Ошибка подключения к Redis: ", err)
	}

	hub := ws.NewHub()
	go hub.Run(ctx)

	opts := queue.Options{
		Store:        store,
		Events:       hub,
		Tasks:        delays,
		Clock:        tasks.SystemClock{},
		Location:     loc,
		GracePeriod:  cfg.GracePeriod,
		VerifiedRole: cfg.VerifiedRole,
		SessionRole:  cfg.SessionRole,
	}

	var bot *discord.Bot
	if cfg.DiscordToken != "" {
		bot, err = discord.New(cfg.DiscordToken)
		if err != nil {
			log.Fatal("[ERROR] Ошибка создания бота: ", err)
		}
		opts.Notifier = bot.Notifier()
		opts.Rooms = bot.Rooms()
		opts.Roles = bot.Roles()
	} else {
		log.Println("[WARN] DISCORD_TOKEN не задан, бот не запущен")
	}

	svc := queue.New(opts)

	if bot != nil {
		bot.Listen(svc)
		if err := bot.Start(); err != nil {
			log.Fatal("[ERROR] Ошибка запуска бота: ", err)
		}
		defer bot.Stop()
	}

	runner := tasks.NewRunner(delays, tasks.SystemClock{})
	runner.Handle(queue.TaskReapMember, svc.HandleReapTask)

	planner, err := tasks.InitScheduler(tasks.PlannerConfig{
		ScheduleSpec: cfg.ScheduleSpec,
		ReaperSpec:   cfg.ReaperSpec,
		Location:     loc,
	}, svc, runner)
	if err != nil {
		log.Fatal("[ERROR] Ошибка запуска планировщика: ", err)
	}

	tokens := auth.NewTokens(cfg.JWTAccessSecret, cfg.JWTRefreshSecret)
	h := handlers.New(handlers.Options{
		Service:       svc,
		Hub:           hub,
		Tokens:        tokens,
		AdminUser:     cfg.AdminUser,
		AdminPassHash: cfg.AdminPasswordHash,
	})

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h.RegisterRoutes(r, auth.AuthMiddleware(tokens))

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("[ERROR] Ошибка запуска сервера... ", err)
		}
	}()
	log.Printf("[INFO] Сервер запущен на %s", cfg.HTTPAddr)

	<-ctx.Done()
	log.Println("[INFO] Остановка сервера")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("[ERROR] Ошибка остановки сервера:", err)
	}
	<-planner.Stop().Done()
	svc.Wait()
}

func openStore(cfg *config.Config) (queue.Store, error) {
	if cfg.Store == config.StoreMemory {
		log.Println("[WARN] Хранилище в памяти, данные будут потеряны при перезапуске")
		return storage.NewMemoryStore(), nil
	}
	db, err := storage.ConnectDatabase(cfg)
	if err != nil {
		return nil, err
	}
	return storage.NewGormStore(db), nil
}

func openDelayQueue(ctx context.Context, cfg *config.Config) (tasks.DelayQueue, error) {
	if cfg.TaskBackend == config.TasksMemory {
		return tasks.NewMemoryQueue(), nil
	}
	client, err := storage.InitRedis(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return tasks.NewRedisQueue(client, ""), nil
}
