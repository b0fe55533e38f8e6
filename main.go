package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"consultation-system/config"
	"consultation-system/controllers"
	"consultation-system/middleware"
	"consultation-system/repository"
	"consultation-system/routes"
	"consultation-system/service"
	"consultation-system/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 初始化日志
	utils.InitLogger()

	// 加载配置
	cfg := config.LoadConfig()

	// Telegram凭证缺失无法发通知，直接退出
	if cfg.BotToken == "" || cfg.AdminChatID == "" {
		utils.Logger.Fatal().Msg("Telegram配置缺失: 请设置 TELEGRAM_BOT_TOKEN 和 TELEGRAM_ADMIN_CHAT_ID")
	}

	// 设置Gin模式
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化服务，进程内只构造一次，按依赖注入传递
	store := repository.NewConsultationStore(cfg.DataDir)
	telegram := service.NewTelegramService(cfg.BotToken, cfg.AdminChatID)
	consultationService := service.NewConsultationService(store, telegram)
	controller := controllers.NewConsultationController(consultationService, telegram)

	// 创建Gin实例
	router := gin.New()

	// 应用中间件
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.ErrorHandler())

	// 注册路由
	routes.RegisterRoutes(router, controller)

	// 设置HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 启动服务器
	go func() {
		utils.Logger.Info().Msgf("服务器启动，监听端口: %d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Logger.Fatal().Err(err).Msg("启动服务器失败")
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.Logger.Info().Msg("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.Logger.Fatal().Err(err).Msg("服务器关闭异常")
	}

	utils.Logger.Info().Msg("服务器已优雅关闭")
}
