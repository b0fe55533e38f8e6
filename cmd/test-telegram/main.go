package main

import (
	"context"
	"os"
	"time"

	"consultation-system/config"
	"consultation-system/service"
	"consultation-system/utils"
)

// Telegram连通性检查: 读取配置并发送一条测试消息
func main() {
	utils.InitLogger()

	cfg := config.LoadConfig()

	if cfg.BotToken == "" {
		utils.Logger.Fatal().Msg("TELEGRAM_BOT_TOKEN 未设置")
	}
	if cfg.AdminChatID == "" {
		utils.Logger.Fatal().Msg("TELEGRAM_ADMIN_CHAT_ID 未设置")
	}

	utils.Logger.Info().
		Str("botToken", maskToken(cfg.BotToken)).
		Str("adminChatId", cfg.AdminChatID).
		Msg("开始测试Telegram连接")

	telegram := service.NewTelegramService(cfg.BotToken, cfg.AdminChatID)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if !telegram.SendTestMessage(ctx) {
		utils.Logger.Error().Msg("测试消息发送失败，请检查bot token、chat id以及bot是否已加入会话")
		os.Exit(1)
	}

	utils.Logger.Info().Msg("测试消息发送成功，Telegram集成工作正常")
}

// maskToken 日志里只保留token前缀
func maskToken(token string) string {
	if len(token) <= 10 {
		return "..."
	}
	return token[:10] + "..."
}
