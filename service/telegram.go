package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"consultation-system/models"
	"consultation-system/utils"
)

const defaultTelegramAPIBase = "https://api.telegram.org"

// moscowTZ 通知里的时间统一用莫斯科时区
var moscowTZ = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		return time.FixedZone("MSK", 3*60*60)
	}
	return loc
}()

// htmlEscaper 转义Telegram HTML模式的特殊字符
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// TelegramService Telegram通知服务
type TelegramService struct {
	botToken    string
	adminChatID string
	client      *http.Client

	// APIBase 测试时可替换为本地httptest服务地址
	APIBase string
}

// telegramPayload sendMessage接口的请求体
type telegramPayload struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// NewTelegramService 创建Telegram通知服务
func NewTelegramService(botToken, adminChatID string) *TelegramService {
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
		client:      &http.Client{Timeout: 10 * time.Second},
		APIBase:     defaultTelegramAPIBase,
	}
}

// SendConsultationNotification 向管理员发送新申请通知，失败只记日志不外抛
func (s *TelegramService) SendConsultationNotification(ctx context.Context, request *models.ConsultationRequest) bool {
	return s.sendMessage(ctx, s.formatConsultationMessage(request))
}

// SendTestMessage 发送测试消息，用于验证配置
func (s *TelegramService) SendTestMessage(ctx context.Context) bool {
	return s.sendMessage(ctx, "🧪 <b>Тестовое сообщение</b>\n\nСистема уведомлений о заявках работает корректно!")
}

// formatConsultationMessage 格式化申请通知，每个字段都做HTML转义
func (s *TelegramService) formatConsultationMessage(request *models.ConsultationRequest) string {
	timestamp := request.CreatedAt.In(moscowTZ).Format("02.01.2006, 15:04")

	var b strings.Builder
	b.WriteString("🚀 <b>Новая заявка на консультацию!</b>\n\n")
	b.WriteString("📅 <b>Дата:</b> " + timestamp)
	b.WriteString("\n👤 <b>Имя:</b> " + EscapeHTML(request.Name))
	b.WriteString("\n📧 <b>Email:</b> " + EscapeHTML(request.Email))

	if request.Phone != "" {
		b.WriteString("\n📞 <b>Телефон:</b> " + EscapeHTML(request.Phone))
	}

	if request.Company != "" {
		b.WriteString("\n🏢 <b>Компания:</b> " + EscapeHTML(request.Company))
	}

	b.WriteString("\n🎯 <b>Услуга:</b> " + EscapeHTML(request.ServiceType))

	if request.Budget != "" {
		b.WriteString("\n💰 <b>Бюджет:</b> " + EscapeHTML(request.Budget))
	}

	if request.Timeline != "" {
		b.WriteString("\n⏰ <b>Сроки:</b> " + EscapeHTML(request.Timeline))
	}

	b.WriteString("\n📝 <b>Описание проекта:</b>\n" + EscapeHTML(request.ProjectDescription))

	if request.AdditionalInfo != "" {
		b.WriteString("\n\n💬 <b>Дополнительная информация:</b>\n" + EscapeHTML(request.AdditionalInfo))
	}

	b.WriteString("\n\n#новая_заявка #консультация")

	return b.String()
}

// sendMessage 调用sendMessage接口，任何传输或接口错误都转换为false
func (s *TelegramService) sendMessage(ctx context.Context, text string) bool {
	url := fmt.Sprintf("%s/bot%s/sendMessage", s.APIBase, s.botToken)

	payload := telegramPayload{
		ChatID:                s.adminChatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		utils.LogError(err, nil, "序列化Telegram消息失败")
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		utils.LogError(err, nil, "构造Telegram请求失败")
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		utils.LogError(err, nil, "发送Telegram消息失败")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		utils.LogError(nil, map[string]interface{}{
			"statusCode": resp.StatusCode,
			"body":       string(respBody),
		}, "Telegram接口返回错误")
		return false
	}

	utils.Logger.Info().Str("chatId", s.adminChatID).Msg("Telegram消息发送成功")
	return true
}

// EscapeHTML 转义Telegram HTML模式的特殊字符
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}
