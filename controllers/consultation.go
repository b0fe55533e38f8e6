package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"consultation-system/models"
	"consultation-system/service"
	"consultation-system/utils"
)

// ConsultationController 咨询申请相关的HTTP处理器
type ConsultationController struct {
	service  *service.ConsultationService
	telegram *service.TelegramService
}

// NewConsultationController 创建咨询申请控制器
func NewConsultationController(svc *service.ConsultationService, telegram *service.TelegramService) *ConsultationController {
	return &ConsultationController{
		service:  svc,
		telegram: telegram,
	}
}

// SubmitConsultation 受理新的咨询申请
func (ctl *ConsultationController) SubmitConsultation(c *gin.Context) {
	var form models.ConsultationFormData
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.ErrorResponse(c, "Некорректные данные запроса", http.StatusBadRequest)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"email": form.Email,
	}, "收到新的咨询申请")

	request, err := ctl.service.ProcessRequest(c.Request.Context(), &form)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Logger.Info().Str("id", request.ID).Msg("咨询申请处理成功")
	utils.SuccessResponse(c, request, service.SuccessMessage)
}

// TestTelegram 发送测试消息，验证Telegram配置
func (ctl *ConsultationController) TestTelegram(c *gin.Context) {
	if !ctl.telegram.SendTestMessage(c.Request.Context()) {
		utils.ErrorResponse(c, "Не удалось отправить тестовое сообщение", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(c, nil, "Тестовое сообщение отправлено в Telegram")
}

// GetStats 获取申请统计
func (ctl *ConsultationController) GetStats(c *gin.Context) {
	utils.SuccessResponse(c, ctl.service.GetStats(), "")
}

// GetByDate 获取某天的全部申请
func (ctl *ConsultationController) GetByDate(c *gin.Context) {
	date := c.Param("date")

	// 日期格式先校验再拼文件名，不把原始参数带进文件路径
	if _, err := time.Parse("2006-01-02", date); err != nil {
		utils.ErrorResponse(c, "Некорректный формат даты, ожидается YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	utils.SuccessResponse(c, ctl.service.GetConsultationsByDate(date), "")
}

// Health 健康检查
func (ctl *ConsultationController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "consultation-system",
	})
}
