package service

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"consultation-system/models"
	"consultation-system/repository"
	"consultation-system/utils"
)

// SuccessMessage 申请受理后的确认文案
const SuccessMessage = "Заявка успешно отправлена! Мы свяжемся с вами в ближайшее время."

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// ConsultationService 咨询申请处理流水线
type ConsultationService struct {
	store    *repository.ConsultationStore
	telegram *TelegramService
}

// NewConsultationService 创建咨询申请服务
func NewConsultationService(store *repository.ConsultationStore, telegram *TelegramService) *ConsultationService {
	return &ConsultationService{
		store:    store,
		telegram: telegram,
	}
}

// ProcessRequest 处理新申请: 校验 -> 生成记录 -> 落盘 -> 尽力通知
func (s *ConsultationService) ProcessRequest(ctx context.Context, form *models.ConsultationFormData) (*models.ConsultationRequest, error) {
	// 校验失败直接返回，不产生任何副作用
	if errs := ValidateFormData(form); len(errs) > 0 {
		return nil, utils.NewValidationError(errs)
	}

	request := &models.ConsultationRequest{
		ID:                 generateID(),
		Name:               form.Name,
		Email:              form.Email,
		Phone:              form.Phone,
		Company:            form.Company,
		ProjectDescription: form.ProjectDescription,
		ServiceType:        form.ServiceType,
		Budget:             form.Budget,
		Timeline:           form.Timeline,
		AdditionalInfo:     form.AdditionalInfo,
		CreatedAt:          time.Now(),
		Status:             models.StatusNew,
	}

	if err := s.store.Append(request); err != nil {
		return nil, utils.NewStorageError("保存咨询申请", err)
	}

	// 通知结果不影响申请受理结果，申请已落盘即算成功
	if !s.telegram.SendConsultationNotification(ctx, request) {
		utils.Logger.Warn().Str("id", request.ID).Msg("Telegram通知发送失败，但申请已保存")
	}

	return request, nil
}

// GetStats 返回申请统计
func (s *ConsultationService) GetStats() models.ConsultationStats {
	today := time.Now().Format("2006-01-02")
	count := len(s.store.GetByDate(today))

	// TODO: thisWeek/thisMonth 目前只是当天数量的别名，需要按滚动窗口汇总多个日文件
	return models.ConsultationStats{
		Total:     count,
		Today:     count,
		ThisWeek:  count,
		ThisMonth: count,
	}
}

// GetConsultationsByDate 返回某天的全部申请
func (s *ConsultationService) GetConsultationsByDate(date string) []models.ConsultationRequest {
	return s.store.GetByDate(date)
}

// generateID 生成申请ID: 毫秒时间戳 + 随机后缀，唯一性是概率性的
func generateID() string {
	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 36)

	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}

	return fmt.Sprintf("cons_%s_%s", timestamp, suffix)
}
