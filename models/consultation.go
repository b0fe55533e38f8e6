package models

import "time"

// ConsultationStatus 咨询申请状态
type ConsultationStatus string

const (
	StatusNew        ConsultationStatus = "new"
	StatusContacted  ConsultationStatus = "contacted"
	StatusInProgress ConsultationStatus = "in_progress"
	StatusCompleted  ConsultationStatus = "completed"
	StatusCancelled  ConsultationStatus = "cancelled"
)

// ConsultationRequest 咨询申请记录，按天落盘
type ConsultationRequest struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Email              string             `json:"email"`
	Phone              string             `json:"phone,omitempty"`
	Company            string             `json:"company,omitempty"`
	ProjectDescription string             `json:"projectDescription"`
	ServiceType        string             `json:"serviceType"`
	Budget             string             `json:"budget,omitempty"`
	Timeline           string             `json:"timeline,omitempty"`
	AdditionalInfo     string             `json:"additionalInfo,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
	Status             ConsultationStatus `json:"status"`
}

// ConsultationFormData 咨询表单提交数据
type ConsultationFormData struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	Phone              string `json:"phone,omitempty"`
	Company            string `json:"company,omitempty"`
	ProjectDescription string `json:"projectDescription"`
	ServiceType        string `json:"serviceType"`
	Budget             string `json:"budget,omitempty"`
	Timeline           string `json:"timeline,omitempty"`
	AdditionalInfo     string `json:"additionalInfo,omitempty"`
}

// ConsultationStats 咨询申请统计
type ConsultationStats struct {
	Total     int `json:"total"`
	Today     int `json:"today"`
	ThisWeek  int `json:"thisWeek"`
	ThisMonth int `json:"thisMonth"`
}
