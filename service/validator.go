package service

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"consultation-system/models"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^(\+7|7|8)?[\s\-]?\(?[489][0-9]{2}\)?[\s\-]?[0-9]{3}[\s\-]?[0-9]{2}[\s\-]?[0-9]{2}$`)
)

// ValidateFormData 校验表单数据，累积所有失败规则的提示
func ValidateFormData(form *models.ConsultationFormData) []string {
	var errors []string

	// 检查必填字段，长度按字符数算，不能按字节数
	if utf8.RuneCountInString(strings.TrimSpace(form.Name)) < 2 {
		errors = append(errors, "Имя должно содержать минимум 2 символа")
	}

	if form.Email == "" || !IsValidEmail(form.Email) {
		errors = append(errors, "Некорректный email адрес")
	}

	if utf8.RuneCountInString(strings.TrimSpace(form.ProjectDescription)) < 10 {
		errors = append(errors, "Описание проекта должно содержать минимум 10 символов")
	}

	if form.ServiceType == "" {
		errors = append(errors, "Необходимо выбрать тип услуги")
	}

	// 检查电话（如果填写）
	if form.Phone != "" && !IsValidPhone(form.Phone) {
		errors = append(errors, "Некорректный номер телефона")
	}

	return errors
}

// IsValidEmail 验证email是否有效
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPhone 验证手机号是否有效，只支持俄罗斯号码
func IsValidPhone(phone string) bool {
	// 先去掉所有空白字符（包括不间断空格等），再做格式匹配
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, phone)
	return phoneRegex.MatchString(stripped)
}
