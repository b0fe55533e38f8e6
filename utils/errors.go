package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ValidationError 表单校验错误，规则消息原样返回给调用方
type ValidationError struct {
	Messages []string
}

// Error 实现error接口
func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// NewValidationError 创建表单校验错误
func NewValidationError(messages []string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// StorageError 文件存储错误，对外只暴露通用提示，细节只进日志
type StorageError struct {
	Op  string
	Err error
}

// Error 实现error接口
func (e *StorageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

// Unwrap 返回底层错误
func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError 创建存储错误
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// HandleError 处理错误并返回适当的响应
func HandleError(c *gin.Context, err error) {
	if c == nil {
		return
	}

	// 记录错误详情
	LogError(err, map[string]interface{}{
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
	}, "API错误")

	// 校验错误: 规则消息原样返回
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		ErrorResponse(c, validationErr.Error(), http.StatusBadRequest)
		return
	}

	// 存储错误: 只返回通用提示
	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		ErrorResponse(c, "Произошла ошибка при обработке заявки. Попробуйте позже.", http.StatusInternalServerError)
		return
	}

	// 其他未预期的错误
	ErrorResponse(c, "Внутренняя ошибка сервера", http.StatusInternalServerError)
}

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, data interface{}, message string, statusCode ...int) {
	code := http.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	response := gin.H{"success": true}
	if data != nil {
		response["data"] = data
	}
	if message != "" {
		response["message"] = message
	}

	c.JSON(code, response)
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, message string, statusCode int) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}
