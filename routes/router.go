package routes

import (
	"github.com/gin-gonic/gin"

	"consultation-system/controllers"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(router *gin.Engine, ctl *controllers.ConsultationController) {
	// 注册咨询申请路由
	RegisterConsultationRoutes(router, ctl)

	// 健康检查路由
	router.GET("/health", ctl.Health)
}
