package routes

import (
	"github.com/gin-gonic/gin"

	"consultation-system/controllers"
)

// RegisterConsultationRoutes 注册咨询申请相关路由
func RegisterConsultationRoutes(router *gin.Engine, ctl *controllers.ConsultationController) {
	api := router.Group("/api")

	api.POST("/consultation", ctl.SubmitConsultation)
	api.POST("/test-telegram", ctl.TestTelegram)
	api.GET("/consultation/stats", ctl.GetStats)
	api.GET("/consultation/by-date/:date", ctl.GetByDate)
}
