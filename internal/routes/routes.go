package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tikoncha/internal/authz"
	"tikoncha/internal/handlers"
	"tikoncha/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	registerHandler *handlers.RegisterHandler,
	userHandler *handlers.UserHandler,
	profileHandler *handlers.ProfileHandler,
	locationHandler *handlers.LocationHandler,
	schoolHandler *handlers.SchoolHandler,
	deviceHandler *handlers.DeviceHandler,
	appHandler *handlers.AppHandler,
	websiteHandler *handlers.WebsiteHandler,
	policyHandler *handlers.PolicyHandler,
	blockingHandler *handlers.BlockingHandler,
	logHandler *handlers.LogHandler,
	reportHandler *handlers.ReportHandler,
	integrationsHandler *handlers.IntegrationsHandler, // может быть nil, если интеграция выключена
	authMW gin.HandlerFunc,
) *gin.Engine {

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ---- public
	r.POST("/auth/token", authHandler.Token)
	r.GET("/auth/check-phone", authHandler.CheckPhone)
	r.POST("/register/create_user", registerHandler.CreateUser)
	r.POST("/register/verify-otp", registerHandler.VerifyOTP)

	if integrationsHandler != nil {
		r.POST("/integrations/telegram/webhook", integrationsHandler.TelegramWebhook)
	}

	// ---- protected
	r.Use(authMW)

	if integrationsHandler != nil {
		integr := r.Group("/integrations")
		{
			integr.POST("/telegram/request-link", integrationsHandler.RequestTelegramLink)
		}
	}

	// USERS
	users := r.Group("/users")
	{
		users.GET("/me", userHandler.Me)
		users.PUT("/me", userHandler.UpdateMe)
		users.PUT("/me/password", userHandler.ChangePassword)
		users.GET("/", middleware.RequireStaff(), userHandler.List)
		users.GET("/:id", middleware.RequireStaff(), userHandler.GetByID)
		users.DELETE("/:id", middleware.RequireRoles(authz.RoleMinistry), userHandler.Delete)
	}

	// PROFILES
	students := r.Group("/students")
	{
		students.POST("/info", middleware.RequireRoles(authz.RoleStudent), profileHandler.SaveStudentInfo)
		students.GET("/info", middleware.RequireRoles(authz.RoleStudent), profileHandler.GetStudentInfo)
	}
	parents := r.Group("/parents", middleware.RequireRoles(authz.RoleParent))
	{
		parents.POST("/info", profileHandler.SaveParentInfo)
		parents.GET("/info", profileHandler.GetParentInfo)
		parents.GET("/children", profileHandler.ListChildren)
	}
	prefs := r.Group("/preferences")
	{
		prefs.POST("/", profileHandler.SavePreferences)
		prefs.GET("/", profileHandler.GetPreferences)
		prefs.GET("/options", profileHandler.PreferenceOptions)
	}

	// DIRECTORY
	locations := r.Group("/locations")
	{
		locations.GET("/regions", locationHandler.ListRegions)
		locations.GET("/regions/:id", locationHandler.GetRegion)
		locations.GET("/districts", locationHandler.ListDistricts)
		locations.GET("/districts/:id", locationHandler.GetDistrict)
		locations.GET("/statistics", locationHandler.Statistics)

		staff := locations.Group("", middleware.RequireStaff())
		{
			staff.POST("/regions", locationHandler.CreateRegion)
			staff.PUT("/regions/:id", locationHandler.UpdateRegion)
			staff.DELETE("/regions/:id", locationHandler.DeleteRegion)
			staff.POST("/districts", locationHandler.CreateDistrict)
			staff.PUT("/districts/:id", locationHandler.UpdateDistrict)
			staff.DELETE("/districts/:id", locationHandler.DeleteDistrict)
		}
	}
	schools := r.Group("/schools")
	{
		schools.GET("/", schoolHandler.List)
		schools.GET("/:id", schoolHandler.GetByID)
		schools.POST("/", middleware.RequireStaff(), schoolHandler.Create)
		schools.PUT("/:id", middleware.RequireStaff(), schoolHandler.Update)
		schools.DELETE("/:id", middleware.RequireStaff(), schoolHandler.Delete)
	}

	// INVENTORY
	oses := r.Group("/operating-systems")
	{
		oses.GET("/", deviceHandler.ListOS)
		oses.GET("/types", deviceHandler.OSTypes)
		oses.POST("/", middleware.RequireStaff(), deviceHandler.CreateOS)
		oses.PUT("/:id", middleware.RequireStaff(), deviceHandler.UpdateOS)
		oses.DELETE("/:id", middleware.RequireStaff(), deviceHandler.DeleteOS)
	}
	devices := r.Group("/devices")
	{
		devices.POST("/", deviceHandler.Register)
		devices.GET("/", deviceHandler.ListMine)
		devices.DELETE("/:id", deviceHandler.Deactivate)
		devices.POST("/:id/apps", deviceHandler.InstallApp)
		devices.GET("/:id/apps", deviceHandler.ListInstalledApps)
		devices.DELETE("/:id/apps/:app_id", deviceHandler.UninstallApp)
	}
	apps := r.Group("/apps")
	{
		apps.GET("/", appHandler.List)
		apps.POST("/requests", middleware.RequireRoles(authz.RoleStudent), appHandler.SubmitRequest)
		apps.GET("/requests", middleware.RequireStaff(), appHandler.ListRequests)
		apps.POST("/requests/:id/resolve", middleware.RequireStaff(), appHandler.ResolveRequest)
		apps.GET("/:id", appHandler.GetByID)
		apps.POST("/", middleware.RequireStaff(), appHandler.Create)
		apps.PUT("/:id", middleware.RequireStaff(), appHandler.Update)
		apps.DELETE("/:id", middleware.RequireStaff(), appHandler.Delete)
	}
	websites := r.Group("/websites")
	{
		websites.GET("/", websiteHandler.List)
		websites.GET("/:id", websiteHandler.GetByID)
		websites.POST("/", middleware.RequireStaff(), websiteHandler.Create)
		websites.PUT("/:id", middleware.RequireStaff(), websiteHandler.Update)
		websites.DELETE("/:id", middleware.RequireStaff(), websiteHandler.Delete)
	}

	// POLICIES (персонал)
	policies := r.Group("/policies", middleware.RequireStaff())
	{
		policies.POST("/", policyHandler.Create)
		policies.GET("/", policyHandler.List)
		policies.GET("/:id", policyHandler.GetByID)
		policies.PUT("/:id", policyHandler.Update)
		policies.DELETE("/:id", policyHandler.Delete)
		policies.POST("/:id/apps", policyHandler.AttachApp)
		policies.GET("/:id/apps", policyHandler.ListApps)
		policies.DELETE("/:id/apps/:app_id", policyHandler.DetachApp)
		policies.POST("/:id/websites", policyHandler.AttachWeb)
		policies.GET("/:id/websites", policyHandler.ListWebs)
		policies.DELETE("/:id/websites/:website_id", policyHandler.DetachWeb)
	}

	// BLOCKING (ученик)
	blocking := r.Group("/blocking", middleware.RequireRoles(authz.RoleStudent))
	{
		blocking.GET("/status", blockingHandler.Status)
		blocking.GET("/apps", blockingHandler.BlockedApps)
		blocking.GET("/websites", blockingHandler.BlockedWebsites)
		blocking.GET("/schedule", blockingHandler.Schedule)
		blocking.POST("/exception", blockingHandler.RequestException)
	}

	// LOGS
	logs := r.Group("/logs")
	{
		logs.POST("/", middleware.RequireRoles(authz.RoleStudent), logHandler.Record)
		logs.GET("/", logHandler.List)
		logs.GET("/summary", logHandler.Summary)
		logs.GET("/actions", logHandler.ListActions)
		logs.POST("/actions", middleware.RequireStaff(), logHandler.CreateAction)
	}

	// REPORTS
	reports := r.Group("/reports")
	{
		reports.GET("/usage/:user_id", reportHandler.Usage)
	}

	return r
}
