package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/journal-portal/internal/gateway"
	"github.com/noah-isme/journal-portal/internal/handler"
	"github.com/noah-isme/journal-portal/internal/middleware"
	"github.com/noah-isme/journal-portal/internal/service"
	"github.com/noah-isme/journal-portal/internal/session"
	"github.com/noah-isme/journal-portal/pkg/config"
	"github.com/noah-isme/journal-portal/pkg/logger"
	corsmiddleware "github.com/noah-isme/journal-portal/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/journal-portal/pkg/middleware/requestid"
)

const loadingRetry = time.Second

type portal struct {
	cfg      *config.Config
	logger   *zap.Logger
	client   *gateway.Client
	manager  *session.Manager
	metrics  *service.MetricsService
	validate *validator.Validate

	schedule *service.ScheduleService
	teacher  *service.TeacherService
	student  *service.StudentService
	admin    *service.AdminService
	reports  *service.ReportService
	lessons  *service.LessonWorkspace
}

func (p *portal) router() *gin.Engine {
	cookies := middleware.NewCookieStore(middleware.CookieOptions{
		Name:   p.cfg.Session.CookieName,
		Secret: p.cfg.Session.Secret,
		Secure: p.cfg.Session.SecureCookie,
		MaxAge: p.cfg.Session.TTL,
	}, p.logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(corsmiddleware.New(p.cfg.CORS.AllowedOrigins))
	r.Use(logger.GinMiddleware(p.logger))
	if p.cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(p.metrics))
	}

	metricsHandler := handler.NewMetricsHandler(p.metrics, p.client, p.cfg.Upstream.Timeout)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	if p.cfg.Metrics.Enabled {
		r.GET("/metrics", metricsHandler.Prometheus)
	}
	if p.cfg.Env != config.EnvProduction && p.cfg.Docs.Enabled {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// everything below belongs to a client instance
	app := r.Group("")
	app.Use(middleware.ClientInstance(cookies, p.cfg.Session.CookieName, p.manager, p.lessons, p.logger))

	sessions := handler.NewSessionHandler(p.client, p.validate, int(loadingRetry/time.Second))
	app.GET("/", sessions.Root)
	app.GET("/login", sessions.LoginPage)
	app.POST("/login/:role", sessions.Login)
	app.POST("/logout", sessions.Logout)
	app.GET("/session", sessions.Current)
	app.PATCH("/session/identity", sessions.UpdateIdentity)
	app.POST("/session/password", sessions.ChangePassword)
	app.POST("/setup/admin", sessions.RegisterAdmin)

	schedule := handler.NewScheduleHandler(p.client, p.schedule)
	reports := handler.NewReportHandler(p.client, p.reports)

	admin := app.Group("/admin", middleware.Guard(loadingRetry), middleware.Audit(p.logger, "admin"))
	{
		h := handler.NewAdminHandler(p.client, p.admin, p.cfg.Imports.MaxFileSizeBytes)
		admin.GET("", h.Dashboard)
		for _, entity := range gateway.Entities {
			path := "/" + string(entity)
			admin.GET(path, h.List(entity))
			admin.POST(path, h.Create(entity))
			admin.PUT(path+"/:id", h.Update(entity))
			admin.DELETE(path+"/:id", h.Delete(entity))
		}
		admin.POST("/groups/:id/import-students", h.ImportStudents)
		admin.POST("/semesters/:id/activate", h.ActivateSemester)
		admin.GET("/schedule-management", h.ScheduleManagement)
		admin.POST("/schedule-management", h.SaveSchedule)
		admin.PUT("/schedule-management/:id", h.SaveSchedule)
		admin.DELETE("/schedule-management/:id", h.DeleteSchedule)
		admin.PUT("/schedule-instances/:id", h.UpdateInstance)
		admin.POST("/schedule-instances/:id/cancel", h.CancelInstance)
		admin.GET("/schedule", schedule.Schedule)
		mountReports(admin.Group("/reports"), reports)
		admin.GET("/reports/semesters/:semesterId", reports.SemesterAnalytics)
	}

	teacher := app.Group("/teacher", middleware.Guard(loadingRetry), middleware.LeaveLesson(p.lessons), middleware.Audit(p.logger, "journal"))
	{
		h := handler.NewTeacherHandler(p.client, p.teacher, p.lessons)
		teacher.GET("", h.Dashboard)
		teacher.GET("/schedule", schedule.Schedule)
		teacher.GET("/lesson/:lessonId", h.Lesson)
		teacher.DELETE("/lesson/:lessonId", h.Close)
		teacher.POST("/lesson/:lessonId/attendance/:studentId", h.SetAttendance)
		teacher.POST("/lesson/:lessonId/mark-all", h.MarkAll)
		teacher.PUT("/lesson/:lessonId/grades/:studentId", h.EditGrade)
		teacher.POST("/lesson/:lessonId/save", h.Save)
		mountReports(teacher.Group("/reports"), reports)
	}

	student := app.Group("/student", middleware.Guard(loadingRetry))
	{
		h := handler.NewStudentHandler(p.client, p.student)
		student.GET("", h.Dashboard)
		student.GET("/schedule", schedule.Schedule)
		student.GET("/my-grades", h.Grades)
		student.GET("/my-grades/export", h.ExportGrades)
		student.GET("/my-attendance", h.Attendance)
		student.GET("/stats", h.Stats)
	}

	r.NoRoute(sessions.Root)
	return r
}

func mountReports(g *gin.RouterGroup, h *handler.ReportHandler) {
	g.GET("/attendance", h.Download(service.ReportAttendance))
	g.GET("/grades", h.Download(service.ReportGrades))
	g.GET("/group-attendance", h.GroupAttendance)
	g.GET("/group-grades", h.GroupGrades)
	g.GET("/students/:studentId", h.StudentAnalytics)
}
