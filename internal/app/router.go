package app

import (
	"numiviz_backend/internal/config"
	"numiviz_backend/internal/middleware"
	"numiviz_backend/internal/model"
	"numiviz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// Routes publiques
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// Routes authentifiées
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, repos, cfg)
}

// registerStudentRoutes routes accessibles à tous les rôles connectés
func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	// Modules et leçons
	rg.GET("/modules", c.module.List)
	rg.GET("/modules/:id", c.module.Get)
	rg.GET("/modules/:id/lessons", c.module.Lessons)
	rg.GET("/modules/:id/quizzes", c.module.Quizzes)
	rg.GET("/chapters", c.module.Chapters)
	rg.GET("/lessons/block-types", c.lesson.BlockTypes)
	rg.GET("/lessons/:id", c.lesson.Get)
	rg.GET("/lessons/:id/can-advance", c.lesson.CanAdvance)
	rg.POST("/lessons/render-math", c.lesson.RenderMath)

	// Exercices et mode examen
	rg.GET("/exercises", c.exercise.List)
	rg.GET("/exercises/:id", c.exercise.Get)
	rg.GET("/exam/exercises", c.exercise.ExamList)
	rg.POST("/exam/validate", c.exercise.ExamValidate)
	rg.POST("/exam/score", c.exercise.ExamScore)

	// Quiz
	rg.GET("/quizzes/scores", c.quiz.Scores)
	rg.GET("/quizzes/:id", c.quiz.Get)
	rg.POST("/quizzes/submit", c.quiz.Submit)
	rg.POST("/quizzes/check", c.quiz.Check)

	// Progression
	rg.POST("/progress/video", c.progress.Report)
	rg.GET("/progress/modules/:id", c.progress.Module)

	// Solveurs numériques
	rg.POST("/solver/matrix/:op", c.solver.MatrixOp)
	rg.POST("/solver/linear-system", c.solver.SolveLinearSystem)
	rg.POST("/solver/convergence", c.solver.Convergence)
	rg.POST("/solver/nonlinear", c.solver.SolveNonlinear)
	rg.POST("/solver/linear-2x2", c.solver.SolveLinear2x2)
	rg.GET("/solver/linear-2x2/history", c.solver.Linear2x2History)
	rg.DELETE("/solver/linear-2x2/history", c.solver.Linear2x2ClearHistory)

	// Catalogue Manim (lecture pour tous: le lecteur vidéo en a besoin)
	rg.GET("/media/manim", c.media.ManimCatalog)

	// Agenda personnel
	rg.GET("/events", c.event.List)
	rg.POST("/events", c.event.Create)
	rg.PUT("/events/:id", c.event.Update)
	rg.DELETE("/events/:id", c.event.Delete)
}

// registerTeacherRoutes routes de rédaction, enseignants et admins
func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/")
	teacher.Use(middleware.RoleMiddleware(model.Professeur))
	{
		teacher.POST("/modules", c.module.Create)
		teacher.PUT("/modules/:id", c.module.Update)
		teacher.DELETE("/modules/:id", c.module.Delete)

		teacher.POST("/lessons", c.lesson.Save)
		teacher.PUT("/lessons/:id", c.lesson.Update)
		teacher.GET("/lessons/:id/edit", c.lesson.Edit)
		teacher.DELETE("/lessons/:id", c.lesson.Delete)

		teacher.POST("/exercises", c.exercise.Create)
		teacher.PUT("/exercises/:id", c.exercise.Update)
		teacher.DELETE("/exercises/:id", c.exercise.Delete)

		teacher.POST("/quizzes", c.quiz.Create)
		teacher.PUT("/quizzes/:id", c.quiz.Update)
		teacher.DELETE("/quizzes/:id", c.quiz.Delete)

		teacher.POST("/media/upload", c.media.Upload)

		teacher.GET("/dashboard/stats", c.dashboard.Stats)
	}
}

// registerAdminRoutes gestion des comptes, admin seulement sauf lecture
func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		admin.GET("/users", middleware.RoleMiddleware(model.Admin, model.Professeur), c.user.List)
		admin.GET("/users/:id", middleware.RoleMiddleware(model.Admin, model.Professeur), c.user.Get)

		adminOnly := admin.Group("/")
		adminOnly.Use(middleware.RoleMiddleware(model.Admin))
		{
			adminOnly.PUT("/users/:id/role", c.user.UpdateRole)
			adminOnly.DELETE("/users/:id", c.user.Delete)
		}
	}
}
