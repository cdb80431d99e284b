package routes

import (
	"fieldops-backend/config"
	"fieldops-backend/controllers"
	"fieldops-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
			customers.POST("/:id/restore", controllers.RestoreCustomer)
		}

		// Customer contact routes
		contacts := api.Group("/contacts")
		{
			contacts.POST("", controllers.CreateContact)
			contacts.GET("", controllers.GetContacts)
			contacts.GET("/:id", controllers.GetContact)
			contacts.PUT("/:id", controllers.UpdateContact)
			contacts.POST("/:id/set-primary", controllers.SetPrimaryContact)
			contacts.DELETE("/:id", controllers.DeleteContact)
			contacts.POST("/:id/restore", controllers.RestoreContact)
		}
		api.GET("/customers/:id/contacts", controllers.GetContactsByCustomer)

		// Maintenance plan routes
		plans := api.Group("/plans")
		{
			plans.POST("", controllers.CreatePlan)
			plans.GET("", controllers.GetPlans)
			plans.GET("/:id", controllers.GetPlan)
			plans.PUT("/:id", controllers.UpdatePlan)
			plans.DELETE("/:id", controllers.DeletePlan)
			plans.POST("/:id/restore", controllers.RestorePlan)
		}

		// Plan task routes
		planTasks := api.Group("/plan-tasks")
		{
			planTasks.POST("", controllers.CreatePlanTask)
			planTasks.GET("", controllers.GetPlanTasks)
			planTasks.GET("/:id", controllers.GetPlanTask)
			planTasks.PUT("/:id", controllers.UpdatePlanTask)
			planTasks.DELETE("/:id", controllers.DeletePlanTask)
			planTasks.POST("/:id/restore", controllers.RestorePlanTask)
		}
		api.GET("/plans/:id/tasks", controllers.GetTasksByPlan)

		// Subscription routes
		subscriptions := api.Group("/subscriptions")
		{
			subscriptions.POST("", controllers.CreateSubscription)
			subscriptions.GET("", controllers.GetSubscriptions)
			subscriptions.GET("/:id", controllers.GetSubscription)
			subscriptions.PUT("/:id", controllers.UpdateSubscription)
			subscriptions.DELETE("/:id", controllers.DeleteSubscription)
			subscriptions.POST("/:id/restore", controllers.RestoreSubscription)
		}
		api.GET("/customers/:id/subscriptions", controllers.GetSubscriptionsByCustomer)

		// Visit routes
		visits := api.Group("/visits")
		{
			visits.POST("", controllers.CreateVisit)
			visits.GET("", controllers.GetVisits)
			visits.GET("/:id", controllers.GetVisit)
			visits.PUT("/:id", controllers.UpdateVisit)
			visits.POST("/:id/start", controllers.StartVisit)
			visits.POST("/:id/complete", controllers.CompleteVisit)
			visits.POST("/:id/cancel", controllers.CancelVisit)
			visits.POST("/:id/reopen", controllers.ReopenVisit)
			visits.DELETE("/:id", controllers.DeleteVisit)
			visits.POST("/:id/restore", controllers.RestoreVisit)
		}
		api.GET("/subscriptions/:id/visits", controllers.GetVisitsBySubscription)
		api.GET("/users/:id/visits", controllers.GetVisitsByUser)
		api.GET("/customers/:id/visits", controllers.GetVisitsByCustomer)

		// Assessment routes
		assessments := api.Group("/assessments")
		{
			assessments.GET("", controllers.GetAssessments)
			assessments.GET("/:id", controllers.GetAssessment)
			assessments.PUT("/:id", controllers.UpdateAssessment)
			assessments.DELETE("/:id", controllers.DeleteAssessment)
			assessments.POST("/:id/restore", controllers.RestoreAssessment)
		}
		api.GET("/visits/:id/assessment", controllers.GetAssessmentByVisit)
		api.POST("/visits/:id/assessment", controllers.UpsertAssessmentByVisit)
		api.GET("/customers/:id/assessments", controllers.GetAssessmentsByCustomer)

		// Evidence routes
		evidence := api.Group("/evidence")
		{
			evidence.POST("", controllers.CreateEvidence)
			evidence.GET("", controllers.GetEvidences)
			evidence.GET("/:id", controllers.GetEvidence)
			evidence.PUT("/:id", controllers.UpdateEvidence)
			evidence.DELETE("/:id", controllers.DeleteEvidence)
			evidence.POST("/:id/restore", controllers.RestoreEvidence)
		}
		api.POST("/visits/:id/evidence", controllers.CreateEvidenceByVisit)
		api.GET("/visits/:id/evidence", controllers.GetEvidenceByVisit)
		api.GET("/customers/:id/evidence", controllers.GetEvidenceByCustomer)

		// Completed task routes
		tasksCompleted := api.Group("/tasks-completed")
		{
			tasksCompleted.POST("", controllers.CreateTaskCompleted)
			tasksCompleted.GET("", controllers.GetTasksCompleted)
			tasksCompleted.GET("/:id", controllers.GetTaskCompleted)
			tasksCompleted.PUT("/:id", controllers.UpdateTaskCompleted)
			tasksCompleted.DELETE("/:id", controllers.DeleteTaskCompleted)
			tasksCompleted.POST("/:id/restore", controllers.RestoreTaskCompleted)
		}
		api.POST("/visits/:id/tasks-completed", controllers.CreateTaskCompletedByVisit)
		api.GET("/visits/:id/tasks-completed", controllers.GetTasksCompletedByVisit)
		api.GET("/customers/:id/tasks-completed", controllers.GetTasksCompletedByCustomer)

		// Material usage routes
		materials := api.Group("/materials-used")
		{
			materials.POST("", controllers.CreateMaterialUsed)
			materials.GET("", controllers.GetMaterialsUsed)
			materials.GET("/:id", controllers.GetMaterialUsed)
			materials.PUT("/:id", controllers.UpdateMaterialUsed)
			materials.DELETE("/:id", controllers.DeleteMaterialUsed)
			materials.POST("/:id/restore", controllers.RestoreMaterialUsed)
		}
		api.POST("/visits/:id/materials-used", controllers.CreateMaterialUsedByVisit)
		api.GET("/visits/:id/materials-used", controllers.GetMaterialsUsedByVisit)
		api.GET("/customers/:id/materials-used", controllers.GetMaterialsUsedByCustomer)

		// User routes
		users := api.Group("/users")
		{
			users.GET("", controllers.GetUsers)
			users.GET("/:id", controllers.GetUser)

			users.POST("", utils.AdminOnly(), controllers.CreateUser)
			users.PUT("/:id", utils.AdminOnly(), controllers.UpdateUser)
			users.DELETE("/:id", utils.AdminOnly(), controllers.DeleteUser)
			users.POST("/:id/restore", utils.AdminOnly(), controllers.RestoreUser)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
