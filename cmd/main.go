package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/portalpnd/simulado-api/config"
	"github.com/portalpnd/simulado-api/database"
	"github.com/portalpnd/simulado-api/internal/auth"
	adminctrl "github.com/portalpnd/simulado-api/internal/controller/admin"
	userctrl "github.com/portalpnd/simulado-api/internal/controller/user"
	"github.com/portalpnd/simulado-api/internal/logger"
	"github.com/portalpnd/simulado-api/internal/model"
	"github.com/portalpnd/simulado-api/internal/repository"
	"github.com/portalpnd/simulado-api/internal/service"
)

// @title Portal PND Simulado API
// @version 1.0
// @description Exam-attempt lifecycle and scoring API for the Portal PND practice exams.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			func(cfg *config.Config) *auth.TokenVerifier {
				return auth.NewTokenVerifier(cfg.Auth.JWTSecret)
			},
		),

		fx.Provide(
			repository.NewQuestionRepository,
			repository.NewAttemptRepository,
			repository.NewAnswerRepository,
		),

		fx.Provide(
			service.NewAttemptService,
			service.NewQuestionService,
		),

		fx.Provide(
			userctrl.NewAttemptController,
			userctrl.NewQuestionController,
			adminctrl.NewQuestionController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer wires the API routes and manages the server
// lifecycle through fx hooks.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	verifier *auth.TokenVerifier,
	attemptCtrl *userctrl.AttemptController,
	questionCtrl *userctrl.QuestionController,
	adminQuestionCtrl *adminctrl.QuestionController,
) {
	api := router.Group("/api/v1")
	api.Use(auth.RequireIdentity(verifier))
	{
		api.GET("/questions", questionCtrl.ListQuestions)

		api.POST("/attempts", attemptCtrl.StartAttempt)
		api.GET("/attempts", attemptCtrl.ListHistory)
		api.POST("/attempts/:attempt_id/answers", attemptCtrl.SubmitAnswer)
		api.GET("/attempts/:attempt_id/answers", attemptCtrl.ListAnswers)
		api.POST("/attempts/:attempt_id/finish", attemptCtrl.FinishAttempt)
		api.GET("/attempts/:attempt_id/summary", attemptCtrl.GetSummary)
	}

	adminAPI := api.Group("/admin")
	adminAPI.Use(auth.RequireAdmin())
	{
		adminAPI.POST("/questions", adminQuestionCtrl.CreateQuestion)
		adminAPI.GET("/questions", adminQuestionCtrl.ListQuestions)
		adminAPI.GET("/questions/:question_id", adminQuestionCtrl.GetQuestion)
		adminAPI.PUT("/questions/:question_id", adminQuestionCtrl.UpdateQuestion)
		adminAPI.DELETE("/questions/:question_id", adminQuestionCtrl.DeleteQuestion)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Simulado API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Question{},
		&model.Attempt{},
		&model.Answer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
