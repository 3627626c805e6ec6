package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"constellation/cmd/fx/account_fx"
	"constellation/cmd/fx/db_fx"
	"constellation/cmd/fx/listing_fx"
	"constellation/cmd/fx/mail_fx"
	"constellation/cmd/fx/member_fx"
	"constellation/cmd/fx/memcache_fx"
	"constellation/cmd/fx/payment_fx"
	"constellation/cmd/fx/personal_fx"
	"constellation/cmd/fx/repo_fx"
	"constellation/cmd/fx/signup_fx"
	"constellation/cmd/fx/social_fx"
	"constellation/cmd/fx/stripe_fx"
	"constellation/internal/api/controllers"
	"constellation/internal/models/db_models"
	"constellation/pkg/middleware"
	"constellation/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		utils.Logger.Info("No .env file found, using environment")
	}
	utils.InitLogger("constellation")

	app := fx.New(
		db_fx.Module,
		repo_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		stripe_fx.Module,

		signup_fx.Module,
		payment_fx.Module,
		member_fx.Module,
		account_fx.Module,
		listing_fx.Module,
		personal_fx.Module,
		social_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(Migrate),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func Migrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&db_models.Account{},
		&db_models.UserProfile{},
		&db_models.FoundingMember{},
		&db_models.Subscription{},
		&db_models.Listing{},
		&db_models.PersonalExpense{},
		&db_models.PersonalIncome{},
		&db_models.SocialPost{},
	)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Database migration failed")
	}
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				utils.Logger.Infof("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					utils.Logger.WithError(err).Fatal("Failed to start server")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			utils.Logger.Info("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	signupController *controllers.SignupController,
	paymentController *controllers.PaymentController,
	memberController *controllers.MemberController,
	accountController *controllers.AccountController,
	listingController *controllers.ListingController,
	personalController *controllers.PersonalController,
	socialController *controllers.SocialController) *gin.Engine {

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, signupController, paymentController, memberController,
		accountController, listingController, personalController, socialController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	signupController *controllers.SignupController,
	paymentController *controllers.PaymentController,
	memberController *controllers.MemberController,
	accountController *controllers.AccountController,
	listingController *controllers.ListingController,
	personalController *controllers.PersonalController,
	socialController *controllers.SocialController) {

	signupGroup := r.Group("/signup")
	signupGroup.POST("/start", signupController.Start)
	signupGroup.POST("/professional", signupController.Professional)
	signupGroup.POST("/complete", signupController.Complete)

	stripeGroup := r.Group("/api/stripe")
	stripeGroup.POST("/create-test-payment", paymentController.CreateTestPayment)
	stripeGroup.POST("/create-payment-intent", paymentController.CreatePaymentIntent)
	stripeGroup.POST("/webhook", paymentController.Webhook)

	accountGroup := r.Group("/accounts")
	accountGroup.POST("/login", accountController.Login)
	accountGroup.POST("/forgot-password", accountController.ForgotPassword)
	accountGroup.POST("/reset-password", accountController.ResetPassword)
	accountGroup.GET("/me", middleware.JWTAuthMiddleware(), accountController.Me)

	memberGroup := r.Group("/members", middleware.JWTAuthMiddleware())
	memberGroup.GET("/payment-status", memberController.PaymentStatus)
	memberGroup.GET("/payment-status/wait", memberController.WaitForPayment)

	listingGroup := r.Group("/listings", middleware.JWTAuthMiddleware())
	listingGroup.POST("", listingController.Create)
	listingGroup.GET("", listingController.List)
	listingGroup.GET("/:id", listingController.GetById)
	listingGroup.PUT("/:id", listingController.Update)
	listingGroup.DELETE("/:id", listingController.Delete)

	personalGroup := r.Group("/api/personal", middleware.JWTAuthMiddleware())
	personalController.RegisterRoutes(personalGroup)

	socialGroup := r.Group("/api/social", middleware.JWTAuthMiddleware())
	socialGroup.POST("/posts", socialController.Create)
	socialGroup.GET("/posts", socialController.List)
	socialGroup.PUT("/posts/:id", socialController.Update)
	socialGroup.DELETE("/posts/:id", socialController.Delete)
	socialGroup.POST("/posts/:id/schedule", socialController.Schedule)
	socialGroup.GET("/publish-status", socialController.Stats)
}
