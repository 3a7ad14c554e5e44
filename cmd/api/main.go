package main

import (
	"context"
	"net/http"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/cloudstay/rental-service/internal/app"
	"github.com/cloudstay/rental-service/internal/config"
	"github.com/cloudstay/rental-service/internal/constants"
	"github.com/cloudstay/rental-service/internal/controllers"
	"github.com/cloudstay/rental-service/internal/middleware"
	"github.com/cloudstay/rental-service/internal/repositories"
	"github.com/cloudstay/rental-service/internal/routes"
	"github.com/cloudstay/rental-service/internal/services"
	"github.com/cloudstay/rental-service/internal/utils"
)

func main() {
	utils.InitLogger("rental-service")
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize rental-service:", err)
	}
	defer application.Close()

	rsaPub, err := middleware.ParseRSAPublicKey(cfg.JWTPublicKeyPEM)
	if err != nil {
		utils.Logger.Fatal("Failed to parse JWT public key:", err)
	}

	// Repositories
	propertyRepo := repositories.NewPropertyRepository(application.DB)
	bedroomRepo := repositories.NewBedroomRepository(application.DB)
	bookingRepo := repositories.NewBookingRepository(application.DB)
	userRepo := repositories.NewUserRepository(application.DB)
	planRepo := repositories.NewPlanRepository(application.DB)
	userPlanRepo := repositories.NewUserPlanRepository(application.DB)
	enquiryRepo := repositories.NewEnquiryRepository(application.DB)
	reviewRepo := repositories.NewReviewRepository(application.DB)
	favoriteRepo := repositories.NewFavoriteRepository(application.DB)
	revenueRepo := repositories.NewRevenueRepository(application.DB)
	contentRepo := repositories.NewContentRepository(application.DB)
	categoryRepo := repositories.NewCategoryRepository(application.DB)

	// Services
	gateway := services.NewStripeGateway(cfg)
	notifier := services.NewNotificationService(cfg)
	reconciler := services.NewBookingReconciler(gateway, bookingRepo, bedroomRepo, propertyRepo, revenueRepo, notifier)
	bookingService := services.NewBookingService(bookingRepo, bedroomRepo, propertyRepo, notifier)
	propertyService := services.NewPropertyService(cfg, propertyRepo, bedroomRepo, reviewRepo)
	enquiryService := services.NewEnquiryService(enquiryRepo, bookingRepo, bedroomRepo, propertyRepo, notifier)
	reviewService := services.NewReviewService(reviewRepo, favoriteRepo, propertyRepo)
	planService := services.NewPlanService(planRepo, userPlanRepo)
	contentService := services.NewContentService(contentRepo, categoryRepo)
	userService := services.NewUserService(userRepo)
	analyticsService := services.NewAnalyticsService(userRepo, propertyRepo, bookingRepo, revenueRepo)

	// Controllers
	healthController := controllers.NewHealthController(application)
	paymentController := controllers.NewPaymentController(reconciler, bookingService)
	webhookController := controllers.NewStripeWebhookController(gateway, reconciler)
	bookingController := controllers.NewBookingController(bookingService)
	propertyController := controllers.NewPropertyController(propertyService)
	enquiryController := controllers.NewEnquiryController(enquiryService)
	reviewController := controllers.NewReviewController(reviewService)
	planController := controllers.NewPlanController(planService)
	contentController := controllers.NewContentController(contentService)
	userController := controllers.NewUserController(userService)
	analyticsController := controllers.NewAnalyticsController(analyticsService)

	// Router setup
	router := mux.NewRouter()

	// Public routes
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.PaymentWebhook, webhookController.WebhookHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.Properties, propertyController.SearchPropertiesHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Property, propertyController.GetPropertyHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.PropertyReviews, reviewController.ListPropertyReviewsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Plans, planController.ListPlansHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Plan, planController.GetPlanHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Contents, contentController.ListContentHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Content, contentController.GetContentHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Categories, contentController.ListCategoriesHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Category, contentController.GetCategoryHandler).Methods(http.MethodGet)

	// Enquiry submission works for anonymous visitors too.
	optional := router.NewRoute().Subrouter()
	optional.Use(middleware.OptionalAuthMiddleware(rsaPub))
	optional.HandleFunc(routes.Enquiries, enquiryController.CreateEnquiryHandler).Methods(http.MethodPost)

	// Routes for signed-in users
	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(rsaPub))
	secured.HandleFunc(routes.PaymentCreateIntent, paymentController.CreatePaymentIntentHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.PaymentConfirm, paymentController.ConfirmPaymentHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.PaymentStatus, paymentController.PaymentStatusHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.BookingCreate, bookingController.CreateBookingHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Booking, bookingController.GetBookingHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.UserBookings, bookingController.ListUserBookingsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.UserEnquiries, enquiryController.ListUserEnquiriesHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Reviews, reviewController.CreateReviewHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Wishlist, reviewController.AddFavoriteHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Wishlist, reviewController.ListFavoritesHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.WishlistItem, reviewController.RemoveFavoriteHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.PlanPurchase, planController.PurchasePlanHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.MyPlans, planController.ListMyPlansHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.User, userController.GetUserHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.User, userController.UpdateUserHandler).Methods(http.MethodPut)

	// Admin-only routes
	admin := router.NewRoute().Subrouter()
	admin.Use(middleware.AdminAuthMiddleware(rsaPub))
	admin.HandleFunc(routes.Properties, propertyController.CreatePropertyHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.Property, propertyController.UpdatePropertyHandler).Methods(http.MethodPut)
	admin.HandleFunc(routes.Property, propertyController.DeletePropertyHandler).Methods(http.MethodDelete)
	admin.HandleFunc(routes.Bookings, bookingController.ListBookingsHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.BookingStatus, bookingController.UpdateBookingStatusHandler).Methods(http.MethodPatch)
	admin.HandleFunc(routes.Booking, bookingController.DeleteBookingHandler).Methods(http.MethodDelete)
	admin.HandleFunc(routes.PropertyBookings, bookingController.ListPropertyBookingsHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.Enquiries, enquiryController.ListEnquiriesHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.Enquiry, enquiryController.GetEnquiryHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.EnquiryStatus, enquiryController.UpdateEnquiryStatusHandler).Methods(http.MethodPatch)
	admin.HandleFunc(routes.Enquiry, enquiryController.DeleteEnquiryHandler).Methods(http.MethodDelete)
	admin.HandleFunc(routes.Review, reviewController.DeleteReviewHandler).Methods(http.MethodDelete)
	admin.HandleFunc(routes.Plans, planController.CreatePlanHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.Plan, planController.UpdatePlanHandler).Methods(http.MethodPut)
	admin.HandleFunc(routes.Plan, planController.DeletePlanHandler).Methods(http.MethodDelete)
	admin.HandleFunc(routes.Contents, contentController.CreateContentHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.Content, contentController.UpdateContentHandler).Methods(http.MethodPut)
	admin.HandleFunc(routes.Content, contentController.DeleteContentHandler).Methods(http.MethodDelete)
	admin.HandleFunc(routes.Categories, contentController.CreateCategoryHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.Category, contentController.UpdateCategoryHandler).Methods(http.MethodPut)
	admin.HandleFunc(routes.Category, contentController.DeleteCategoryHandler).Methods(http.MethodDelete)
	admin.HandleFunc(routes.Users, userController.ListUsersHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.User, userController.DeleteUserHandler).Methods(http.MethodDelete)
	admin.HandleFunc(routes.AnalyticsDashboard, analyticsController.DashboardHandler).Methods(http.MethodGet)

	// Cron job setup
	cronRunner := cron.New(cron.WithLocation(time.UTC))
	_, err = cronRunner.AddFunc(constants.InventoryAuditCronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), constants.InventoryAuditTimeout)
		defer cancel()
		utils.Logger.Info("Starting inventory audit cron job...")
		if err := reconciler.AuditInventory(ctx); err != nil {
			utils.Logger.WithError(err).Error("Inventory audit failed")
		}
	})
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to schedule inventory audit cron")
	}
	cronRunner.Start()
	utils.Logger.Info("Scheduled inventory audit cron job")

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Stripe-Signature"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      co.Handler(router),
		ReadTimeout:  constants.ServerReadTimeout,
		WriteTimeout: constants.ServerWriteTimeout,
		IdleTimeout:  constants.ServerIdleTimeout,
	}

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := srv.ListenAndServe(); err != nil {
		utils.Logger.Fatal("rental-service failed to start:", err)
	}
}
