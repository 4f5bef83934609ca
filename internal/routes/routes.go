package routes

import (
	"log"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/camilohimself/projet-gocours/internal/config"
	"github.com/camilohimself/projet-gocours/internal/handlers"
	"github.com/camilohimself/projet-gocours/internal/matching"
	"github.com/camilohimself/projet-gocours/internal/middleware"
	"github.com/camilohimself/projet-gocours/internal/repository"
	"github.com/camilohimself/projet-gocours/internal/services"
	notifyws "github.com/camilohimself/projet-gocours/internal/websocket"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool, cache *redis.Client) {
	userRepo := repository.NewUserRepository(db)
	studentProfileRepo := repository.NewStudentProfileRepository(db)
	tutorProfileRepo := repository.NewTutorProfileRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	xpRepo := repository.NewXPRepository(db)

	hub := notifyws.NewHub()
	go hub.Run()

	scorer := matching.NewScorer(nil, matching.WithReferenceRate(cfg.MatchReferenceRate))

	gamificationService := services.NewGamificationService(xpRepo, userRepo, cache)
	profileService := services.NewProfileService(studentProfileRepo, tutorProfileRepo)
	matchmakingService := services.NewMatchmakingService(tutorProfileRepo, studentProfileRepo, scorer)
	searchService := services.NewSearchService(tutorProfileRepo, subjectRepo)
	bookingService := services.NewBookingService(db, bookingRepo, userRepo, tutorProfileRepo, hub, gamificationService)
	reviewService := services.NewReviewService(db, reviewRepo, bookingRepo, gamificationService)

	authHandler := handlers.NewAuthHandler(db, userRepo, studentProfileRepo, tutorProfileRepo, cfg.JWTSecret)
	onboardingHandler := handlers.NewOnboardingHandler(studentProfileRepo, tutorProfileRepo)
	profileHandler := handlers.NewProfileHandler(profileService, studentProfileRepo, tutorProfileRepo)
	tutorDiscoveryHandler := handlers.NewTutorDiscoveryHandler(searchService, matchmakingService, tutorProfileRepo, reviewService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteRepo, tutorProfileRepo)
	subjectHandler := handlers.NewSubjectHandler(subjectRepo)
	gamificationHandler := handlers.NewGamificationHandler(gamificationService)
	matchingHandler := handlers.NewMatchingHandler(matchmakingService)
	notificationHandler := handlers.NewNotificationHandler(hub, cfg.JWTSecret)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	students := authProtected.Group("/students")
	students.Post("/onboarding", onboardingHandler.StudentOnboarding)
	students.Get("/profile", profileHandler.GetStudentProfile)
	students.Put("/profile", profileHandler.UpdateStudentProfile)

	tutors := authProtected.Group("/tutors")
	tutors.Get("", tutorDiscoveryHandler.ListTutors)
	tutors.Post("/search", tutorDiscoveryHandler.SearchTutors)
	tutors.Get("/search/metadata", tutorDiscoveryHandler.GetSearchMetadata)
	tutors.Post("/onboarding", onboardingHandler.TutorOnboarding)
	tutors.Get("/profile", profileHandler.GetTutorProfile)
	tutors.Put("/profile", profileHandler.UpdateTutorProfile)
	tutors.Put("/availability", profileHandler.UpdateAvailability)
	tutors.Get("/recommended", tutorDiscoveryHandler.GetRecommendedTutors)
	tutors.Get("/:id", tutorDiscoveryHandler.GetTutorDetail)
	tutors.Get("/:id/reviews", reviewHandler.ListTutorReviews)
	tutors.Post("/:id/favorite", favoriteHandler.AddFavorite)
	tutors.Delete("/:id/favorite", favoriteHandler.RemoveFavorite)

	bookings := authProtected.Group("/bookings")
	bookings.Post("", bookingHandler.CreateBooking)
	bookings.Get("", bookingHandler.ListBookings)
	bookings.Get("/availability", bookingHandler.CheckAvailability)
	bookings.Get("/:id", bookingHandler.GetBooking)
	bookings.Put("/:id/status", bookingHandler.UpdateStatus)
	bookings.Put("/:id/notes", bookingHandler.UpdateNotes)
	bookings.Delete("/:id", bookingHandler.DeleteBooking)

	authProtected.Post("/reviews", reviewHandler.CreateReview)
	authProtected.Get("/favorites", favoriteHandler.ListFavorites)
	authProtected.Get("/subjects", subjectHandler.ListSubjects)

	gamification := authProtected.Group("/gamification")
	gamification.Get("/progress", gamificationHandler.GetProgress)
	gamification.Get("/leaderboard", gamificationHandler.GetLeaderboard)

	authProtected.Post("/matching/group", matchingHandler.GroupMatching)

	api.Use("/v1/ws", notificationHandler.WebSocketAuth)
	api.Get("/v1/ws", websocket.New(notificationHandler.HandleWebSocket))

	if err := registerDocsRoutes(app, cfg); err != nil {
		log.Printf("register docs routes: %v", err)
	}
}
