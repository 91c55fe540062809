package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookeasy/bookeasy-backend/api/controllers"
	"github.com/bookeasy/bookeasy-backend/api/middleware"
	"github.com/bookeasy/bookeasy-backend/internal/admin"
	"github.com/bookeasy/bookeasy-backend/internal/bookings"
	"github.com/bookeasy/bookeasy-backend/internal/contact"
	"github.com/bookeasy/bookeasy-backend/internal/feedback"
	"github.com/bookeasy/bookeasy-backend/internal/identity"
	"github.com/bookeasy/bookeasy-backend/internal/intent"
	"github.com/bookeasy/bookeasy-backend/internal/rooms"
	"github.com/bookeasy/bookeasy-backend/pkg/config"
	"github.com/bookeasy/bookeasy-backend/pkg/db"
	"github.com/bookeasy/bookeasy-backend/pkg/logger"
	redisclient "github.com/bookeasy/bookeasy-backend/pkg/redis"
	"github.com/bookeasy/bookeasy-backend/pkg/session"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	database *db.Client,
	redisClient *redisclient.Client,
	sessions *session.Manager,
	tracker *intent.Tracker,
	identityService identity.Service,
	adminService admin.Service,
	bookingService bookings.Service,
	roomService rooms.Service,
	feedbackService feedback.Service,
	contactService contact.Service,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
		middleware.ClientKey(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)
	accountLimiter := middleware.AuthRateLimitByAction(map[string]middleware.AuthRateLimitPolicy{
		"login":    loginPolicy,
		"register": registerPolicy,
	}, redisClient, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, database, redisClient, logg))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/users", func(r chi.Router) {
		r.With(accountLimiter).Post("/", controllers.Users(identityService, sessions, logg))
		r.Get("/", controllers.UsersLookup(identityService, logg))
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/", controllers.Admin(adminService, logg))
	})

	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(middleware.RequireSession(sessions, cfg.Session, logg))
		r.Post("/", controllers.Bookings(bookingService, logg))
		r.Get("/", controllers.BookingsLookup(bookingService, logg))
	})

	r.Route("/api/rooms", func(r chi.Router) {
		r.Get("/", controllers.Rooms(roomService, logg))
		r.Post("/", controllers.RoomsMutate(roomService, logg))
	})

	r.Route("/api/feedback", func(r chi.Router) {
		r.Get("/", controllers.FeedbackLookup(feedbackService, logg))
		r.Post("/", controllers.Feedback(feedbackService, logg))
	})

	r.Post("/api/contact", controllers.Contact(contactService, logg))

	r.Post("/api/intent", controllers.Intent(tracker, sessions, logg))

	return r
}
