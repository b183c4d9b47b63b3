package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rassdread/homecheff-backend/api/controllers"
	"github.com/rassdread/homecheff-backend/api/middleware"
	"github.com/rassdread/homecheff-backend/internal/chat"
	"github.com/rassdread/homecheff-backend/internal/notifications"
	"github.com/rassdread/homecheff-backend/internal/orders"
	"github.com/rassdread/homecheff-backend/internal/payouts"
	"github.com/rassdread/homecheff-backend/internal/reviews"
	"github.com/rassdread/homecheff-backend/internal/users"
	"github.com/rassdread/homecheff-backend/pkg/auth/session"
	"github.com/rassdread/homecheff-backend/pkg/config"
	"github.com/rassdread/homecheff-backend/pkg/enums"
	"github.com/rassdread/homecheff-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	sessions session.AccessSessionChecker,
	ordersService orders.Service,
	payoutsService payouts.Service,
	chatService chat.Service,
	reviewsService reviews.Service,
	notificationsService notifications.Service,
	usersService users.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	r.Handle("/metrics", promhttp.Handler())

	// The review token carries the buyer identity, so submission stays public.
	r.Route("/api/public/v1", func(r chi.Router) {
		r.Post("/reviews", controllers.SubmitReview(reviewsService, logg))
		r.Get("/products/{productId}/reviews", controllers.ProductReviews(reviewsService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(ordersService, logg))
			r.Patch("/{orderId}", controllers.UpdateOrder(ordersService, logg))
			r.Delete("/{orderId}", controllers.CancelOrder(ordersService, logg))
		})

		r.Route("/seller/earnings", func(r chi.Router) {
			r.Get("/", controllers.SellerEarnings(payoutsService, logg))
			r.Get("/export", controllers.SellerEarningsExport(payoutsService, logg))
		})

		r.Route("/conversations/{conversationId}/messages", func(r chi.Router) {
			r.Get("/", controllers.ConversationMessages(chatService, logg))
			r.Post("/", controllers.PostConversationMessage(chatService, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(notificationsService, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(notificationsService, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(notificationsService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))

		r.Post("/users/bulk-delete", controllers.BulkDeleteUsers(usersService, logg))
	})

	return r
}
