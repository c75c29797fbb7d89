package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/giftlist-backend/api/controllers"
	"github.com/angelmondragon/giftlist-backend/api/middleware"
	"github.com/angelmondragon/giftlist-backend/internal/members"
	"github.com/angelmondragon/giftlist-backend/internal/products"
	"github.com/angelmondragon/giftlist-backend/pkg/auth/session"
	"github.com/angelmondragon/giftlist-backend/pkg/config"
	"github.com/angelmondragon/giftlist-backend/pkg/logger"
	"github.com/angelmondragon/giftlist-backend/pkg/metrics"
	"github.com/angelmondragon/giftlist-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Revoke(context.Context, string) error
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	sessionManager sessionManager,
	memberService members.Service,
	productService products.Service,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(cfg.CORS),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
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
	rateLimit := func(policy middleware.AuthRateLimitPolicy) func(http.Handler) http.Handler {
		if redisClient == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		return middleware.AuthRateLimit(policy, redisClient, httpMetrics, logg)
	}

	readyDeps := map[string]controllers.Pinger{}
	if dbP != nil {
		readyDeps["db"] = dbP
	}
	if redisClient != nil {
		readyDeps["redis"] = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, readyDeps, logg))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	requireAuth := middleware.Auth(cfg.JWT, sessionManager, logg)

	r.Route("/api/v1/members", func(r chi.Router) {
		r.With(rateLimit(registerPolicy)).Post("/register", controllers.MemberRegister(memberService, logg))
		r.With(rateLimit(loginPolicy)).Post("/login", controllers.MemberLogin(memberService, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/logout", controllers.MemberLogout(sessionManager, logg))
			r.Delete("/me", controllers.MemberWithdraw(memberService, sessionManager, logg))
		})
	})

	r.Route("/api/v1/wishlist", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", controllers.WishlistList(memberService, logg))
		r.Post("/", controllers.WishlistAdd(memberService, logg))
		r.Get("/{productId}", controllers.WishlistStatus(memberService, logg))
		r.Delete("/{productId}", controllers.WishlistRemove(memberService, logg))
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ProductList(productService, logg))
		r.Get("/{productId}", controllers.ProductDetail(productService, logg))
		r.With(requireAuth).Post("/", controllers.ProductCreate(productService, logg))
	})

	return r
}
