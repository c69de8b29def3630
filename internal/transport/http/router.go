package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-marketplace-gate/internal/application/account"
	"github.com/go-marketplace-gate/internal/application/identity"
	"github.com/go-marketplace-gate/internal/application/recovery"
	"github.com/go-marketplace-gate/internal/application/session"
	"github.com/go-marketplace-gate/internal/config"
	"github.com/go-marketplace-gate/internal/domain"
	"github.com/go-marketplace-gate/internal/transport/http/handler"
	appmiddleware "github.com/go-marketplace-gate/internal/transport/http/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	table := deps.RouteTable
	if table == nil {
		table = identity.DefaultRouteTable()
	}
	nav := deps.Generations
	if nav == nil {
		nav = identity.NewGenerations()
	}
	gate := identity.NewGate(
		identity.NewSignalReader(deps.Tokens, deps.SessionRepo),
		identity.NewRouteClassifier(table),
		nav,
	)

	// 5 requests/second, burst of 10, on endpoints that send codes or check passwords.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)
	if err := sensitiveRL.TrustProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}
	cookies := handler.CookieJar{Secure: cfg.SecureCookies}

	recoverySvc := recovery.NewService(recovery.ServiceDeps{
		CodeStore:  deps.CodeStore,
		SellerRepo: deps.SellerRepo,
		Dispatcher: deps.Dispatcher,
	})
	sessionSvc := session.NewService(session.ServiceDeps{
		GoogleVerifier: deps.Google,
		ShopperRepo:    deps.ShopperRepo,
		SessionRepo:    deps.SessionRepo,
		Expiry:         cfg.SessionExpiry,
	})
	accountSvc := account.NewService(account.ServiceDeps{
		SellerRepo:        deps.SellerRepo,
		Signer:            deps.Tokens,
		AdminEmail:        cfg.AdminEmail,
		AdminPasswordHash: cfg.AdminPasswordHash,
	})

	pages, err := handler.NewPageHandler(cfg.FrontendURL)
	if err != nil {
		return nil, err
	}

	healthH := handler.NewHealthHandler()
	pwH := handler.NewPasswordRecoveryHandler(recoverySvc)
	sessionH := handler.NewSessionHandler(sessionSvc, cookies)
	accountH := handler.NewAccountHandler(accountSvc, cookies)
	navH := handler.NewNavigationHandler(gate)
	codesH := handler.NewCodesHandler(deps.CodeStore)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		// Evaluate reads the identity signals itself.
		r.Get("/navigation", navH.Decide)

		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Identity(gate))

			// ── Public routes ────────────────────────────────────────────────
			r.Get("/health-check/{action}", healthH.Ping)
			r.With(sensitiveRL.Limit).Post("/password-recovery/{action}", pwH.Action)
			r.Get("/identity", navH.WhoAmI)

			r.With(sensitiveRL.Limit).Post("/sessions/google", sessionH.Google)
			r.Post("/sessions/refresh", sessionH.Refresh)
			r.Post("/sessions/logout", sessionH.Logout)

			r.With(sensitiveRL.Limit).Post("/sellers", accountH.RegisterSeller)
			r.With(sensitiveRL.Limit).Post("/sellers/login", accountH.SellerLogin)
			r.Post("/sellers/logout", accountH.SellerLogout)
			r.With(sensitiveRL.Limit).Post("/admin/login", accountH.AdminLogin)
			r.Post("/admin/logout", accountH.AdminLogout)

			// ── Admin-only routes ────────────────────────────────────────────
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.KindAdmin))

				r.Put("/admin/sellers/{id}/status", accountH.UpdateSellerStatus)
				r.Post("/admin/verification-codes/sweep", codesH.Sweep)
			})
		})
	})

	// Every other path is a page navigation and passes the edge gate first.
	r.With(appmiddleware.Gate(gate, cfg.SecureCookies)).Handle("/*", pages)

	return r, nil
}
