package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"playmart/docs" //this is required to generate swagger docs
	"playmart/internal/auth"
	"playmart/internal/domain/catalog"
	"playmart/internal/mailer"
	"playmart/internal/ratelimiter"
	"playmart/internal/store"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config        config
	store         store.Storage
	logger        *zap.SugaredLogger
	cld           *cloudinary.Cloudinary
	mailer        mailer.Client
	authenticator auth.Authenticator
	rateLimiter   *ratelimiter.FixedWindowRateLimiter
	projector     *catalog.Projector
	curator       *catalog.Curator
}

type config struct {
	addr        string
	db          dbConfig
	env         string
	apiURL      string
	frontendURL string
	mail        mailConfig
	auth        authConfig
	rateLimiter ratelimiter.Config
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	secret          string
	refreshSecret   string
	accessTokenExp  time.Duration
	refreshTokenExp time.Duration
	iss             string
}

type basicConfig struct {
	user string
	pass string
}

type mailConfig struct {
	host      string
	port      int
	username  string
	password  string
	fromEmail string
	shopInbox string
}

type dbConfig struct {
	addr        string
	maxConns    int32
	maxIdleTime string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Request context times out after 60s; further processing should stop.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		// Public storefront reads
		r.Get("/categories", app.listCategoriesHandler)
		r.Get("/main-menu", app.mainMenuHandler)
		r.Get("/products", app.listProductsHandler)
		r.Post("/contact", app.contactHandler)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", app.loginHandler)
			r.Post("/refresh", app.refreshTokenHandler)
		})

		// Back office
		r.Route("/admin", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", app.createCategoryHandler)
				r.Put("/reorder", app.reorderCategoriesHandler)
				r.Route("/{categoryID}", func(r chi.Router) {
					r.Put("/", app.updateCategoryHandler)
					r.Delete("/", app.deleteCategoryHandler)
					r.Get("/popular-products", app.getPopularProductsHandler)
					r.Post("/popular-products", app.setPopularProductsHandler)
				})
			})

			r.Put("/main-menu-items/{slug}", app.updateMenuItemHandler)

			r.Route("/products", func(r chi.Router) {
				r.Post("/", app.createProductHandler)
				r.Route("/{productID}", func(r chi.Router) {
					r.Put("/", app.updateProductHandler)
					r.Delete("/", app.deleteProductHandler)
					r.Put("/categories", app.assignProductCategoriesHandler)
				})
			})

			r.Post("/images", app.uploadImageHandler)
			r.Delete("/images", app.deleteImageHandler)
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	// Implementing graceful shutdown
	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
