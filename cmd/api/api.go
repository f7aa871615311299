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

	"basari/docs" //this is required to generate swagger docs
	"basari/internal/auth"
	"basari/internal/cache"
	"basari/internal/community"
	"basari/internal/domain/storage"
	"basari/internal/ratelimiter"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config        config
	store         *storage.Container
	community     *community.Service
	cache         *cache.VenueCache
	logger        *zap.SugaredLogger
	cld           *cloudinary.Cloudinary
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Limiter
}

type config struct {
	addr        string
	db          dbConfig
	env         string
	apiURL      string
	mail        mailConfig
	redis       redisConfig
	auth        authConfig
	expo        expoConfig
	raffle      raffleConfig
	rateLimiter ratelimiter.Config
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	secret string
	exp    time.Duration
	iss    string
}

type basicConfig struct {
	user string
	pass string
}

type mailConfig struct {
	fromEmail string
	smtp      smtpConfig
}

type smtpConfig struct {
	host     string
	port     int
	username string
	password string
}

type redisConfig struct {
	addr     string
	password string
	ttl      time.Duration
}

type expoConfig struct {
	accessToken string
}

type raffleConfig struct {
	codeSalt string
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

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	if app.config.rateLimiter.Enabled {
		r.Use(app.RateLimiterMiddleware)
	}

	//Set a timeout value on the request context (ctx), that will signal through ctx.Done() that the request has timed out and further processing should be stopped
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		r.Route("/venues", func(r chi.Router) {
			r.Get("/", app.listVenuesHandler)
			r.Get("/nearby", app.nearbyVenuesHandler)
			r.Get("/bounds", app.venuesInBoundsHandler)

			r.Route("/{venueID}", func(r chi.Router) {
				r.Get("/", app.getVenueHandler)
				r.Get("/reviews", app.getVenueReviewsHandler)
				r.With(app.AuthTokenMiddleware).Post("/reviews", app.createVenueReviewHandler)
			})
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Post("/images", app.uploadReviewImagesHandler)

			r.Route("/{reviewID}", func(r chi.Router) {
				r.Patch("/", app.editReviewHandler)
				r.Delete("/", app.deleteReviewHandler)
				r.Put("/helpful", app.markHelpfulHandler)
				r.Delete("/helpful", app.unmarkHelpfulHandler)
			})
		})

		r.Get("/leaderboard", app.leaderboardHandler)
		r.Get("/raffles/active", app.activeRaffleHandler)

		r.Route("/users", func(r chi.Router) {
			r.Get("/{userID}/standing", app.userStandingHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.AuthTokenMiddleware)
				r.Get("/me/tickets", app.myTicketsHandler)
				r.Post("/push-tokens", app.savePushTokenHandler)
				r.Delete("/push-tokens", app.removePushTokenHandler)
			})
		})

		r.With(app.AuthTokenMiddleware).Post("/applications", app.submitApplicationHandler)

		r.Route("/admin", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)

			r.Post("/raffles", app.createRaffleHandler)
			r.Post("/raffles/{raffleID}/activate", app.activateRaffleHandler)
			r.Post("/raffles/{raffleID}/draw", app.drawRaffleHandler)

			r.Get("/applications", app.listApplicationsHandler)
			r.Post("/applications/{applicationID}/approve", app.approveApplicationHandler)
			r.Post("/applications/{applicationID}/reject", app.rejectApplicationHandler)

			r.Put("/users/{userID}/role", app.assignRoleHandler)
			r.Put("/venues/{slug}", app.importVenueHandler)

			r.Post("/push-tokens/prune", app.pruneStaleTokensHandler)
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
