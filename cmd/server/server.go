package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexedwards/scs/v2"
	"github.com/ardanlabs/conf/v3"
	"github.com/irsalhamdi/prelobook/api"
	"github.com/irsalhamdi/prelobook/config"
	"github.com/irsalhamdi/prelobook/core/catalog"
	"github.com/irsalhamdi/prelobook/core/chat"
	"github.com/irsalhamdi/prelobook/core/exchange"
	"github.com/irsalhamdi/prelobook/core/favorite"
	"github.com/irsalhamdi/prelobook/core/listing"
	"github.com/irsalhamdi/prelobook/core/order"
	"github.com/irsalhamdi/prelobook/core/user"
	"github.com/irsalhamdi/prelobook/rate"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if err := Run(log); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func Run(logger *logrus.Logger) error {
	logger.Infof("starting server")
	defer logger.Info("shutdown complete")

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	const prefix = "PRELOBOOK"
	var cfg config.Config
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	lw := logger.Writer()
	defer lw.Close()
	errLog := log.New(lw, "", 0)

	books, err := loadCatalog(cfg.Catalog, logger)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.Session.Lifetime
	sessionManager.Cookie.Name = cfg.Session.CookieName
	sessionManager.Cookie.Secure = cfg.Session.Secure

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := rate.NewLimiter(ctx, cfg.Auth.Burst, cfg.Auth.Expiry, rate.Every(cfg.Auth.Interval))

	mux := api.APIMux(api.APIConfig{
		CorsOrigin:  cfg.Cors.Origin,
		Log:         logger,
		Session:     sessionManager,
		Catalog:     books,
		Users:       user.NewDirectory(),
		Limiter:     limiter,
		Orders:      order.NewHistory(),
		Inbox:       chat.NewInbox(),
		Exchanges:   exchange.NewBoard(),
		Listings:    listing.NewShelf(),
		Favorites:   favorite.NewStore(),
		ShippingFee: cfg.Shop.ShippingFee,
		SubmitDelay: cfg.Shop.SubmitDelay,
		LoginURL:    cfg.Shop.LoginURL,
	})

	api := http.Server{
		Handler:      mux,
		Addr:         cfg.Web.Address,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     errLog,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Infof("starting api router at %s", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Infof("shutting down: signal %s", sig)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}
	return nil
}

func loadCatalog(cfg config.Catalog, logger logrus.FieldLogger) (*catalog.Store, error) {
	opts := catalog.Options{
		StrictBundles: cfg.StrictBundles,
		Warn: func(err error) {
			logger.WithField("check", "bundle").Warn(err)
		},
	}

	if cfg.Fixture == "" {
		return catalog.Default(opts)
	}

	f, err := os.Open(cfg.Fixture)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := catalog.Load(f, opts)
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", cfg.Fixture, err)
	}

	logger.WithField("fixture", cfg.Fixture).Info("catalog loaded")
	return s, nil
}
