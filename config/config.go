package config

import "time"

type Config struct {
	Web     Web
	Cors    Cors
	Session Session
	Shop    Shop
	Auth    Auth
	Catalog Catalog
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:8000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type Cors struct {
	Origin string
}

type Session struct {
	Lifetime   time.Duration `conf:"default:24h"`
	CookieName string        `conf:"default:prelobook_session"`
	Secure     bool          `conf:"default:false"`
}

type Shop struct {
	// ShippingFee is the flat shipping cost in rupiah added to every cart.
	ShippingFee int64         `conf:"default:15000"`
	SubmitDelay time.Duration `conf:"default:1s"`
	LoginURL    string        `conf:"default:/login"`
}

type Auth struct {
	Burst    int           `conf:"default:5"`
	Interval time.Duration `conf:"default:2s"`
	Expiry   time.Duration `conf:"default:10m"`
}

type Catalog struct {
	// Fixture overrides the embedded catalog with a YAML file.
	Fixture       string
	StrictBundles bool `conf:"default:false"`
}
