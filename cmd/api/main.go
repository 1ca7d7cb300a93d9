package main

import (
	"context"
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"github.com/Binarybee001/Shabana-Palace/internal/adapters/gateway"
	server "github.com/Binarybee001/Shabana-Palace/internal/adapters/http_server"
	"github.com/Binarybee001/Shabana-Palace/internal/adapters/observability"
	redisad "github.com/Binarybee001/Shabana-Palace/internal/adapters/redis"
	"github.com/Binarybee001/Shabana-Palace/internal/app"
	"github.com/Binarybee001/Shabana-Palace/internal/auth"
	"github.com/Binarybee001/Shabana-Palace/internal/domain"
	"github.com/Binarybee001/Shabana-Palace/internal/outbound"
	"github.com/Binarybee001/Shabana-Palace/internal/shared"
	mysqlgw "github.com/Binarybee001/Shabana-Palace/internal/storage/mysql"
)

// disabledAuth backs the self-hosted mode when no hosted auth service is
// configured: every sign-in is refused, so the admin surface stays closed.
type disabledAuth struct{}

func (disabledAuth) SignIn(context.Context, string, string) (domain.Session, error) {
	return domain.Session{}, domain.ErrAuth
}
func (disabledAuth) SignOut(context.Context, string) error { return nil }
func (disabledAuth) Session(context.Context, string) (*domain.Session, error) {
	return nil, nil
}

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// backend: hosted table service when configured, local MySQL otherwise
	var (
		gw   domain.Gateway
		athn domain.Authenticator = disabledAuth{}
	)
	if cfg.GatewayURL != "" {
		client, err := gateway.New(cfg.GatewayURL, cfg.GatewayKey, cfg.GatewayRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize gateway client")
		}
		gw, athn = client, client
		log.Info().Str("base", cfg.GatewayURL).Msg("using hosted gateway")
	} else {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		sh := mysqlgw.New(db)
		if err := sh.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("schema migration failed")
		}
		gw = sh
		log.Info().Msg("using self-hosted MySQL gateway; admin sign-in disabled")
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	}

	guard := auth.NewGuard(gw, cfg.RoleTimeout)
	defer guard.Close()

	srv, err := server.New(cfg.AllowedOrigin)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Rooms:    app.NewRoomRepository(gw, cache),
		Reviews:  app.NewReviewRepository(gw, cache),
		Messages: app.NewMessageRepository(gw, cache),
		Auth:     athn,
		Guard:    guard,
		Profile: outbound.Profile{
			Name:           cfg.HotelName,
			Email:          cfg.HotelEmail,
			Phone:          cfg.HotelPhone,
			WhatsAppNumber: cfg.WhatsAppNumber,
			Location:       cfg.HotelLocation,
		},
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
