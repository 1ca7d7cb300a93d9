package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/Binarybee001/Shabana-Palace/internal/adapters/gateway"
	"github.com/Binarybee001/Shabana-Palace/internal/adapters/observability"
	"github.com/Binarybee001/Shabana-Palace/internal/domain"
	"github.com/Binarybee001/Shabana-Palace/internal/shared"
	mysqlgw "github.com/Binarybee001/Shabana-Palace/internal/storage/mysql"
)

// Demo catalogue for a fresh install, matching what the public site shows
// before the back office has been used.
var demoRooms = []domain.Room{
	{
		Name:          "Standard Room",
		Number:        "101",
		PricePerNight: 3500,
		Beds:          1,
		Description:   "Cozy room with a queen bed, work desk, and city view. Perfect for solo travellers and short stays.",
		Amenities:     []string{"Free Wi-Fi", "Air conditioning", "Flat-screen TV", "Room service"},
		Photos: []string{
			"https://images.unsplash.com/photo-1611892440504-42a792e24d32?w=1200",
			"https://images.unsplash.com/photo-1631049307264-da0ec9d70304?w=1200",
		},
	},
	{
		Name:          "Deluxe Room",
		Number:        "201",
		PricePerNight: 5000,
		Beds:          2,
		Description:   "Spacious room with two double beds, a sitting area, and a balcony overlooking the gardens.",
		Amenities:     []string{"Free Wi-Fi", "Air conditioning", "Mini bar", "Balcony", "Room service"},
		Photos: []string{
			"https://images.unsplash.com/photo-1590490360182-c33d57733427?w=1200",
			"https://images.unsplash.com/photo-1582719478250-c89cae4dc85b?w=1200",
		},
	},
	{
		Name:          "Executive Suite",
		Number:        "301",
		PricePerNight: 8000,
		Beds:          2,
		Description:   "Top-floor suite with a separate lounge, king bed, soaking tub, and panoramic views of the city.",
		Amenities:     []string{"Free Wi-Fi", "Air conditioning", "Mini bar", "Jacuzzi", "Lounge area", "Room service"},
		Photos: []string{
			"https://images.unsplash.com/photo-1578683010236-d716f9a3f461?w=1200",
			"https://images.unsplash.com/photo-1591088398332-8a7791972843?w=1200",
		},
	},
}

var demoMessages = []domain.Message{
	{
		Name:  "Grace Wanjiku",
		Email: "grace.wanjiku@example.com",
		Phone: "0712345678",
		Body:  "Hello, I would like to know if you have rooms available for the first weekend of next month.",
	},
	{
		Name:  "Kevin Otieno",
		Email: "kevin.otieno@example.com",
		Phone: "0723456789",
		Body:  "Do you offer airport pickup for guests arriving late in the evening?",
	},
}

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Int("workers", cfg.SeedWorkers).
		Int("rooms", len(demoRooms)).
		Int("messages", len(demoMessages)).
		Msg("seeder starting")

	var gw domain.Gateway
	if cfg.GatewayURL != "" {
		client, err := gateway.New(cfg.GatewayURL, cfg.GatewayKey, cfg.GatewayRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize gateway client")
		}
		gw = client
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
	}

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	seed := func(kind string, insert func(context.Context) (string, error)) {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}
		wg.Add(1)
		go func() {
			defer sem.Release(1)
			defer wg.Done()
			id, err := insert(ctx)
			if err != nil {
				log.Error().Err(err).Str("kind", kind).Msg("seed insert failed")
				return
			}
			log.Info().Str("kind", kind).Str("id", id).Msg("seeded")
		}()
	}

	for _, room := range demoRooms {
		room := room
		seed("room", func(ctx context.Context) (string, error) {
			created, err := gw.InsertRoom(ctx, room)
			return created.ID, err
		})
	}
	for _, msg := range demoMessages {
		msg := msg
		seed("message", func(ctx context.Context) (string, error) {
			created, err := gw.InsertMessage(ctx, msg)
			return created.ID, err
		})
	}

	wg.Wait()
	log.Info().Msg("seeding complete")
}
