// cmd/seeder/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/shopspring/decimal"

	"github.com/japolo/catalog-api/internal/adapters/db"
	"github.com/japolo/catalog-api/internal/core/domain"
	"github.com/japolo/catalog-api/internal/pkg/config"
	"github.com/japolo/catalog-api/internal/pkg/logger"
)

var sampleNames = []string{
	"Ana Torres", "Carlos López", "María García", "Juan Pérez",
	"Lucía Fernández", "Diego Ramírez", "Sofía Martín", "Pablo Ruiz",
}

var sampleProducts = []struct {
	name        string
	description string
	price       float64
}{
	{"Teclado", "Teclado mecánico RGB", 89.99},
	{"Mouse", "Mouse inalámbrico ergonómico", 34.50},
	{"Monitor", "Monitor 27 pulgadas QHD", 299.00},
	{"Auriculares", "Auriculares con cancelación de ruido", 129.99},
	{"Webcam", "Webcam 1080p con micrófono", 59.90},
	{"Dock USB-C", "Estación de acoplamiento 8 en 1", 74.25},
}

func main() {
	users := flag.Int("users", 10, "number of users to seed")
	products := flag.Int("products", 20, "number of products to seed")
	flag.Parse()

	slogger := logger.SetupLogger("info", "text")

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	database, err := db.NewDatabase(ctx, &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     cfg.Database.MaxConnections,
		MinConnections:     cfg.Database.MinConnections,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		AcquireTimeout:     cfg.Database.AcquireTimeout,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}, slogger)
	if err != nil {
		slogger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	executor := db.NewExecutor(database, slogger)
	userRepo := db.NewUserRepository(executor, slogger)
	productRepo := db.NewProductRepository(executor, slogger)

	slogger.Info("seeding database",
		slog.Int("users", *users),
		slog.Int("products", *products))

	for i := 0; i < *users; i++ {
		name := sampleNames[i%len(sampleNames)]
		email := fmt.Sprintf("user%d@example.com", i+1)

		user, err := userRepo.Create(ctx, name, email)
		if err != nil {
			slogger.Error("failed to seed user",
				slog.String("email", email),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		slogger.Info("seeded user", slog.Int64("id", user.ID), slog.String("email", user.Email))
	}

	for i := 0; i < *products; i++ {
		tmpl := sampleProducts[i%len(sampleProducts)]

		product, err := productRepo.Create(ctx, domain.Product{
			Name:        fmt.Sprintf("%s #%d", tmpl.name, i+1),
			Description: tmpl.description,
			Price:       decimal.NewFromFloat(tmpl.price),
			Stock:       rand.Intn(50) + 1,
		})
		if err != nil {
			slogger.Error("failed to seed product",
				slog.String("name", tmpl.name),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		slogger.Info("seeded product", slog.Int64("id", product.ID), slog.String("name", product.Name))
	}

	slogger.Info("seeding complete")
}
