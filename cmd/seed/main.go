package main

import (
	"context"
	"errors"
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go-user-admin/internal/core/config"
	"go-user-admin/internal/core/database"
	"go-user-admin/internal/core/logger"
	"go-user-admin/internal/domain"
	"go-user-admin/internal/repo"
	"go-user-admin/internal/service"
)

type seedUser struct {
	name, email, role, phone, department string
	inactive                             bool
}

var seedUsers = []seedUser{
	{name: "System Administrator", email: "admin@example.com", role: "ADMIN", department: "IT"},
	{name: "Alice Johnson", email: "alice@example.com", role: "USER", phone: "555-0101", department: "Engineering"},
	{name: "Bob Smith", email: "bob@example.com", role: "USER", phone: "555-0102", department: "Engineering"},
	{name: "Charlie Brown", email: "charlie@example.com", role: "USER", department: "Sales"},
	{name: "Diana Prince", email: "diana@example.com", role: "ADMIN", phone: "555-0104", department: "HR"},
	{name: "Evan Wright", email: "evan@example.com", role: "USER", department: "Sales", inactive: true},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	if cfg.DB.Driver == "memory" {
		log.Fatal("seeding the in-memory store is pointless; configure a database driver")
	}

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		LogWriter:          logger.ToWriter(log, zapcore.DebugLevel),
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		log.Fatal("automigrate failed", zap.Error(err))
	}

	svc := service.NewUserService(repo.NewUserRepo(db), log, service.Options{})

	ctx := context.Background()
	created, skipped := 0, 0
	for _, s := range seedUsers {
		u, err := svc.CreateUser(ctx, &domain.User{
			Name:       s.name,
			Email:      s.email,
			Role:       s.role,
			Phone:      s.phone,
			Department: s.department,
		})
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			skipped++
			continue
		case err != nil:
			log.Fatal("seed user", zap.String("email", s.email), zap.Error(err))
		}
		if s.inactive {
			if _, err := svc.DeactivateUser(ctx, u.ID); err != nil {
				log.Fatal("deactivate seed user", zap.String("email", s.email), zap.Error(err))
			}
		}
		created++
	}
	log.Info("seed finished", zap.Int("created", created), zap.Int("skipped", skipped))
}
