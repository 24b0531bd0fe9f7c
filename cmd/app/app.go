package app

import (
	"plaintext/internal/config"
	"plaintext/internal/crypto"
	"plaintext/internal/database"
	"plaintext/internal/logger"
	"plaintext/internal/repository"
	"plaintext/internal/service"
	"plaintext/internal/token"
)

func App(cfg *config.Config) (*database.DB, *service.Service) {
	// a weak or missing secret must stop startup
	tokens, err := token.NewService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		logger.Fatalf("invalid token configuration: %v", err)
	}

	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, crypto.NewBcryptHasher(0), tokens)

	return db, services
}
