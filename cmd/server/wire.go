// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"tigerbites_backend/internal/app"
	"tigerbites_backend/internal/auth"
	"tigerbites_backend/internal/cas"
	"tigerbites_backend/internal/config"
	"tigerbites_backend/internal/group"
	"tigerbites_backend/internal/jobs"
	"tigerbites_backend/internal/platform/database"
	"tigerbites_backend/internal/platform/logger"
	"tigerbites_backend/internal/restaurant"
	"tigerbites_backend/internal/review"
	"tigerbites_backend/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,
		provideCleanup,

		// Identity
		cas.NewClient,
		user.NewGORMRepository,
		user.NewService,
		user.NewHandler,
		auth.NewGORMRepository,
		auth.NewService,
		auth.NewHandler,

		// Catalog and content
		restaurant.NewGORMRepository,
		restaurant.NewService,
		restaurant.NewHandler,
		review.NewGORMRepository,
		review.NewService,
		review.NewHandler,

		// Groups
		group.NewGORMRepository,
		group.NewService,
		group.NewHandler,

		// Jobs
		jobs.NewSessionCleanupJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
