package main

import (
	"github.com/jansuvidha/noticeboard/analytics"
	"github.com/jansuvidha/noticeboard/config"
	"github.com/jansuvidha/noticeboard/models"
	"github.com/jansuvidha/noticeboard/routes"
	"github.com/jansuvidha/noticeboard/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Listing{},
		&models.Service{},
		&models.DailyBucket{},
		&models.BucketInteraction{},
	)

	buckets := analytics.NewGormBucketStore(db)
	listings := analytics.NewGormListingDirectory(db)
	services := analytics.NewGormServiceDirectory(db)

	tracker := analytics.NewTracker(buckets, listings, utils.Sugar)
	reporter := analytics.NewReporter(buckets, listings, services, utils.Sugar)
	sweeper := analytics.NewSweeper(listings, utils.Sugar)

	// Daily expiry sweep at local midnight (best-effort, logs failures).
	sweeper.Start()

	r := routes.SetupRouter(db, tracker, reporter, sweeper)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
