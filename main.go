package main

import (
	"log"
	"net/http"

	"statcalc/adapters/filesystem"
	"statcalc/app"
	"statcalc/internal"
	"statcalc/internal/config"
	"statcalc/internal/report"
	"statcalc/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.LogLevel))
	gin.SetMode(appConfig.Server.GinMode)

	style, err := report.ParseStyle(appConfig.Inference.ReportStyle)
	if err != nil {
		log.Fatalf("Invalid report style: %v", err)
	}
	calculator := app.NewCalculatorService(
		report.New(style),
		filesystem.NewReportWriter(""),
		appConfig.Batch.Workers,
	).WithLogger(logger)

	server := ui.NewServer(appConfig, calculator, logger)

	if appConfig.Profiling.Enabled {
		go func() {
			logger.Info("pprof listening on :%s", appConfig.Profiling.Port)
			if err := http.ListenAndServe(":"+appConfig.Profiling.Port, ui.NewDebugRouter()); err != nil {
				logger.Error("pprof server failed: %v", err)
			}
		}()
	}

	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
