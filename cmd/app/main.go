package main

import (
	"stillhouse/config"
	"stillhouse/di"
	"stillhouse/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
