package main

import (
	"quickgig/config"
	"quickgig/di"
	"quickgig/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
