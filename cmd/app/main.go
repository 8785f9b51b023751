package main

import (
	"yadoya/config"
	"yadoya/di"
	"yadoya/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
