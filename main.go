package main

import (
	"os"

	"calendar-insights/core/logger"
	"calendar-insights/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", "error", err)
		os.Exit(1)
	}
}
