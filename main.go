package main

import (
	"marketplace-api/core/logger"
	"marketplace-api/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
