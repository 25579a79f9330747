package main

import (
	"scheduling-gateway/core/logger"
	"scheduling-gateway/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", "error", err)
	}
}
