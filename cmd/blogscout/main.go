package main

import (
	"blogscout/cmd/cmd"
	"blogscout/internal/logger"
)

func main() {
	logger.Init()
	cmd.Execute()
}
