package main

import (
	"github.com/DrZoddiak/ore-monitor/cmd"
	"github.com/DrZoddiak/ore-monitor/logger"

	_ "go.uber.org/automaxprocs"
)

func main() {
	logger.InitLogger() // Initialize the logger first
	defer logger.Sync() // Ensure logs are flushed on exit
	cmd.Execute()
}
