package main

import (
	"github.com/lite-lake/ipsync/internal/infrastructure/logger"
	"github.com/lite-lake/ipsync/internal/interfaces/cli"
)

func main() {
	logger.Init(logger.ConfigFromEnv())

	cli.Execute()
}
