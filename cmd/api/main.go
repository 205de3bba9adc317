package main

import (
	"os"

	"github.com/louenes/lectura/internal/api"
	"github.com/louenes/lectura/pkg/utils"
)

func main() {
	// ENV_FILE overrides the env file location for container setups
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}

	api.Start(utils.NewConfigFromEnv(envFile))
}
