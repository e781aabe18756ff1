package app

import (
	"github.com/docukit/docgraph-backend/internal/logger"
	"github.com/docukit/docgraph-backend/internal/utils"
)

type Config struct {
	Port             string
	UpdatesChannel   string
	DeletionChannel  string
	ConsumeDeletions bool
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Port:             utils.GetEnv("PORT", "8080", log),
		UpdatesChannel:   utils.GetEnv("UPDATES_CHANNEL", "updates", log),
		DeletionChannel:  utils.GetEnv("DELETION_CHANNEL", "deletion", log),
		ConsumeDeletions: utils.GetEnvAsBool("CONSUME_DELETIONS", true, log),
	}
}
