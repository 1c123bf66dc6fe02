package config

import (
	"os"

	"dgtx/pkg/types"
	"dgtx/pkg/utils"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const DefaultWsURL = "wss://ws.mapi.digitexfutures.com"

type Config struct {
	Client *ClientConfig `yaml:"client"`
}

// ClientConfig are the recognized client options. The API key never lives in
// yaml; it is read from the DGTX_API_KEY env var.
type ClientConfig struct {
	WsURL    string  `yaml:"wsUrl"`
	Symbol   string  `yaml:"symbol"`
	Depth    int     `yaml:"depth"`
	TickSize float64 `yaml:"tickSize"`
	RetryMS  int     `yaml:"retryMs"`
	APIKey   string  `yaml:"-"`
}

func LoadConfig(envName types.EnvName) (*Config, error) {
	yamlFiles := map[types.EnvName]string{
		types.EnvLocal: "dgtx.yaml",
		types.EnvDev:   "dgtx.dev.yaml",
		types.EnvProd:  "dgtx.prod.yaml",
	}
	fileName := yamlFiles[envName]
	data, err := os.ReadFile(fileName)
	if err != nil {
		log.Fatalf("fail to load config file '%s': %v", fileName, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		log.Fatalf("fail to decode config file '%v': %v", fileName, err)
	}
	if config.Client == nil {
		config.Client = &ClientConfig{}
	}
	config.Client.applyEnv()
	return &config, nil
}

// applyEnv fills credentials and lets env vars override yaml values.
func (c *ClientConfig) applyEnv() {
	c.APIKey = utils.LoadEnv("DGTX_API_KEY")
	c.Symbol = utils.LoadEnvWithDefault("DGTX_SYMBOL", c.Symbol)
	c.WsURL = utils.LoadEnvWithDefault("DGTX_WS_URL", c.WsURL)
	c.Depth = utils.LoadIntEnvWithDefault("DGTX_DEPTH", c.Depth)
	c.TickSize = utils.LoadFloatEnvWithDefault("DGTX_TICK_SIZE", c.TickSize)
	c.RetryMS = utils.LoadIntEnvWithDefault("DGTX_RETRY_MS", c.RetryMS)
	if c.WsURL == "" {
		c.WsURL = DefaultWsURL
	}
}
