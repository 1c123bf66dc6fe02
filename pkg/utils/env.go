package utils

import (
	"os"

	"github.com/spf13/cast"

	log "github.com/sirupsen/logrus"
)

func LoadEnv(key string) string {
	value, valid := os.LookupEnv(key)

	if !valid {
		log.Fatalf("fail to load env '%v'", key)
	}
	if value == "" {
		log.Fatalf("env '%v' is empty", key)
		return ""
	}

	return value
}

func LoadEnvWithDefault(key string, def string) string {
	value, valid := os.LookupEnv(key)
	if !valid || value == "" {
		return def
	}
	return value
}

func LoadIntEnvWithDefault(key string, def int) int {
	value, valid := os.LookupEnv(key)
	if !valid || value == "" {
		return def
	}
	return cast.ToInt(value)
}

func LoadFloatEnvWithDefault(key string, def float64) float64 {
	value, valid := os.LookupEnv(key)
	if !valid || value == "" {
		return def
	}
	return cast.ToFloat64(value)
}
