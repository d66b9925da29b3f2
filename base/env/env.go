package env

import (
	"os"
)

// PodName example: k8ssta-ensgo-api-6868d88fbd-bz8zv
func PodName() string {
	return os.Getenv("PODNAME")
}

// ConfigPath overrides the default yaml config location
func ConfigPath() string {
	return os.Getenv("ENSGO_CONFIG")
}
