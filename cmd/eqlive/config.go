package main

import (
	"log"
	"strconv"
	"strings"
)

type config struct {
	MQTTBroker   string
	MQTTPort     int
	MQTTUser     string
	MQTTPassword string
	MQTTTopic    string
	SampleRate   int
	BlockSize    int
	Level        float64 // noise amplitude before the EQ
	StateFile    string
}

// loadConfig reads the environment through getenv, normally os.Getenv.
func loadConfig(getenv func(string) string) config {
	env := envReader(getenv)

	broker := env.text("MQTT_BROKER", "localhost")
	if !strings.HasPrefix(broker, "tcp://") && !strings.HasPrefix(broker, "ssl://") {
		broker = "tcp://" + broker
	}

	cfg := config{
		MQTTBroker:   broker,
		MQTTPort:     env.integer("MQTT_PORT", 1883),
		MQTTUser:     env.text("MQTT_USER", ""),
		MQTTPassword: env.text("MQTT_PASSWORD", ""),
		MQTTTopic:    strings.TrimSuffix(env.text("MQTT_TOPIC", "peq"), "/"),
		SampleRate:   env.integer("SAMPLE_RATE", 48000),
		BlockSize:    env.integer("BLOCK_SIZE", 512),
		Level:        env.fraction("NOISE_LEVEL", 0.25),
		StateFile:    env.text("STATE_FILE", "/var/lib/eqlive/state.json"),
	}

	log.Printf("Config: MQTT=%s:%d, Topic=%s, %d Hz, block %d",
		cfg.MQTTBroker, cfg.MQTTPort, cfg.MQTTTopic, cfg.SampleRate, cfg.BlockSize)
	return cfg
}

type envReader func(string) string

func (e envReader) text(key, defaultValue string) string {
	if v := e(key); v != "" {
		return v
	}
	return defaultValue
}

func (e envReader) integer(key string, defaultValue int) int {
	if v := e(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
		log.Printf("Ignoring %s=%q", key, v)
	}
	return defaultValue
}

func (e envReader) fraction(key string, defaultValue float64) float64 {
	if v := e(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			return f
		}
		log.Printf("Ignoring %s=%q", key, v)
	}
	return defaultValue
}
