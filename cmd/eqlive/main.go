// Command eqlive plays pink noise through the equalizer and takes its
// parameters from MQTT.
//
// Every parameter listens on <MQTT_TOPIC>/<key>/set, where key is one of
// lowcut_freq, highcut_freq, peak_freq, peak_gain, peak_quality,
// lowcut_slope and highcut_slope. Payloads are plain values with optional
// units ("2.5 kHz", "-6 dB") or slope names ("24 db/Oct"). The current
// values are published as JSON on <MQTT_TOPIC>/state and saved to
// STATE_FILE.
//
// Environment: MQTT_BROKER, MQTT_PORT, MQTT_USER, MQTT_PASSWORD,
// MQTT_TOPIC, SAMPLE_RATE, BLOCK_SIZE, NOISE_LEVEL, STATE_FILE.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cwbudde/algo-peq/dsp/core"
	"github.com/cwbudde/algo-peq/dsp/eq"
	"github.com/cwbudde/algo-peq/dsp/eq/params"
)

func main() {
	cfg := loadConfig(os.Getenv)

	store := params.NewStore()
	restoreState(store, cfg.StateFile)

	proc, err := eq.New(core.WithSampleRate(float64(cfg.SampleRate)), core.WithBlockSize(cfg.BlockSize))
	if err != nil {
		log.Fatalf("Failed to configure EQ: %v", err)
	}

	src := newEQReader(proc, store, cfg.Level, time.Now().UnixNano())
	p, err := newPlayer(cfg.SampleRate, src)
	if err != nil {
		log.Fatalf("Failed to create audio player: %v", err)
	}
	defer func() { _ = p.Close() }()

	ctl := newController(store, cfg.MQTTTopic)
	if err := ctl.connect(cfg); err != nil {
		log.Fatalf("Failed to connect to MQTT: %v", err)
	}
	defer ctl.Close()

	done := make(chan struct{})
	go ctl.run(done, cfg.StateFile)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	close(done)
	saveState(store, cfg.StateFile)
	if n := src.Rejected(); n > 0 {
		log.Printf("%d parameter snapshots were rejected", n)
	}
}
