package main

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/cwbudde/algo-peq/dsp/eq/params"
)

// controller maps MQTT messages on <topic>/<key>/set to parameter changes
// and publishes the current values on <topic>/state.
type controller struct {
	client  mqtt.Client
	topic   string
	store   *params.Store
	changed chan string
}

func newController(store *params.Store, topic string) *controller {
	return &controller{
		topic:   topic,
		store:   store,
		changed: make(chan string, 16),
	}
}

// connect builds the client and blocks until the first connection attempt
// completes.
func (c *controller) connect(cfg config) error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("%s:%d", cfg.MQTTBroker, cfg.MQTTPort))
	opts.SetClientID(fmt.Sprintf("eqlive-%d", time.Now().Unix()))
	if cfg.MQTTUser != "" {
		opts.SetUsername(cfg.MQTTUser)
	}
	if cfg.MQTTPassword != "" {
		opts.SetPassword(cfg.MQTTPassword)
	}
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(30 * time.Second)
	opts.SetWill(c.topic+"/availability", "offline", 0, true)
	opts.OnConnect = c.onConnect
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Printf("MQTT connection lost: %v", err)
	}

	c.client = mqtt.NewClient(opts)
	if token := c.client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

func (c *controller) onConnect(client mqtt.Client) {
	log.Println("Connected to MQTT broker")
	client.Publish(c.topic+"/availability", 0, true, "online")

	filter := c.topic + "/+/set"
	if token := client.Subscribe(filter, 0, c.handleSet); token.Wait() && token.Error() != nil {
		log.Printf("Failed to subscribe to %s: %v", filter, token.Error())
	}
	c.publishState()
}

// paramKey extracts <key> from <topic>/<key>/set.
func (c *controller) paramKey(topic string) (string, bool) {
	rest, ok := strings.CutPrefix(topic, c.topic+"/")
	if !ok {
		return "", false
	}
	key, ok := strings.CutSuffix(rest, "/set")
	if !ok || key == "" || strings.Contains(key, "/") {
		return "", false
	}
	return key, true
}

func (c *controller) handleSet(_ mqtt.Client, msg mqtt.Message) {
	key, ok := c.paramKey(msg.Topic())
	if !ok {
		return
	}
	v, err := c.store.SetText(key, string(msg.Payload()))
	if err != nil {
		log.Printf("Ignoring %s: %v", msg.Topic(), err)
		return
	}
	if p, ok := params.Lookup(key); ok {
		log.Printf("%s = %s", p.ID, p.Format(v))
	}

	select {
	case c.changed <- key:
	default:
		log.Println("Change queue full")
	}
}

// stateJSON encodes every parameter by key with its plain value.
func stateJSON(store *params.Store) ([]byte, error) {
	state := make(map[string]float64, len(params.Layout()))
	for _, p := range params.Layout() {
		v, err := store.Get(p.Key)
		if err != nil {
			return nil, err
		}
		state[p.Key] = v
	}
	return json.Marshal(state)
}

func (c *controller) publishState() {
	if c.client == nil {
		return
	}
	data, err := stateJSON(c.store)
	if err != nil {
		log.Printf("Failed to encode state: %v", err)
		return
	}
	c.client.Publish(c.topic+"/state", 0, true, data)
}

// run publishes and saves the state after every accepted change until done
// is closed.
func (c *controller) run(done <-chan struct{}, stateFile string) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-c.changed:
			saveState(c.store, stateFile)
			c.publishState()
		case <-ticker.C:
			c.publishState()
		}
	}
}

func (c *controller) Close() {
	if c.client != nil && c.client.IsConnected() {
		c.client.Publish(c.topic+"/availability", 0, true, "offline")
		c.client.Disconnect(250)
	}
}
