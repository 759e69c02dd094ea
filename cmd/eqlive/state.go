package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-peq/dsp/eq/params"
)

func saveState(store *params.Store, path string) {
	data, err := stateJSON(store)
	if err != nil {
		log.Printf("Failed to encode state: %v", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Printf("Failed to save state: %v", err)
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Printf("Failed to save state: %v", err)
	}
}

// restoreState loads values written by saveState. Unknown keys are skipped;
// a missing file leaves the store untouched.
func restoreState(store *params.Store, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var state map[string]float64
	if err := json.Unmarshal(data, &state); err != nil {
		log.Printf("Failed to parse saved state: %v", err)
		return
	}
	for key, v := range state {
		if _, err := store.Set(key, v); err != nil {
			log.Printf("Skipping saved %s: %v", key, err)
		}
	}
	log.Printf("Restored %d parameters from %s", len(state), path)
}
