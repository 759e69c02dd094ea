package eq

import "sync/atomic"

// SettingsSource yields the snapshot for the next block. Load is called on
// the audio path and must not block or allocate.
type SettingsSource interface {
	Load() Settings
}

// SettingsCell publishes snapshots from a control goroutine to the audio
// goroutine. Store swaps in a freshly allocated immutable copy; Load reads
// the latest one without locking. The zero value holds DefaultSettings.
type SettingsCell struct {
	p atomic.Pointer[Settings]
}

// NewSettingsCell returns a cell holding s.
func NewSettingsCell(s Settings) *SettingsCell {
	c := &SettingsCell{}
	c.Store(s)
	return c
}

// Store publishes s. Safe to call concurrently with Load.
func (c *SettingsCell) Store(s Settings) {
	c.p.Store(&s)
}

// Load returns the most recently stored snapshot.
func (c *SettingsCell) Load() Settings {
	if s := c.p.Load(); s != nil {
		return *s
	}
	return DefaultSettings()
}

// Stored reports whether Store has been called.
func (c *SettingsCell) Stored() bool {
	return c.p.Load() != nil
}
