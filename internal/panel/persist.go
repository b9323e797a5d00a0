package panel

import (
	"log"

	"github.com/sweeney/flight-panel/internal/store"
	"github.com/sweeney/flight-panel/internal/telemetry"
)

// Flight state saved across a device switch.
const (
	stateNamespace = "g5state"
	keySwitching   = "switching"
	keyVersion     = "version"
	keySnapshot    = "snapshot"
)

// saveState records the raw flight state and marks a switch in progress.
func (p *Panel) saveState() {
	prefs := store.NewPrefs(p.kv, stateNamespace)
	if err := prefs.Put(keySnapshot, p.state.Snapshot()); err != nil {
		log.Printf("panel: save state: %v", err)
		return
	}
	if err := prefs.Put(keyVersion, telemetry.SnapshotVersion); err != nil {
		log.Printf("panel: save state: %v", err)
		return
	}
	if err := prefs.Put(keySwitching, true); err != nil {
		log.Printf("panel: save state: %v", err)
	}
}

// restoreState loads the flight state saved by saveState, once. It reports
// whether anything was restored.
func (p *Panel) restoreState() bool {
	prefs := store.NewPrefs(p.kv, stateNamespace)
	if !prefs.Bool(keySwitching, false) {
		return false
	}
	// Clear the flag first so a bad record cannot be restored twice.
	if err := prefs.Put(keySwitching, false); err != nil {
		log.Printf("panel: restore state: %v", err)
	}
	if prefs.Int(keyVersion, 0) != telemetry.SnapshotVersion {
		return false
	}

	var snap telemetry.Snapshot
	found, err := p.kv.Get(stateNamespace, keySnapshot, &snap)
	if err != nil {
		log.Printf("panel: restore state: %v", err)
		return false
	}
	if !found {
		return false
	}
	p.state.Restore(snap)
	log.Printf("panel: restored flight state on %s", p.settings.Device)
	return true
}
