package app

import "sync"

// ReloadState records source changes reported by the file watcher until
// the UI thread picks them up
type ReloadState struct {
	mu          sync.Mutex
	needsReload bool
	changedFile string
}

// Request marks the source as changed. Called from the watcher goroutine.
func (r *ReloadState) Request(file string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.needsReload = true
	r.changedFile = file
}

// Take returns the pending change and clears it
func (r *ReloadState) Take() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.needsReload {
		return "", false
	}
	file := r.changedFile
	r.needsReload = false
	r.changedFile = ""
	return file, true
}
