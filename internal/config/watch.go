package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// exclusionFile is the on-disk shape of the watched exclusion list.
type exclusionFile struct {
	ExcludedApps []string `json:"excluded_apps"`
}

// LoadExclusionFile reads the exclusion list from path. A missing or
// malformed file yields nil with a logged warning; the caller keeps its
// current list.
func LoadExclusionFile(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("exclusion file %s unreadable: %v", path, err)
		return nil
	}

	var f exclusionFile
	if err := json.Unmarshal(data, &f); err != nil {
		log.Printf("exclusion file %s malformed: %v", path, err)
		return nil
	}
	return f.ExcludedApps
}

// WatchExclusionFile watches path and invokes onChange with the freshly
// loaded list whenever the file is written or replaced. The watch runs
// until stop is closed. Watching a file that does not exist yet is fine;
// the parent directory is watched so editor rename-on-save is caught.
func WatchExclusionFile(path string, onChange func([]string), stop <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-stop:
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if apps := LoadExclusionFile(path); apps != nil {
					log.Printf("exclusion list reloaded: %d entries", len(apps))
					onChange(apps)
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("exclusion file watch error: %v", err)
			}
		}
	}()

	return nil
}
