// Package confloader provides configuration loading for greetd.
//
// Loading is built on Koanf and merges sources in priority order
// Env > File > Default:
//
//   - loader.go: multi-source loading and unmarshalling
//   - watcher.go: fsnotify-based change detection for the config file
//
// The watcher only reports changes; the running snapshot is never
// replaced (a restart applies the new file).
package confloader
