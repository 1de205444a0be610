// Package config loads and watches the collector configuration file.
//
// Load(path) reads the YAML file, applies defaults (port 8080, 30m session
// TTL, 5s broadcast interval, 64 KiB beacon limit), then validates required
// fields and enums.
//
// Watch(ctx, path, onChange) uses fsnotify to detect file changes and calls
// onChange with the newly parsed Config. It handles the rename→create
// pattern used by atomic-save editors by re-adding the watch after each
// reload.
package config
