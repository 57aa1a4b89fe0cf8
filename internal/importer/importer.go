// Package importer turns archives and working-tree checkouts into
// dated journal entries using the configured path patterns.
package importer

// Entry is one imported journal candidate keyed by its resolved date.
type Entry struct {
	Path    string `json:"path"`
	Date    string `json:"date"`
	Content string `json:"content"`
}

// SkipDetail records why a candidate file was left out. Skips never
// abort a batch.
type SkipDetail struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}
