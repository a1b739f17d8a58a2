package model

import "time"

// CleanEvent is the outcome of cleaning a single target file.
type CleanEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
	Removed   int       `json:"removed"`           // print lines dropped
	Missing   bool      `json:"missing,omitempty"` // path did not exist and was skipped
	DryRun    bool      `json:"dry_run,omitempty"` // file was classified but not rewritten
}

// ImageEvent is emitted for every placeholder portrait written to disk.
type ImageEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
	Name      string    `json:"name"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Bytes     int       `json:"bytes"`
}

// ColorSpec names a solid-colour placeholder and the file it is written to.
type ColorSpec struct {
	File string `json:"file" yaml:"file"`
	Name string `json:"name" yaml:"name"`
	R    uint8  `json:"r" yaml:"r"`
	G    uint8  `json:"g" yaml:"g"`
	B    uint8  `json:"b" yaml:"b"`
}
