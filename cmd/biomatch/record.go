package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kalambet/biomatch/internal/biorhythm"
	"github.com/kalambet/biomatch/internal/profile"
)

// profileRecord is what the CLI prints for every generated profile.
type profileRecord struct {
	CycleID     string                       `json:"cycle_id,omitempty" yaml:"cycle_id,omitempty"`
	GeneratedAt time.Time                    `json:"generated_at" yaml:"generated_at"`
	Hour        int                          `json:"hour" yaml:"hour"`
	Metrics     biorhythm.Snapshot           `json:"metrics" yaml:"metrics"`
	Profile     profile.CommunicationProfile `json:"profile" yaml:"profile"`
}

func writeRecord(w io.Writer, format string, rec profileRecord) error {
	switch strings.ToLower(format) {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	case "yaml":
		if _, err := io.WriteString(w, "---\n"); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q (want json or yaml)", format)
	}
}
