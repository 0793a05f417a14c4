// Package output renders command results for the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects how results are rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json or yaml, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// Status describes the local sign-in state.
type Status struct {
	ClientIdentifier string `json:"client_identifier" yaml:"client_identifier"`
	SignedIn         bool   `json:"signed_in" yaml:"signed_in"`
	TokenValid       *bool  `json:"token_valid,omitempty" yaml:"token_valid,omitempty"`
	ProbeError       string `json:"probe_error,omitempty" yaml:"probe_error,omitempty"`
	PendingPinID     int64  `json:"pending_pin_id,omitempty" yaml:"pending_pin_id,omitempty"`
}

// WriteStatus renders s to w in the given format.
func WriteStatus(w io.Writer, f Format, s Status) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(s)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(s); err != nil {
			return err
		}

		return enc.Close()
	default:
		return writeStatusText(w, s)
	}
}

func writeStatusText(w io.Writer, s Status) error {
	lines := []string{
		"Client identifier: " + s.ClientIdentifier,
		"Signed in:         " + yesNo(s.SignedIn),
	}

	if s.TokenValid != nil {
		lines = append(lines, "Token valid:       "+yesNo(*s.TokenValid))
	}

	if s.ProbeError != "" {
		lines = append(lines, "Probe error:       "+s.ProbeError)
	}

	if s.PendingPinID != 0 {
		lines = append(lines, fmt.Sprintf("Pending pin:       %d", s.PendingPinID))
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")

	return err
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}
