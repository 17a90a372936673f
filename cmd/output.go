package cmd

import (
	"encoding/json"
	"errors"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errConflictingFormats = errors.New("--json and --yaml are mutually exclusive")

type outputFormat struct {
	json bool
	yaml bool
}

func (f *outputFormat) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.json, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&f.yaml, "yaml", false, "Render YAML output")
}

func (f outputFormat) validate() error {
	if f.json && f.yaml {
		return errConflictingFormats
	}

	return nil
}

func (f outputFormat) structured() bool {
	return f.json || f.yaml
}

func (f outputFormat) write(cmd *cobra.Command, value any) error {
	if f.yaml {
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func sanitizeForTerminal(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)
}
