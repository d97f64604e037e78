package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Mr-LMN/CircuitsAPP/api"
	"github.com/Mr-LMN/CircuitsAPP/chipper"
	"github.com/Mr-LMN/CircuitsAPP/config"
)

const (
	modeGroups    = "groups"
	modeNormalize = "normalize"
	modeCheck     = "check"
)

func newChipperCmd() *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "chipper [file]",
		Short: "Normalize, group or check a chipper step list",
		Long: `Reads a JSON step list, or a workout document with a "steps" field,
from file or stdin and prints the result as JSON.

Modes:
  groups     steps bucketed by rep count, as shown on the timer
  normalize  canonical steps, as saved by the editor
  check      indexes of the rows that still need a name or reps`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open steps: %w", err)
				}
				defer f.Close()
				in = f
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return runChipper(in, cmd.OutOrStdout(), mode, api.NewCategoryVocabulary(cfg.Categories, cfg.DefaultCategory))
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", modeGroups, "one of groups, normalize, check")
	return cmd
}

func runChipper(in io.Reader, out io.Writer, mode string, categories chipper.CategorySanitizer) error {
	var doc interface{}
	if err := json.NewDecoder(in).Decode(&doc); err != nil {
		return fmt.Errorf("failed to decode steps: %w", err)
	}
	if m, ok := doc.(map[string]interface{}); ok {
		doc = m["steps"]
	}

	var result interface{}
	switch mode {
	case modeGroups:
		result = chipper.GroupValue(doc)
	case modeNormalize, modeCheck:
		steps, ok := chipper.RawStepsFrom(doc)
		if !ok && logger != nil {
			logger.Warn("input has no step list", zap.String("mode", mode))
		}
		if mode == modeNormalize {
			result = chipper.Normalize(steps, categories)
		} else {
			result = chipper.IncompleteRows(steps)
		}
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
