package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/warp/vanslyke/api"
	"github.com/warp/vanslyke/factory"
	"github.com/warp/vanslyke/generic"
	"github.com/warp/vanslyke/report"
	"github.com/warp/vanslyke/vanslyke"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vanslyke",
		Short: "Derive cheese yield and composition from partial knowledge",
		Long: `vanslyke derives everything it can about a cheese make from whatever
milk and cheese measurements are known, using the Van Slyke yield formula
and the fat-on-dry-basis identity. Values that cannot be derived are
reported as unknown together with what would resolve them.`,
		SilenceUsage: true,
	}

	root.AddCommand(newDeriveCmd(), newPresetsCmd(), newFormulasCmd(), newRequirementsCmd())
	return root
}

// =============================================================================
// DERIVE
// =============================================================================

type deriveFlags struct {
	file          string
	preset        string
	json          bool
	hideUnknown   bool
	noDiagnostics bool
}

func newDeriveCmd() *cobra.Command {
	var flags deriveFlags

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive a scenario file or preset",
		Long: `Derive a scenario and print every quantity with its source.

Exactly one of --file or --preset is required. Files ending in .json or
.toml are accepted; absent fields are unknown, never zero.

Examples:
  vanslyke derive --file make-0412.toml
  vanslyke derive --preset fdb-target --json
  vanslyke derive --preset cheddar-weighed --no-diagnostics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDerive(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "scenario file (.json or .toml)")
	cmd.Flags().StringVarP(&flags.preset, "preset", "p", "", "demo preset ID (see 'vanslyke presets')")
	cmd.Flags().BoolVar(&flags.json, "json", false, "print JSON instead of a report")
	cmd.Flags().BoolVar(&flags.hideUnknown, "hide-unknown", false, "omit quantities that could not be derived")
	cmd.Flags().BoolVar(&flags.noDiagnostics, "no-diagnostics", false, "omit the unresolved-output section")
	cmd.MarkFlagsMutuallyExclusive("file", "preset")
	cmd.MarkFlagsOneRequired("file", "preset")
	return cmd
}

func runDerive(cmd *cobra.Command, flags deriveFlags) error {
	f := factory.NewScenarioFactory()

	var scenario *factory.Scenario
	var err error
	if flags.preset != "" {
		doc, ok := factory.Preset(flags.preset)
		if !ok {
			return fmt.Errorf("%w: preset %q", generic.ErrInvalidScenario, flags.preset)
		}
		scenario, err = f.Build(doc)
	} else {
		scenario, err = f.ParseFile(flags.file)
	}
	if err != nil {
		return describe(err)
	}

	results, diags := vanslyke.Derive(scenario.Snapshot)

	if flags.json {
		dto := api.NewDerivationDTO(results, diags)
		doc := f.ToJSON(*scenario)
		dto.Scenario = &doc
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(dto)
	}

	title := scenario.Name
	if title == "" {
		title = scenario.ID
	}
	return report.Derivation(cmd.OutOrStdout(), results, diags, report.Options{
		Title:           title,
		HideUnknown:     flags.hideUnknown,
		HideDiagnostics: flags.noDiagnostics,
	})
}

// describe lists every invalid input instead of only the first.
func describe(err error) error {
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		return err
	}
	msg := "invalid scenario:"
	for _, e := range joined.Unwrap() {
		msg += "\n  " + e.Error()
	}
	return fmt.Errorf("%s\n%w", msg, generic.ErrInvalidScenario)
}

// =============================================================================
// REFERENCE
// =============================================================================

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List demo presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, p := range factory.Presets() {
				fmt.Fprintf(out, "%-20s %s\n", p.ID, p.Name)
				fmt.Fprintf(out, "%-20s %s\n", "", p.Description)
			}
			return nil
		},
	}
}

func newFormulasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formulas",
		Short: "Print the formula catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return report.Formulas(cmd.OutOrStdout(), vanslyke.Catalogue())
		},
	}
}

func newRequirementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "requirements",
		Short: "Print the inputs each headline output can be derived from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return report.Requirements(cmd.OutOrStdout())
		},
	}
}
