package cli

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/spf13/cobra"

	"github.com/Astreocclu/pool-visualizer/pkg/models"
	"github.com/Astreocclu/pool-visualizer/pkg/output"
	"github.com/Astreocclu/pool-visualizer/pkg/wizard"
)

var setCmd = &cobra.Command{
	Use:   "set key=value [key=value ...]",
	Short: "Set wizard selections without the interactive flow",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		updates := make(models.Selections, len(args))
		for _, arg := range args {
			key, raw, found := strings.Cut(arg, "=")
			if !found || key == "" {
				return httperror.NewHTTPErrorf(http.StatusBadRequest, "%q is not a key=value pair", arg)
			}

			value := parseSelectionValue(raw)
			if value.Kind == models.KindString && !wizard.ValidOption(key, value.Str) {
				return httperror.NewHTTPErrorf(http.StatusBadRequest, "%q is not a valid choice for %s", value.Str, key)
			}
			updates[key] = value
		}

		application.store.SetMany(updates)
		cmd.Printf("Updated %d selection(s)\n", len(updates))
		return nil
	},
}

// parseSelectionValue infers the value shape: true/false become flags,
// digits become counts, comma lists become string lists.
func parseSelectionValue(raw string) models.Value {
	switch raw {
	case "true":
		return models.Bool(true)
	case "false":
		return models.Bool(false)
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return models.Int(n)
	}
	if strings.Contains(raw, ",") {
		parts := strings.Split(raw, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return models.List(parts...)
	}
	return models.String(raw)
}

var selectionsCmd = &cobra.Command{
	Use:   "selections",
	Short: "Show the saved wizard selections",
	RunE: func(cmd *cobra.Command, args []string) error {
		selections := application.store.Selections()

		if flagOutput != "table" {
			return application.print(cmd, selections)
		}

		descriptor := application.registry.Config(flagTenant)
		table := output.NewTable("KEY", "VALUE")
		for _, key := range descriptor.SelectionKeys {
			if value, ok := selections[key]; ok {
				table.AddRow(key, value.Display())
			}
		}
		return application.print(cmd, table)
	},
}

func init() {
	rootCmd.AddCommand(setCmd, selectionsCmd)
}
