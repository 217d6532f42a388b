package cli

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/spf13/cobra"

	"github.com/Astreocclu/pool-visualizer/pkg/models"
	"github.com/Astreocclu/pool-visualizer/pkg/output"
	"github.com/Astreocclu/pool-visualizer/pkg/polling"
	"github.com/Astreocclu/pool-visualizer/pkg/store"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Manage visualization requests",
}

var (
	flagPage       int
	flagPageSize   int
	flagStatus     string
	flagScreenType string
	flagSortBy     string
	flagSortOrder  string
	flagNoWatch    bool
)

var resultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List visualization requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		filters := resolveFilters()
		application.store.SetFilters(filters)

		result, err := application.api.ListVisualizations(cmd.Context(), models.ListOptions{
			Page:       flagPage,
			PageSize:   flagPageSize,
			Status:     filters.Status,
			ScreenType: filters.ScreenType,
			SortBy:     filters.SortBy,
			SortOrder:  filters.SortOrder,
		})
		if err != nil {
			return err
		}

		application.store.CacheRequests(result.Results)

		if flagOutput != "table" {
			return application.print(cmd, result)
		}

		table := output.NewTable("ID", "STATUS", "PROGRESS", "CREATED", "RESULT")
		for _, req := range result.Results {
			table.AddRow(
				strconv.Itoa(req.ID),
				string(req.Status),
				strconv.Itoa(req.ProgressPercentage)+"%",
				req.CreatedAt,
				req.ResultImageURL(),
			)
		}
		return application.print(cmd, table)
	},
}

var resultsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one visualization request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		req, err := application.api.GetVisualization(cmd.Context(), id)
		if err != nil {
			return err
		}

		application.store.UpsertRequest(*req)
		return application.print(cmd, req)
	},
}

var resultsWatchCmd = &cobra.Command{
	Use:   "watch <id>",
	Short: "Poll a request until it completes or fails",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return watchRequest(cmd, id)
	},
}

var resultsRetryCmd = &cobra.Command{
	Use:   "retry <id>",
	Short: "Requeue a failed request",
	Args:  cobra.ExactArgs(1),
	RunE: requeue(func(cmd *cobra.Command, id int) (*models.VisualizationRequest, error) {
		return application.api.RetryVisualization(cmd.Context(), id)
	}),
}

var resultsRegenerateCmd = &cobra.Command{
	Use:   "regenerate <id>",
	Short: "Restart generation for a request",
	Args:  cobra.ExactArgs(1),
	RunE: requeue(func(cmd *cobra.Command, id int) (*models.VisualizationRequest, error) {
		return application.api.RegenerateVisualization(cmd.Context(), id)
	}),
}

var flagUpdateBody string

var resultsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a visualization request's mutable fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		var update map[string]any
		if err := json.Unmarshal([]byte(flagUpdateBody), &update); err != nil {
			return httperror.NewHTTPErrorf(http.StatusBadRequest, "invalid update body: %v", err)
		}

		req, err := application.api.UpdateVisualization(cmd.Context(), id, update)
		if err != nil {
			return err
		}

		application.store.UpsertRequest(*req)
		return application.print(cmd, req)
	},
}

var resultsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a visualization request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := application.api.DeleteVisualization(cmd.Context(), id); err != nil {
			return err
		}

		application.store.RemoveRequest(id)
		cmd.Printf("Visualization request %d deleted\n", id)
		return nil
	},
}

// requeue builds a RunE that reposts a request and optionally watches it.
func requeue(action func(*cobra.Command, int) (*models.VisualizationRequest, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		req, err := action(cmd, id)
		if err != nil {
			return err
		}

		application.store.UpsertRequest(*req)
		if flagNoWatch {
			return application.print(cmd, req)
		}
		return watchRequest(cmd, req.ID)
	}
}

// watchRequest polls the request to a terminal status, printing progress
// updates along the way.
func watchRequest(cmd *cobra.Command, id int) error {
	lastLine := ""
	req, err := application.poller.Watch(cmd.Context(), id, func(update polling.Update) {
		line := progressLine(update)
		if line != lastLine {
			cmd.Println(line)
			lastLine = line
		}
	})
	if err != nil {
		return err
	}

	application.store.UpsertRequest(*req)

	switch req.Status {
	case models.StatusComplete:
		cmd.Printf("Done! Result: %s\n", req.ResultImageURL())
	case models.StatusFailed:
		if req.ErrorMessage != "" {
			cmd.Printf("Generation failed: %s\n", req.ErrorMessage)
		} else {
			cmd.Println("Generation failed")
		}
	}
	return nil
}

func progressLine(update polling.Update) string {
	line := strconv.Itoa(update.DisplayProgress) + "%"
	if update.Request.StatusMessage != "" {
		line += " - " + update.Request.StatusMessage
	}
	return line
}

// resolveFilters overlays explicit flags on the persisted filter settings.
func resolveFilters() store.Filters {
	filters := application.store.Filters()
	if flagStatus != "" {
		filters.Status = flagStatus
	}
	if flagScreenType != "" {
		filters.ScreenType = flagScreenType
	}
	if flagSortBy != "" {
		filters.SortBy = flagSortBy
	}
	if flagSortOrder != "" {
		filters.SortOrder = flagSortOrder
	}
	return filters
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, httperror.NewHTTPErrorf(http.StatusBadRequest, "%q is not a valid request id", arg)
	}
	return id, nil
}

func init() {
	resultsListCmd.Flags().IntVar(&flagPage, "page", 0, "page number")
	resultsListCmd.Flags().IntVar(&flagPageSize, "page-size", 0, "results per page")
	resultsListCmd.Flags().StringVar(&flagStatus, "status", "", "filter by status (all, pending, processing, complete, failed)")
	resultsListCmd.Flags().StringVar(&flagScreenType, "screen-type", "", "filter by screen type")
	resultsListCmd.Flags().StringVar(&flagSortBy, "sort-by", "", "sort field")
	resultsListCmd.Flags().StringVar(&flagSortOrder, "sort-order", "", "sort direction (asc, desc)")

	resultsRetryCmd.Flags().BoolVar(&flagNoWatch, "no-watch", false, "do not poll after requeuing")
	resultsRegenerateCmd.Flags().BoolVar(&flagNoWatch, "no-watch", false, "do not poll after requeuing")

	resultsUpdateCmd.Flags().StringVar(&flagUpdateBody, "json", "{}", "JSON object of fields to update")
	_ = resultsUpdateCmd.MarkFlagRequired("json")

	resultsCmd.AddCommand(resultsListCmd, resultsGetCmd, resultsWatchCmd,
		resultsRetryCmd, resultsRegenerateCmd, resultsUpdateCmd, resultsDeleteCmd)
	rootCmd.AddCommand(resultsCmd)
}
