package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neoclaw-ai/privatelink/internal/connections"
	"github.com/neoclaw-ai/privatelink/internal/logging"
	"github.com/neoclaw-ai/privatelink/internal/output"
)

func runList(cmd *cobra.Command, service *connections.Service, filter connections.Filter, format output.Format) error {
	writer, err := output.New(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	count := 0
	for d, err := range service.List(cmd.Context(), filter) {
		if err != nil {
			return err
		}
		if err := writer.Write(d); err != nil {
			return fmt.Errorf("write connection %q: %w", d.ID, err)
		}
		count++
	}
	logging.Logger().Info("listed private endpoint connections", "count", count)
	return writer.Close()
}
