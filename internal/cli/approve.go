package cli

import (
	"github.com/spf13/cobra"

	"github.com/neoclaw-ai/privatelink/internal/connections"
	"github.com/neoclaw-ai/privatelink/internal/logging"
)

func runApprove(cmd *cobra.Command, service *connections.Service, connectionID string) error {
	d, err := service.Approve(cmd.Context(), connectionID)
	if err != nil {
		if connections.IsNotFound(err) {
			logging.Logger().Warn("private endpoint connection not found", "connection_id", connectionID)
		}
		return err
	}

	logging.Logger().Info(
		"approved private endpoint connection",
		"connection_id", d.ID,
		"link_id", d.LinkID,
		"service", d.ServiceName,
	)
	return nil
}
