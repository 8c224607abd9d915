// Package rosebotcmder
package rosebotcmder

import (
	"github.com/spf13/cobra"

	configcmder "github.com/rosemira/rosebot/cmd/rosebot/config"
	seedcmder "github.com/rosemira/rosebot/cmd/rosebot/seed"
	servecmder "github.com/rosemira/rosebot/cmd/rosebot/serve"
	versioncmder "github.com/rosemira/rosebot/cmd/version"
)

const rosebotLongDesc string = `Rosebot answers Rosemira storefront chat messages.

It serves the Shopify chat webhook, retrieves matching catalog and
conversation documents from the knowledge base, and generates replies
with a chat model.

Common commands:
  rosebot serve     Run the webhook API server
  rosebot seed      Seed the knowledge base with starter documents
  rosebot config    Manage persistent configuration`

const rosebotShortDesc string = "Rosebot - Rosemira chat assistant"

func NewRosebotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rosebot",
		Short: rosebotShortDesc,
		Long:  rosebotLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Directory holding the .rosebot/ config (default: auto-detect)")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(seedcmder.NewSeedCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
