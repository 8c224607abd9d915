// Package configcmder provides the config command for managing persistent
// rosebot configuration stored in the .rosebot/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent rosebot configuration.

Configuration is stored as config.toml in the .rosebot/ directory and
provides default values for command flags. CLI flags always take
precedence over config file values.

Keys use dotted notation matching the TOML section structure:
  api.listen,
  knowledge.index_path, knowledge.top_k,
  vector_store.provider, vector_store.target,
  embedding.provider, embedding.target, embedding.model, embedding.dimensions,
  llm.provider, llm.target, llm.model, llm.temperature, llm.max_tokens,
  shopify.shop_url, shopify.api_version, shopify.send_replies,
  events.provider, events.brokers, events.topic,
  session.window

Use subcommands to get, set, or list configuration values:
  rosebot config set <key> <value>    Set a configuration value
  rosebot config get <key>            Get a configuration value
  rosebot config list                 List all configuration values

Examples:
  rosebot config set llm.provider openai
  rosebot config set embedding.model nomic-embed-text
  rosebot config get shopify.shop_url
  rosebot config list`

const configShortDesc string = "Manage persistent rosebot configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
