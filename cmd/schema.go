package cmd

import (
	"encoding/json"
	"os"

	"github.com/beachcam-al/beachcam/resolver"
	"github.com/beachcam-al/beachcam/stream"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().BoolP("streams", "s", false, "Generate the schema of 'streams --json' instead")
	schemaCmd.SetOut(os.Stdout)
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the structured command outputs",
	Long:  "Print the JSON Schema describing the output of 'resolve --json', or of 'streams --json' with --streams.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(outputSchema(lo.Must(cmd.Flags().GetBool("streams")))))
	},
}

func outputSchema(streams bool) *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.DoNotReference = true

	if streams {
		return reflector.Reflect(stream.Catalog{})
	}
	return reflector.Reflect(&resolver.Report{})
}
