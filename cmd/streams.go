package cmd

import (
	"encoding/json"
	"os"

	"github.com/beachcam-al/beachcam/color"
	"github.com/beachcam-al/beachcam/icon"
	"github.com/beachcam-al/beachcam/stream"
	"github.com/beachcam-al/beachcam/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(streamsCmd)

	streamsCmd.Flags().BoolP("raw", "r", false, "Print only the stream URLs")
	streamsCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON object")
	streamsCmd.MarkFlagsMutuallyExclusive("raw", "json")
	streamsCmd.SetOut(os.Stdout)
}

var streamsCmd = &cobra.Command{
	Use:   "streams",
	Short: "List the built-in live camera streams",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		catalog := stream.Default()

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(catalog))
			return
		}

		raw := lo.Must(cmd.Flags().GetBool("raw"))
		for i, name := range catalog.Names() {
			ref := catalog.Get(name).MustGet()
			if raw {
				cmd.Println(ref)
				continue
			}

			cmd.Printf("%s %s %s\n", icon.Get(icon.Camera), style.Bold(style.Stream(name)), style.Faint("("+ref.ID()+")"))
			cmd.Println(style.Fg(color.Yellow)(ref.String()))
			if i < len(catalog.Names())-1 {
				cmd.Println()
			}
		}
	},
}
