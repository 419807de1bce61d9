package cmd

import (
	"fmt"
	"os"

	"github.com/beachcam-al/beachcam/icon"
	"github.com/beachcam-al/beachcam/key"
	"github.com/beachcam-al/beachcam/log"
	"github.com/beachcam-al/beachcam/open"
	"github.com/beachcam-al/beachcam/resolver"
	"github.com/beachcam-al/beachcam/stream"
	"github.com/beachcam-al/beachcam/style"
	"github.com/beachcam-al/beachcam/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(openCmd)

	openCmd.Flags().StringP("app", "a", "", "Application to open the source with")
	lo.Must0(viper.BindPFlag(key.OpenApp, openCmd.Flags().Lookup("app")))
	openCmd.Flags().BoolP("print", "p", false, "Print the chosen URL instead of opening it")
	openCmd.SetOut(os.Stdout)
}

var openCmd = &cobra.Command{
	Use:               "open [stream]",
	Short:             "Open a live stream, falling back to its embeddable page when resolution fails",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionStreams,
	Run: func(cmd *cobra.Command, args []string) {
		var name string
		if len(args) > 0 {
			name = args[0]
		}
		ref, err := pickStream(name)
		handleErr(err)

		erase := util.PrintErasable(os.Stderr, fmt.Sprintf("%s Resolving source...", icon.Get(icon.Progress)))
		target, err := chooseTarget(resolver.FromConfig(), ref)
		erase()

		if err != nil {
			log.Record(log.Fields{"page": ref.String()}, err)
			cmd.PrintErrf("%s resolution failed: %s\n", icon.Get(icon.Fallback), err)
			cmd.PrintErrln("opening the stream page instead")
		}

		if lo.Must(cmd.Flags().GetBool("print")) {
			cmd.Println(target)
			return
		}

		log.Infof("opening %s", target)
		handleErr(open.Start(target, viper.GetString(key.OpenApp)))
		cmd.Printf("%s opened %s\n", icon.Get(icon.Success), style.Faint(target))
	},
}

// chooseTarget returns the resolved source of ref, or ref itself together with the cause when it can't be resolved.
func chooseTarget(r *resolver.Resolver, ref stream.Reference) (string, error) {
	page := mo.Some(ref.String())
	source, err := r.Resolve(page).Get()
	if err != nil {
		return ref.String(), err
	}
	remember(page)
	return source, nil
}
