package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/beachcam-al/beachcam/icon"
	"github.com/beachcam-al/beachcam/pages"
	"github.com/beachcam-al/beachcam/util"
	"github.com/beachcam-al/beachcam/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type clearTarget struct {
	name  string
	flag  string
	short string
	clear func() error
}

var clearTargets = []clearTarget{
	{"cache directory", "cache", "c", func() error { return util.Delete(where.Cache()) }},
	{"remembered pages", "pages", "p", pages.Forget},
	{"logs", "logs", "l", func() error { return util.Delete(where.Logs()) }},
}

// confirm asks before deleting anything. Swapped in tests.
var confirm = func(msg string) (bool, error) {
	var ok bool
	err := survey.AskOne(&survey.Confirm{Message: msg}, &ok)
	return ok, err
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, t := range clearTargets {
		clearCmd.Flags().BoolP(t.flag, t.short, false, "Clear "+t.name)
	}
	clearCmd.Flags().BoolP("yes", "y", false, "Don't ask for confirmation")

	clearCmd.SetOut(os.Stdout)
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete cached data and remembered pages",
	Run: func(cmd *cobra.Command, args []string) {
		chosen := lo.Filter(clearTargets, func(t clearTarget, _ int) bool {
			return lo.Must(cmd.Flags().GetBool(t.flag))
		})
		if len(chosen) == 0 {
			handleErr(cmd.Help())
			return
		}

		if !lo.Must(cmd.Flags().GetBool("yes")) {
			names := lo.Map(chosen, func(t clearTarget, _ int) string { return t.name })
			ok, err := confirm(fmt.Sprintf("Clear %s (%s)?", strings.Join(names, ", "), util.Quantify(len(names), "target", "targets")))
			handleErr(err)
			if !ok {
				return
			}
		}

		for _, t := range chosen {
			erase := util.PrintErasable(os.Stderr, fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), t.name))
			err := t.clear()
			erase()
			if err != nil && !os.IsNotExist(err) {
				handleErr(err)
			}
			cmd.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(t.name))
		}
	},
}
