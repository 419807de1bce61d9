package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/beachcam-al/beachcam/color"
	"github.com/beachcam-al/beachcam/icon"
	"github.com/beachcam-al/beachcam/key"
	"github.com/beachcam-al/beachcam/log"
	"github.com/beachcam-al/beachcam/pages"
	"github.com/beachcam-al/beachcam/resolver"
	"github.com/beachcam-al/beachcam/stream"
	"github.com/beachcam-al/beachcam/style"
	"github.com/beachcam-al/beachcam/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func errUnknownStream(name string) error {
	return fmt.Errorf(
		"unknown stream %s, did you mean %s?",
		style.Fg(color.Red)(name),
		style.Fg(color.Yellow)(stream.Default().Closest(name)),
	)
}

// pickStream returns the named stream, or the configured default when name is empty.
func pickStream(name string) (stream.Reference, error) {
	if name == "" {
		name = viper.GetString(key.StreamsDefault)
	}
	ref, ok := stream.Default().Get(name).Get()
	if !ok {
		return "", errUnknownStream(name)
	}
	return ref, nil
}

func completionStreams(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return stream.Default().Names(), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringP("stream", "s", "", "Resolve the page of a built-in stream")
	resolveCmd.Flags().BoolP("no-url", "n", false, "Send no page URL and let the endpoint pick its default source")
	resolveCmd.Flags().BoolP("json", "j", false, "Format the outcome as a JSON object")
	resolveCmd.Flags().StringP("endpoint", "e", "", "Override the resolution endpoint")
	lo.Must0(viper.BindPFlag(key.ResolverEndpoint, resolveCmd.Flags().Lookup("endpoint")))
	lo.Must0(resolveCmd.RegisterFlagCompletionFunc("stream", completionStreams))

	resolveCmd.MarkFlagsMutuallyExclusive("stream", "no-url")
	resolveCmd.SetOut(os.Stdout)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [page-url]",
	Short: "Resolve a page URL into its playable source URL",
	Long: `Ask the resolution endpoint for the playable source behind a page URL.

Without arguments the page of the default stream is resolved.
An argument that isn't a URL and is part of exactly one remembered page
expands to that page.
Use --no-url to send no page at all.`,
	Example: `  beachcam resolve --stream sunrise
  beachcam resolve "https://v.angelcam.com/iframe?v=1ny8jxnjr0&autoplay=1"
  beachcam resolve --no-url --json`,
	Args: cobra.MaximumNArgs(1),
	ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return pages.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	},
	PreRun: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 && (cmd.Flags().Changed("stream") || cmd.Flags().Changed("no-url")) {
			handleErr(errors.New("a page URL argument can't be combined with --stream or --no-url"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		page, err := pageFromInput(cmd, args)
		handleErr(err)

		r := resolver.FromConfig()

		if lo.Must(cmd.Flags().GetBool("json")) {
			report := r.Report(page)
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(report))
			if !report.OK() {
				log.Record(log.Fields{"kind": report.Error.Kind}, errors.New(report.Error.Message))
				exit(1)
				return
			}
			remember(page)
			return
		}

		erase := util.PrintErasable(os.Stderr, fmt.Sprintf("%s Resolving source...", icon.Get(icon.Progress)))
		source, err := r.Resolve(page).Get()
		erase()
		handleErr(err)

		remember(page)
		cmd.Println(source)
	},
}

func pageFromInput(cmd *cobra.Command, args []string) (mo.Option[string], error) {
	if len(args) > 0 {
		return mo.Some(expandPage(args[0])), nil
	}
	if lo.Must(cmd.Flags().GetBool("no-url")) {
		return mo.None[string](), nil
	}
	ref, err := pickStream(lo.Must(cmd.Flags().GetString("stream")))
	if err != nil {
		return mo.None[string](), err
	}
	return mo.Some(ref.String()), nil
}

// expandPage replaces input that isn't a URL with the one remembered page containing it.
// Anything else, the empty string included, is sent as given.
func expandPage(input string) string {
	if strings.Contains(input, "://") {
		return input
	}
	page, ok := pages.Lookup(input).Get()
	if !ok {
		return input
	}
	log.Debugf("expanded %q to remembered page %s", input, page)
	return page
}

func remember(page mo.Option[string]) {
	if p, ok := page.Get(); ok {
		if err := pages.Remember(p, 1); err != nil {
			log.Warnf("could not remember page %s: %v", p, err)
		}
	}
}
