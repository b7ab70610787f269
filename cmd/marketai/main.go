// Package main 文案生成命令行客户端
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"marketai-api/internal/generator"
	"marketai-api/internal/prefs"
	"marketai-api/internal/prompt"
	apperrors "marketai-api/pkg/errors"
	"marketai-api/pkg/logger"
)

// Version 版本号，构建时注入
var Version = "dev"

const defaultRelayURL = "http://localhost:3001"

type options struct {
	relayURL    string
	upstreamURL string
	prefsPath   string
	timeout     time.Duration
	verbose     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+userMessage(err))
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "marketai",
		Short:         "Generate marketing copy from a product description",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			logger.InitWithWriter(errOut, level, "text")
		},
	}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	relayDefault := os.Getenv("MARKETAI_RELAY_URL")
	if relayDefault == "" {
		relayDefault = defaultRelayURL
	}
	rootCmd.PersistentFlags().StringVar(&opts.relayURL, "relay", relayDefault, "Relay base URL")
	rootCmd.PersistentFlags().StringVar(&opts.upstreamURL, "upstream", generator.DefaultDirectOptions().BaseURL, "Upstream base URL used with a local API key")
	rootCmd.PersistentFlags().StringVar(&opts.prefsPath, "prefs", "", "Preferences file (default $UserConfigDir/marketai/prefs.yaml)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "Request timeout, 0 disables it")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")

	rootCmd.AddCommand(
		newGenerateCmd(opts),
		newInteractiveCmd(opts),
		newCategoriesCmd(),
		newPrefsCmd(opts),
	)
	return rootCmd
}

func newGenerateCmd(opts *options) *cobra.Command {
	var (
		category string
		copyOut  bool
	)

	cmd := &cobra.Command{
		Use:   "generate [description...]",
		Short: "Generate content for one product description",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newSession(opts)
			if err != nil {
				return err
			}

			content, err := session.Generate(cmd.Context(), category, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), content)

			if copyOut {
				if err := session.Copy(generator.SystemClipboard{}); err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "Content copied to clipboard!")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", string(prompt.DefaultCategory), "Content type")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the result to the clipboard")
	return cmd
}

func newInteractiveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newSession(opts)
			if err != nil {
				return err
			}
			sh := newShell(session, generator.SystemClipboard{}, cmd.InOrStdin(), cmd.OutOrStdout())
			return sh.run(cmd.Context())
		},
	}
}

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List content types",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printCategories(cmd.OutOrStdout())
		},
	}
}

func newPrefsCmd(opts *options) *cobra.Command {
	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "Manage local preferences (" + strings.Join(prefs.Keys(), ", ") + ")",
	}

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print a preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openPrefs(opts)
			if err != nil {
				return err
			}
			v, err := store.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Save a preference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openPrefs(opts)
			if err != nil {
				return err
			}
			if err := store.Set(args[0], args[1]); err != nil {
				return err
			}
			if args[0] == prefs.KeyAPIKey {
				fmt.Fprintln(cmd.ErrOrStderr(), "API Key saved successfully!")
			}
			return nil
		},
	}

	unsetCmd := &cobra.Command{
		Use:   "unset <key>",
		Short: "Clear a preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openPrefs(opts)
			if err != nil {
				return err
			}
			return store.Unset(args[0])
		},
	}

	prefsCmd.AddCommand(getCmd, setCmd, unsetCmd)
	return prefsCmd
}

func openPrefs(opts *options) (*prefs.Store, error) {
	path := opts.prefsPath
	if path == "" {
		p, err := prefs.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return prefs.Open(path)
}

// newSession 有本地密钥时直连上游，否则走中继
func newSession(opts *options) (*generator.Session, error) {
	store, err := openPrefs(opts)
	if err != nil {
		return nil, err
	}
	return generator.NewSession(newCompleter(opts, store.OverrideKey())), nil
}

func newCompleter(opts *options, overrideKey string) generator.Completer {
	if overrideKey != "" {
		direct := generator.DefaultDirectOptions()
		direct.BaseURL = opts.upstreamURL
		direct.Timeout = opts.timeout
		logger.Debug(context.Background(), "using local api key", "upstream", direct.BaseURL)
		return generator.NewDirectClient(overrideKey, direct)
	}
	logger.Debug(context.Background(), "using relay", "relay", opts.relayURL)
	return generator.NewRelayClient(opts.relayURL, opts.timeout)
}

func printCategories(w io.Writer) {
	for _, c := range prompt.Categories() {
		fmt.Fprintf(w, "  %-22s %s\n", c, prompt.Label(string(c)))
	}
}

// userMessage 只展示 AppError 的对外消息
func userMessage(err error) string {
	if apperrors.IsAppError(err) {
		return apperrors.AsAppError(err).Message
	}
	return err.Error()
}
