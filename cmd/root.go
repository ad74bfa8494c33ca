package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"prefect-manager/internal/config"
	"prefect-manager/internal/history"
	"prefect-manager/internal/logging"
	"prefect-manager/internal/manager"
	"prefect-manager/internal/utils"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

const listRule = 15

// app carries what every subcommand needs once the root has resolved its
// settings.
type app struct {
	v       *viper.Viper
	in      io.Reader
	runner  utils.Runner
	log     zerolog.Logger
	mgr     *manager.Manager
	journal *history.Journal
}

// NewRootCmd builds the command tree reading answers from in and starting
// external commands through runner.
func NewRootCmd(in io.Reader, runner utils.Runner) *cobra.Command {
	a := &app{
		v:      config.NewViper(),
		in:     in,
		runner: runner,
		log:    zerolog.Nop(),
	}

	rootCmd := &cobra.Command{
		Use:   "prefect-manager",
		Short: "Manage multiple Prefect Cloud accounts",
		Long: `Store Prefect Cloud access tokens under friendly names, keep named
config.toml templates, and switch the active account by rewriting the prefect
config and logging in with the account's token.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && a.isTerminal() {
				return a.runInteractiveMenu(cmd)
			}
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String(config.KeyHome, "", "state directory holding accounts and config templates (default ~/.prefect-manager)")
	flags.String(config.KeyActiveConfig, "", "prefect config file rewritten on activation (default ~/.prefect/config.toml)")
	flags.String(config.KeyLoginCommand, config.DefaultLoginCommand, "login command; the token is appended")
	flags.String(config.KeyEditor, "", "editor for edit-config (default $VISUAL, $EDITOR or nano)")
	flags.String(config.KeyTokenField, config.DefaultTokenField, "dotted config key that receives the token")
	flags.String(config.KeyLogLevel, config.DefaultLogLevel, "log level (debug, info, warn, error)")
	cobra.CheckErr(a.v.BindPFlags(flags))

	rootCmd.AddCommand(
		a.addAccountCmd(),
		a.listAccountsCmd(),
		a.activateCmd(),
		a.addConfigCmd(),
		a.listConfigsCmd(),
		a.editConfigCmd(),
		a.historyCmd(),
		a.currentCmd(),
	)
	return rootCmd
}

func Execute() {
	// Disable the "This is a command line tool" check to allow the menu on double-click
	cobra.MousetrapHelpText = ""
	err := NewRootCmd(os.Stdin, utils.ExecRunner{}).Execute()
	if err != nil {
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	settings, err := config.Load(a.v)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(settings.LogLevel)
	if err != nil {
		return err
	}
	a.log = logging.New(cmd.ErrOrStderr(), level)

	opts := manager.Options{Settings: settings, Runner: a.runner, Logger: a.log}
	if _, err := manager.New(opts).Initialize(); err != nil {
		return fmt.Errorf("initialize %s: %w", settings.StateDir, err)
	}

	// The journal lives inside the state directory, so it is opened only
	// after Initialize has had a chance to seed it.
	journal, err := history.Open(commandContext(cmd), filepath.Join(settings.StateDir, history.FileName))
	if err != nil {
		a.log.Warn().Err(err).Msg("activation history disabled")
	} else {
		a.journal = journal
		opts.Journal = journal
	}
	a.mgr = manager.New(opts)
	return nil
}

func (a *app) close() error {
	if a.journal == nil {
		return nil
	}
	err := a.journal.Close()
	a.journal = nil
	return err
}

func (a *app) isTerminal() bool {
	f, ok := a.in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// printList writes a header, a rule and one item per line.
func printList(w io.Writer, header string, items []string) {
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", listRule))
	for _, item := range items {
		fmt.Fprintln(w, item)
	}
}
