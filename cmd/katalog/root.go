package main

import (
	"fmt"
	"io"
	"os"

	"github.com/irsalhamdi/prelobook/core/catalog"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const fixtureEnv = "PRELOBOOK_CATALOG_FIXTURE"

type rootOptions struct {
	fixture string
	strict  bool
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "katalog",
		Short: "Inspect the Prelobook catalog from the command line",
		Long: `Katalog works on the same catalog the Prelobook service serves.

It searches books, lists bundles, checks fixture files and prices carts
without starting the server.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			if !cmd.Flags().Changed("fixture") {
				opts.fixture = os.Getenv(fixtureEnv)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.fixture, "fixture", "", "catalog YAML file, defaults to $"+fixtureEnv+", embedded catalog when empty")
	cmd.PersistentFlags().BoolVar(&opts.strict, "strict", false, "fail when a bundle's declared book count is wrong")

	cmd.AddCommand(newSearchCmd(opts))
	cmd.AddCommand(newBundlesCmd(opts))
	cmd.AddCommand(newValidateCmd(opts))
	cmd.AddCommand(newCartCmd(opts))

	return cmd
}

func newLogger(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return log
}

// load opens the catalog named by path, or the embedded one. Bundle warnings
// go to the command's error stream.
func load(cmd *cobra.Command, path string, strict bool) (*catalog.Store, error) {
	log := newLogger(cmd.ErrOrStderr())
	opts := catalog.Options{
		StrictBundles: strict,
		Warn: func(err error) {
			log.WithField("check", "bundle").Warn(err)
		},
	}

	if path == "" {
		return catalog.Default(opts)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := catalog.Load(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
