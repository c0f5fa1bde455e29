package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"iso3166/dataset"
	"iso3166/enquiries"
	"iso3166/internal/config"
	"iso3166/internal/logger"
	"iso3166/internal/match"
	"iso3166/store"
)

// app carries the state shared by the subcommands of one invocation.
type app struct {
	configPath string
	overrides  config.Config

	cfg   *config.Config
	log   *slog.Logger
	cache *store.Cache
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "iso3166",
		Short:         "Query the ISO 3166 reference datasets",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (yaml, json or toml)")
	pf.StringVar(&a.overrides.DataDir, "data-dir", "", "directory holding the compiled datasets")
	pf.StringVar(&a.overrides.Language, "lang", "", "current language")
	pf.StringVar(&a.overrides.DefaultLanguage, "default-lang", "", "fallback language")
	pf.StringVar(&a.overrides.Format, "format", "", "output format: json, yaml or flat")
	pf.StringVar(&a.overrides.Separator, "separator", "", "path separator of flat output")

	root.AddCommand(
		newDatasetsCmd(),
		newFieldsCmd(),
		newQueryCmd(a),
		newGetCmd(a),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()

	overlay := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}

	overlay("data-dir", &cfg.DataDir, a.overrides.DataDir)
	overlay("lang", &cfg.Language, a.overrides.Language)
	overlay("default-lang", &cfg.DefaultLanguage, a.overrides.DefaultLanguage)
	overlay("format", &cfg.Format, a.overrides.Format)
	overlay("separator", &cfg.Separator, a.overrides.Separator)

	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger.Init(cfg.Log, cmd.ErrOrStderr())
	a.cache = store.New(store.NewFSSource(os.DirFS(cfg.DataDir)), store.WithLogger(a.log))

	return nil
}

func (a *app) enquiry(name string) (*enquiries.Enquiry, error) {
	s, err := lookupDataset(name)
	if err != nil {
		return nil, err
	}

	return enquiries.New(a.cache, s,
		enquiries.WithLanguage(a.cfg.Language),
		enquiries.WithDefaultLanguage(a.cfg.DefaultLanguage),
		enquiries.WithLogger(a.log),
	)
}

func lookupDataset(name string) (*dataset.Schema, error) {
	s, ok := dataset.Lookup(name)
	if !ok {
		if guess, found := match.Suggest(name, dataset.Names(), match.DefaultThreshold); found {
			return nil, fmt.Errorf("unknown dataset %q, did you mean %q?", name, guess)
		}

		return nil, fmt.Errorf("unknown dataset %q, expected one of %v", name, dataset.Names())
	}

	return s, nil
}
