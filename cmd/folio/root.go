package main

import (
	"context"
	"fmt"

	"github.com/goliatone/go-folio"
	"github.com/spf13/cobra"
)

// application is the slice of folio.Module the CLI drives.
type application interface {
	Config() folio.Config
	Serve(ctx context.Context) error
	Build(ctx context.Context, msg folio.BuildSiteCommand) error
	Lint(ctx context.Context, msg folio.LintContentCommand) error
	NewPost(ctx context.Context, msg folio.NewPostCommand) error
}

type moduleBuilder func(opts folio.LoadOptions) (application, error)

func buildModule(opts folio.LoadOptions) (application, error) {
	cfg, err := folio.LoadConfig(opts)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	module, err := folio.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("bootstrap module: %w", err)
	}
	return module, nil
}

type rootState struct {
	opts    folio.LoadOptions
	builder moduleBuilder
	app     application
}

func (s *rootState) module() (application, error) {
	if s.app != nil {
		return s.app, nil
	}
	app, err := s.builder(s.opts)
	if err != nil {
		return nil, err
	}
	s.app = app
	return app, nil
}

func newRootCommand(builder moduleBuilder) *cobra.Command {
	state := &rootState{builder: builder}

	root := &cobra.Command{
		Use:           "folio",
		Short:         "Multilingual markdown blog server and feed generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&state.opts.ConfigFile, "config", "", "config file (default is ./config.yaml)")
	root.PersistentFlags().StringVar(&state.opts.EnvFile, "env", "", "dotenv file loaded before FOLIO_* variables (default is ./.env)")

	root.AddCommand(
		newServeCommand(state),
		newBuildCommand(state),
		newLintCommand(state),
		newNewCommand(state),
	)
	return root
}
