package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-folio"
	"github.com/spf13/cobra"
)

func newServeCommand(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the blog over HTTP until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := state.module()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			fmt.Fprintf(cmd.OutOrStdout(), "listening on %s\n", app.Config().Server.Address)
			return app.Serve(ctx)
		},
	}
}

func newBuildCommand(state *rootState) *cobra.Command {
	var (
		locales []string
		dryRun  bool
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write RSS feeds, sitemap.xml and robots.txt to the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := state.module()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return app.Build(cmd.Context(), folio.BuildSiteCommand{
				Locales: locales,
				DryRun:  dryRun,
				ResultCallback: func(result *folio.BuildResult) {
					if result == nil {
						return
					}
					for _, artifact := range result.Artifacts {
						fmt.Fprintf(out, "%s\t%d bytes\n", artifact.Path, artifact.Bytes)
					}
					mode := "built"
					if result.DryRun {
						mode = "planned"
					}
					fmt.Fprintf(out, "%s %d artifacts from %d posts in %s\n", mode, len(result.Artifacts), result.Items, result.Duration)
				},
			})
		},
	}
	cmd.Flags().StringSliceVar(&locales, "locale", nil, "limit feeds to these locales (repeatable)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report artifacts without writing them")
	return cmd
}

func newLintCommand(state *rootState) *cobra.Command {
	var (
		contentType string
		fail        bool
	)
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Check frontmatter and report posts omitted from collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := state.module()
			if err != nil {
				return err
			}
			if contentType == "" {
				contentType = app.Config().Content.Type
			}
			out := cmd.OutOrStdout()
			return app.Lint(cmd.Context(), folio.LintContentCommand{
				ContentType:  contentType,
				FailOnIssues: fail,
				ResultCallback: func(report *folio.LintReport) {
					for _, issue := range report.Issues {
						location := issue.File
						if location == "" {
							location = issue.Slug + "@" + issue.Lang
						}
						if issue.Location != "" {
							location += " " + issue.Location
						}
						fmt.Fprintf(out, "%s\t%s\t%s\n", issue.Rule, location, issue.Message)
					}
					fmt.Fprintf(out, "%s: %d files, %d issues\n", report.Type, report.Files, len(report.Issues))
				},
			})
		},
	}
	cmd.Flags().StringVar(&contentType, "type", "", "content type to check (default is content.type)")
	cmd.Flags().BoolVar(&fail, "fail", false, "exit non-zero when issues are found")
	return cmd
}

func newNewCommand(state *rootState) *cobra.Command {
	var msg folio.NewPostCommand
	cmd := &cobra.Command{
		Use:   "new <title>",
		Short: "Scaffold a post with frontmatter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := state.module()
			if err != nil {
				return err
			}
			msg.Title = args[0]
			if msg.ContentType == "" {
				msg.ContentType = app.Config().Content.Type
			}
			if msg.Lang == "" {
				msg.Lang = app.Config().I18N.DefaultLocale
			}
			out := cmd.OutOrStdout()
			msg.ResultCallback = func(path string) {
				fmt.Fprintf(out, "created %s\n", path)
			}
			return app.NewPost(cmd.Context(), msg)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&msg.ContentType, "type", "", "content type directory (default is content.type)")
	flags.StringVar(&msg.Slug, "slug", "", "file slug (default is derived from the title)")
	flags.StringVar(&msg.Lang, "lang", "", "locale of the file (default is the default locale)")
	flags.StringVar(&msg.Date, "date", "", "publication date as YYYY-MM-DD (default is today)")
	flags.StringVar(&msg.Spoiler, "spoiler", "", "one line summary")
	flags.StringSliceVar(&msg.Tags, "tags", nil, "comma separated tags")
	flags.BoolVar(&msg.Draft, "draft", false, "mark the post as a draft")
	flags.BoolVar(&msg.Force, "force", false, "overwrite an existing file")
	return cmd
}
