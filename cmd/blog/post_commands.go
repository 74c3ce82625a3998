package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-blog/internal/commands"
	postscmd "github.com/goliatone/go-blog/internal/commands/posts"
)

func newCreateCommand(ctx *commandContext) *cobra.Command {
	var (
		slug        string
		description string
		authors     []string
		tags        []string
		content     string
		preview     string
		section     string
		dateFlag    string
		published   bool
		withFolder  bool
	)

	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a new post (draft unless --published)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := ctx.ensureModule()
			if err != nil {
				return err
			}

			var date time.Time
			if dateFlag != "" {
				date, err = time.Parse(time.DateOnly, dateFlag)
				if err != nil {
					return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD: %w", dateFlag, err)
				}
			}

			handler := postscmd.NewCreatePostHandler(module.Manager(), commands.CommandLogger(module.Provider(), "posts"))
			if err := handler.Execute(cmd.Context(), postscmd.CreatePostCommand{
				Title:       args[0],
				Slug:        slug,
				Description: description,
				Authors:     authors,
				Tags:        tags,
				Content:     content,
				Preview:     preview,
				Section:     section,
				Date:        date,
				Published:   published,
				WithFolder:  withFolder,
			}); err != nil {
				return err
			}

			kind := "draft"
			if published {
				kind = "post"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %q\n", kind, args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&slug, "slug", "", "Slug override (derived from the title by default)")
	cmd.Flags().StringVar(&description, "description", "", "Post description")
	cmd.Flags().StringSliceVar(&authors, "author", nil, "Post author (repeatable)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Post tag (repeatable)")
	cmd.Flags().StringVar(&content, "content", "", "Initial markdown body")
	cmd.Flags().StringVar(&preview, "preview", "", "Explicit preview text for the index")
	cmd.Flags().StringVar(&section, "section", "", "Section label")
	cmd.Flags().StringVar(&dateFlag, "date", "", "Publication date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().BoolVar(&published, "published", false, "Write straight into the posts folder")
	cmd.Flags().BoolVar(&withFolder, "with-folder", false, "Create a companion asset folder")

	return cmd
}

func newPublishCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publish <slug>",
		Short: "Promote a draft to the posts folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := ctx.ensureModule()
			if err != nil {
				return err
			}
			handler := postscmd.NewPublishPostHandler(module.Manager(), commands.CommandLogger(module.Provider(), "posts"))
			if err := handler.Execute(cmd.Context(), postscmd.PublishPostCommand{Slug: args[0]}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published %q\n", args[0])
			return nil
		},
	}
}

func newArchiveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "archive <slug>",
		Short: "Move a published post back to drafts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := ctx.ensureModule()
			if err != nil {
				return err
			}
			handler := postscmd.NewArchivePostHandler(module.Manager(), commands.CommandLogger(module.Provider(), "posts"))
			if err := handler.Execute(cmd.Context(), postscmd.ArchivePostCommand{Slug: args[0]}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived %q\n", args[0])
			return nil
		},
	}
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <slug>",
		Short: "Delete a draft and its asset folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := ctx.ensureModule()
			if err != nil {
				return err
			}
			handler := postscmd.NewRemovePostHandler(module.Manager(), commands.CommandLogger(module.Provider(), "posts"))
			if err := handler.Execute(cmd.Context(), postscmd.RemovePostCommand{Slug: args[0]}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed draft %q\n", args[0])
			return nil
		},
	}
}
