package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var drafts bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List post slugs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := ctx.ensureModule()
			if err != nil {
				return err
			}

			cfg := module.Config()
			var slugs []string
			if drafts {
				// Drafts live in the drafts folder or hide behind the
				// underscore prefix next to published posts.
				slugs = module.Articles().ListSlugs(cfg.Folders.Drafts, false)
				slugs = append(slugs, module.Articles().ListSlugs(cfg.Folders.Posts, true)...)
			} else {
				slugs = module.Articles().ListSlugs(cfg.Folders.Posts, false)
			}
			if len(slugs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No posts found.")
				return nil
			}
			for _, slug := range slugs {
				fmt.Fprintln(cmd.OutOrStdout(), slug)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&drafts, "drafts", false, "List drafts instead of published posts")
	return cmd
}
