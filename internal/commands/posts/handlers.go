package postscmd

import (
	"context"

	"github.com/goliatone/go-blog/internal/article"
	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// CreatePostHandler scaffolds posts via the lifecycle manager.
type CreatePostHandler struct {
	inner *commands.Handler[CreatePostCommand]
}

// NewCreatePostHandler wires post creation to the manager.
func NewCreatePostHandler(manager *article.Manager, logger interfaces.Logger, opts ...commands.HandlerOption[CreatePostCommand]) *CreatePostHandler {
	exec := func(ctx context.Context, msg CreatePostCommand) error {
		_, err := manager.Create(ctx, article.CreateParams{
			Params: generator.Params{
				Title:       msg.Title,
				Description: msg.Description,
				Authors:     msg.Authors,
				Tags:        msg.Tags,
				Content:     msg.Content,
				Preview:     msg.Preview,
				Section:     msg.Section,
				Date:        msg.Date,
				WithFolder:  msg.WithFolder,
			},
			Slug:  msg.Slug,
			Draft: !msg.Published,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[CreatePostCommand]{
		commands.WithLogger[CreatePostCommand](logger),
		commands.WithOperation[CreatePostCommand]("posts.create"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CreatePostHandler{inner: commands.NewHandler[CreatePostCommand](exec, handlerOpts...)}
}

// Execute satisfies command.Commander[CreatePostCommand].Execute.
func (h *CreatePostHandler) Execute(ctx context.Context, msg CreatePostCommand) error {
	return h.inner.Execute(ctx, msg)
}

// PublishPostHandler promotes drafts via the lifecycle manager.
type PublishPostHandler struct {
	inner *commands.Handler[PublishPostCommand]
}

// NewPublishPostHandler wires draft promotion to the manager.
func NewPublishPostHandler(manager *article.Manager, logger interfaces.Logger, opts ...commands.HandlerOption[PublishPostCommand]) *PublishPostHandler {
	exec := func(ctx context.Context, msg PublishPostCommand) error {
		return manager.Publish(ctx, msg.Slug)
	}

	handlerOpts := []commands.HandlerOption[PublishPostCommand]{
		commands.WithLogger[PublishPostCommand](logger),
		commands.WithOperation[PublishPostCommand]("posts.publish"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PublishPostHandler{inner: commands.NewHandler[PublishPostCommand](exec, handlerOpts...)}
}

// Execute satisfies command.Commander[PublishPostCommand].Execute.
func (h *PublishPostHandler) Execute(ctx context.Context, msg PublishPostCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ArchivePostHandler demotes published posts via the lifecycle manager.
type ArchivePostHandler struct {
	inner *commands.Handler[ArchivePostCommand]
}

// NewArchivePostHandler wires post archiving to the manager.
func NewArchivePostHandler(manager *article.Manager, logger interfaces.Logger, opts ...commands.HandlerOption[ArchivePostCommand]) *ArchivePostHandler {
	exec := func(ctx context.Context, msg ArchivePostCommand) error {
		return manager.Archive(ctx, msg.Slug)
	}

	handlerOpts := []commands.HandlerOption[ArchivePostCommand]{
		commands.WithLogger[ArchivePostCommand](logger),
		commands.WithOperation[ArchivePostCommand]("posts.archive"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ArchivePostHandler{inner: commands.NewHandler[ArchivePostCommand](exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ArchivePostCommand].Execute.
func (h *ArchivePostHandler) Execute(ctx context.Context, msg ArchivePostCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RemovePostHandler deletes drafts via the lifecycle manager.
type RemovePostHandler struct {
	inner *commands.Handler[RemovePostCommand]
}

// NewRemovePostHandler wires draft removal to the manager.
func NewRemovePostHandler(manager *article.Manager, logger interfaces.Logger, opts ...commands.HandlerOption[RemovePostCommand]) *RemovePostHandler {
	exec := func(ctx context.Context, msg RemovePostCommand) error {
		return manager.Remove(ctx, msg.Slug)
	}

	handlerOpts := []commands.HandlerOption[RemovePostCommand]{
		commands.WithLogger[RemovePostCommand](logger),
		commands.WithOperation[RemovePostCommand]("posts.remove"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RemovePostHandler{inner: commands.NewHandler[RemovePostCommand](exec, handlerOpts...)}
}

// Execute satisfies command.Commander[RemovePostCommand].Execute.
func (h *RemovePostHandler) Execute(ctx context.Context, msg RemovePostCommand) error {
	return h.inner.Execute(ctx, msg)
}
