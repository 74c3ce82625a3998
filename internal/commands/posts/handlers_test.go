package postscmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blog/internal/article"
	"github.com/goliatone/go-blog/internal/generator"
)

func newTestManager(t *testing.T) (*article.Manager, article.Folders) {
	t.Helper()
	root := t.TempDir()
	folders := article.Folders{
		Posts:  filepath.Join(root, "posts"),
		Drafts: filepath.Join(root, "drafts"),
	}
	return article.NewManager(folders, generator.New(nil), nil), folders
}

func TestCreatePostCommandValidation(t *testing.T) {
	if err := (CreatePostCommand{}).Validate(); err == nil {
		t.Fatal("expected validation error for missing title")
	}
	if err := (CreatePostCommand{Title: "Fine"}).Validate(); err != nil {
		t.Fatalf("expected valid message, got %v", err)
	}
}

func TestSlugCommandsValidation(t *testing.T) {
	if err := (PublishPostCommand{}).Validate(); err == nil {
		t.Fatal("expected validation error for missing slug")
	}
	if err := (ArchivePostCommand{}).Validate(); err == nil {
		t.Fatal("expected validation error for missing slug")
	}
	if err := (RemovePostCommand{}).Validate(); err == nil {
		t.Fatal("expected validation error for missing slug")
	}
	if err := (PublishPostCommand{Slug: "ok"}).Validate(); err != nil {
		t.Fatalf("expected valid message, got %v", err)
	}
}

func TestCreatePostHandlerWritesDraft(t *testing.T) {
	manager, folders := newTestManager(t)
	handler := NewCreatePostHandler(manager, nil)

	err := handler.Execute(context.Background(), CreatePostCommand{Title: "Command Post"})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(folders.Drafts, "command-post.md")); err != nil {
		t.Fatalf("draft missing: %v", err)
	}
}

func TestCreatePostHandlerRejectsEmptyTitle(t *testing.T) {
	manager, _ := newTestManager(t)
	handler := NewCreatePostHandler(manager, nil)

	err := handler.Execute(context.Background(), CreatePostCommand{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestPublishHandlerLifecycle(t *testing.T) {
	manager, folders := newTestManager(t)
	ctx := context.Background()

	if err := NewCreatePostHandler(manager, nil).Execute(ctx, CreatePostCommand{Title: "Lifecycle"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := NewPublishPostHandler(manager, nil).Execute(ctx, PublishPostCommand{Slug: "lifecycle"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if _, err := os.Stat(filepath.Join(folders.Posts, "lifecycle.md")); err != nil {
		t.Fatalf("published post missing: %v", err)
	}

	if err := NewArchivePostHandler(manager, nil).Execute(ctx, ArchivePostCommand{Slug: "lifecycle"}); err != nil {
		t.Fatalf("archive: %v", err)
	}
	if _, err := os.Stat(filepath.Join(folders.Drafts, "lifecycle.md")); err != nil {
		t.Fatalf("archived draft missing: %v", err)
	}

	if err := NewRemovePostHandler(manager, nil).Execute(ctx, RemovePostCommand{Slug: "lifecycle"}); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(folders.Drafts, "lifecycle.md")); !os.IsNotExist(err) {
		t.Fatalf("draft should be removed, stat err: %v", err)
	}
}

func TestPublishHandlerMissingDraft(t *testing.T) {
	manager, _ := newTestManager(t)

	err := NewPublishPostHandler(manager, nil).Execute(context.Background(), PublishPostCommand{Slug: "ghost"})
	if err == nil {
		t.Fatal("expected not found error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not found category, got %v", err)
	}
}
