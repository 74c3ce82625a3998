package postscmd

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	createPostMessageType  = "blog.posts.create"
	publishPostMessageType = "blog.posts.publish"
	archivePostMessageType = "blog.posts.archive"
	removePostMessageType  = "blog.posts.remove"
)

// CreatePostCommand scaffolds a new post. Drafts by default; set
// Published to write straight into the posts folder.
type CreatePostCommand struct {
	Title       string    `json:"title"`
	Slug        string    `json:"slug,omitempty"`
	Description string    `json:"description,omitempty"`
	Authors     []string  `json:"authors,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Content     string    `json:"content,omitempty"`
	Preview     string    `json:"preview,omitempty"`
	Section     string    `json:"section,omitempty"`
	Date        time.Time `json:"date,omitempty"`
	Published   bool      `json:"published,omitempty"`
	WithFolder  bool      `json:"with_folder,omitempty"`
}

// Type implements command.Message.
func (CreatePostCommand) Type() string { return createPostMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m CreatePostCommand) Validate() error {
	errs := validation.Errors{}
	if m.Title == "" {
		errs["title"] = validation.NewError("blog.posts.create.title_required", "title is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PublishPostCommand promotes a draft into the posts folder.
type PublishPostCommand struct {
	Slug string `json:"slug"`
}

// Type implements command.Message.
func (PublishPostCommand) Type() string { return publishPostMessageType }

// Validate ensures a slug is present.
func (m PublishPostCommand) Validate() error { return requireSlug(m.Slug, "blog.posts.publish") }

// ArchivePostCommand moves a published post back into the drafts folder.
type ArchivePostCommand struct {
	Slug string `json:"slug"`
}

// Type implements command.Message.
func (ArchivePostCommand) Type() string { return archivePostMessageType }

// Validate ensures a slug is present.
func (m ArchivePostCommand) Validate() error { return requireSlug(m.Slug, "blog.posts.archive") }

// RemovePostCommand deletes a draft and its asset folder.
type RemovePostCommand struct {
	Slug string `json:"slug"`
}

// Type implements command.Message.
func (RemovePostCommand) Type() string { return removePostMessageType }

// Validate ensures a slug is present.
func (m RemovePostCommand) Validate() error { return requireSlug(m.Slug, "blog.posts.remove") }

func requireSlug(slug, scope string) error {
	if slug != "" {
		return nil
	}
	return validation.Errors{
		"slug": validation.NewError(scope+".slug_required", "slug is required"),
	}
}
