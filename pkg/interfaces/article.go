package interfaces

import (
	"strconv"
	"time"
)

// Metadata models the front-matter header of a markdown article. Author and
// tag fields are normalized at parse time: a scalar value in the file becomes
// a one-element list, so downstream consumers never see a bare string.
type Metadata struct {
	Title       string    `yaml:"title" json:"title"`
	Description string    `yaml:"description" json:"description"`
	Authors     []string  `yaml:"authors" json:"authors"`
	Tags        []string  `yaml:"tags" json:"tags"`
	Published   *bool     `yaml:"published" json:"published"`
	Date        time.Time `yaml:"date" json:"date"`
	// ModificationDate falls back to the file's mtime when the front matter
	// does not set it.
	ModificationDate time.Time `yaml:"modificationDate" json:"modification_date"`
	// Redirect marks the article as a link page pointing at an external URL.
	Redirect string `yaml:"redirect" json:"redirect"`
	// Preview overrides the derived excerpt when set.
	Preview string `yaml:"preview" json:"preview"`
	Section string `yaml:"section" json:"section"`
	// Order ranks custom pages in the navbar; nil sorts last.
	Order *int `yaml:"order" json:"order"`
}

// IsDraft reports whether the article was explicitly unpublished.
func (m Metadata) IsDraft() bool {
	return m.Published != nil && !*m.Published
}

// HasTag reports whether the literal tag appears in the tag list.
func (m Metadata) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ReadingTime is an estimate in whole minutes. Zero renders as "< 1".
type ReadingTime int

func (r ReadingTime) String() string {
	if r < 1 {
		return "< 1"
	}
	return strconv.Itoa(int(r))
}

// Article is the normalized in-memory record for one markdown file. Articles
// are constructed fresh on every read of the backing file and are immutable
// once built; they carry no identity across requests.
type Article struct {
	// Name is the filename stem, used as the slug and URL segment.
	Name string
	// Title resolution order: front-matter title, first level-1 heading,
	// humanized slug.
	Title string
	// Content is the raw file text including any front matter.
	Content string
	Metadata Metadata
	// HTML is the rendered body with front matter and leading heading
	// stripped. Empty HTML is how callers observe "not found".
	HTML string
	// Preview is a short rendered excerpt with link generation disabled.
	Preview string
	// URL is the rooted route for the article, stable per slug + route base.
	URL        string
	TimeToRead ReadingTime
}
