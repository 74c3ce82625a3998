package markdown

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	goerrors "github.com/goliatone/go-errors"
	yaml "gopkg.in/yaml.v3"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// headingPattern matches the first level-1 heading with non-empty text,
// anchored to a line start.
var headingPattern = regexp.MustCompile(`(?m)^# +\S.*`)

// Document is the result of parsing one markdown file: normalized metadata,
// the cleaned body, and the title candidate derived from the leading heading.
type Document struct {
	Metadata interfaces.Metadata
	Body     string
	Title    string
}

// Parser extracts front matter and the cleaned body from raw file text.
type Parser struct {
	logger interfaces.Logger
}

// NewParser builds a Parser. A nil logger falls back to a no-op.
func NewParser(logger interfaces.Logger) *Parser {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Parser{logger: logger}
}

// Parse decodes the front-matter block (when present) and cleans the body:
// the first level-1 heading and everything before it are dropped, and the
// remainder is trimmed. The file at path is stat'ed once for timestamp
// fallbacks; a missing file is logged and leaves the timestamps zero.
// A present but undecodable front-matter block is a hard failure.
func (p *Parser) Parse(source []byte, path string) (*Document, error) {
	var env frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &env)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "parse front matter").
			WithTextCode("FRONT_MATTER_INVALID")
	}

	title, cleaned := stripLeadingHeading(string(body))

	meta := envelopeToMetadata(env)
	p.applyFileTimes(&meta, path)

	return &Document{
		Metadata: meta,
		Body:     strings.TrimSpace(cleaned),
		Title:    title,
	}, nil
}

// stripLeadingHeading locates the first level-1 heading line. When found it
// returns the heading text and the content after the heading line; content
// before the heading is intentionally discarded.
func stripLeadingHeading(body string) (string, string) {
	loc := headingPattern.FindStringIndex(body)
	if loc == nil {
		return "", body
	}
	heading := strings.TrimSpace(strings.TrimPrefix(body[loc[0]:loc[1]], "#"))
	return heading, body[loc[1]:]
}

func (p *Parser) applyFileTimes(meta *interfaces.Metadata, path string) {
	info, err := os.Stat(path)
	if err != nil {
		p.logger.Warn("stat article file failed", "path", path, "error", err)
		return
	}
	if meta.Date.IsZero() {
		meta.Date = info.ModTime()
	}
	if meta.ModificationDate.IsZero() {
		meta.ModificationDate = info.ModTime()
	}
}

// frontMatterEnvelope accepts both singular and plural author/tag keys and
// scalar-or-list values; envelopeToMetadata collapses them into lists.
type frontMatterEnvelope struct {
	Title            string    `yaml:"title"`
	Description      string    `yaml:"description"`
	Author           any       `yaml:"author"`
	Authors          any       `yaml:"authors"`
	Tag              any       `yaml:"tag"`
	Tags             any       `yaml:"tags"`
	Published        *bool     `yaml:"published"`
	Date             time.Time `yaml:"date"`
	ModificationDate time.Time `yaml:"modificationDate"`
	Redirect         string    `yaml:"redirect"`
	Preview          string    `yaml:"preview"`
	Section          string    `yaml:"section"`
	Order            *int      `yaml:"order"`
}

func envelopeToMetadata(env frontMatterEnvelope) interfaces.Metadata {
	authors := toStringList(env.Authors)
	if authors == nil {
		authors = toStringList(env.Author)
	}
	tags := toStringList(env.Tags)
	if tags == nil {
		tags = toStringList(env.Tag)
	}

	return interfaces.Metadata{
		Title:            env.Title,
		Description:      env.Description,
		Authors:          authors,
		Tags:             tags,
		Published:        env.Published,
		Date:             env.Date,
		ModificationDate: env.ModificationDate,
		Redirect:         env.Redirect,
		Preview:          env.Preview,
		Section:          env.Section,
		Order:            env.Order,
	}
}

func toStringList(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return []string{v}
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return []string{fmt.Sprint(v)}
	}
}

// frontMatterOutput is the canonical serialized shape: already-normalized
// lists, dates rendered as YYYY-MM-DD.
type frontMatterOutput struct {
	Title       string   `yaml:"title,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Authors     []string `yaml:"authors,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
	Published   *bool    `yaml:"published,omitempty"`
	Date        string   `yaml:"date,omitempty"`
	Redirect    string   `yaml:"redirect,omitempty"`
	Preview     string   `yaml:"preview,omitempty"`
	Section     string   `yaml:"section,omitempty"`
	Order       *int     `yaml:"order,omitempty"`
}

// Encode emits a front-matter prefixed markdown file for the supplied
// metadata and body. Parse(Encode(m, b)) round-trips the recognized fields.
func Encode(meta interfaces.Metadata, body string) ([]byte, error) {
	out := frontMatterOutput{
		Title:       meta.Title,
		Description: meta.Description,
		Authors:     meta.Authors,
		Tags:        meta.Tags,
		Published:   meta.Published,
		Redirect:    meta.Redirect,
		Preview:     meta.Preview,
		Section:     meta.Section,
		Order:       meta.Order,
	}
	if !meta.Date.IsZero() {
		out.Date = meta.Date.Format("2006-01-02")
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}
	buf.WriteString("---\n")

	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}
