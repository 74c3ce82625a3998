package search

import (
	"fmt"
	stdhtml "html"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// TagPrefix marks a query as an exact tag filter instead of free text.
const TagPrefix = "tag::"

// Index resolves free-text and tag queries against an article set. The
// underlying bleve index is transient: built from scratch per query, never
// persisted, never updated incrementally.
type Index struct {
	logger   interfaces.Logger
	stripper *bluemonday.Policy
}

// New constructs the search service. A nil logger falls back to a no-op.
func New(logger interfaces.Logger) *Index {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Index{
		logger:   logger,
		stripper: bluemonday.StrictPolicy(),
	}
}

// searchDocument is the indexed projection of one article, keyed by URL.
type searchDocument struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Tags    string `json:"tags"`
}

// Filter narrows articles by query. An empty query returns the input
// unchanged. A "tag::name" query returns the exact-tag subset in input
// order. Anything else runs a prefix-matching full-text search and returns
// matches in the engine's ranking order.
func (ix *Index) Filter(articles []*interfaces.Article, q string) ([]*interfaces.Article, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return articles, nil
	}

	if strings.HasPrefix(q, TagPrefix) {
		return filterByTag(articles, strings.TrimPrefix(q, TagPrefix)), nil
	}

	return ix.fullText(articles, q)
}

func filterByTag(articles []*interfaces.Article, tag string) []*interfaces.Article {
	var out []*interfaces.Article
	for _, art := range articles {
		if art.Metadata.HasTag(tag) {
			out = append(out, art)
		}
	}
	return out
}

func (ix *Index) fullText(articles []*interfaces.Article, q string) ([]*interfaces.Article, error) {
	index, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("search: build index: %w", err)
	}
	defer index.Close()

	byURL := make(map[string]*interfaces.Article, len(articles))
	for _, art := range articles {
		byURL[art.URL] = art
		doc := searchDocument{
			Title:   art.Title,
			Content: ix.plainText(art.HTML),
			Tags:    strings.Join(art.Metadata.Tags, " "),
		}
		if err := index.Index(art.URL, doc); err != nil {
			return nil, fmt.Errorf("search: index %s: %w", art.URL, err)
		}
	}

	request := bleve.NewSearchRequestOptions(buildQuery(q), len(articles), 0, false)
	result, err := index.Search(request)
	if err != nil {
		return nil, fmt.Errorf("search: query %q: %w", q, err)
	}

	matched := make([]*interfaces.Article, 0, len(result.Hits))
	for _, hit := range result.Hits {
		art, ok := byURL[hit.ID]
		if !ok {
			ix.logger.Warn("search hit without article", "id", hit.ID)
			continue
		}
		matched = append(matched, art)
	}
	return matched, nil
}

// buildQuery combines an analyzed match query with per-term prefix queries
// so partially typed words still hit.
func buildQuery(q string) query.Query {
	queries := []query.Query{bleve.NewMatchQuery(q)}
	for _, term := range strings.Fields(strings.ToLower(q)) {
		queries = append(queries, bleve.NewPrefixQuery(term))
	}
	return bleve.NewDisjunctionQuery(queries...)
}

// plainText reduces rendered HTML to indexable text.
func (ix *Index) plainText(html string) string {
	return strings.TrimSpace(stdhtml.UnescapeString(ix.stripper.Sanitize(html)))
}
