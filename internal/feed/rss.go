package feed

import (
	"strings"
	"time"

	"github.com/gorilla/feeds"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// SiteInfo carries the channel-level details shared by the RSS feed and
// the sitemap.
type SiteInfo struct {
	Title       string
	Description string
	BaseURL     string
	Language    string
}

// RSS renders the article list as an RSS 2.0 document. Articles are
// expected in display order; each item carries the full rendered HTML as
// its description so readers get the whole post.
func RSS(site SiteInfo, articles []*interfaces.Article, now time.Time) (string, error) {
	channel := &feeds.RssFeed{
		Title:         site.Title,
		Link:          site.BaseURL,
		Description:   site.Description,
		Language:      site.Language,
		LastBuildDate: now.Format(time.RFC1123Z),
	}

	for _, art := range articles {
		link := absoluteURL(site.BaseURL, art.URL)
		item := &feeds.RssItem{
			Title:       art.Title,
			Link:        link,
			Description: art.HTML,
			Author:      strings.Join(art.Metadata.Authors, ", "),
			Category:    strings.Join(art.Metadata.Tags, ","),
			Guid:        &feeds.RssGuid{Id: link, IsPermaLink: "true"},
		}
		if !art.Metadata.Date.IsZero() {
			item.PubDate = art.Metadata.Date.Format(time.RFC1123Z)
		}
		channel.Items = append(channel.Items, item)
	}

	return feeds.ToXML(channel)
}

func absoluteURL(base, path string) string {
	base = strings.TrimRight(base, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}
