package feed

import (
	"encoding/xml"
	"time"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority"`
}

// Sitemap renders a sitemap.org urlset covering the site root and every
// article. The root entry refreshes daily at a lower priority; articles
// are weekly at full priority.
func Sitemap(site SiteInfo, articles []*interfaces.Article, now time.Time) (string, error) {
	set := urlSet{
		Xmlns: sitemapNamespace,
		URLs: []urlEntry{{
			Loc:        absoluteURL(site.BaseURL, "/"),
			LastMod:    now.Format(time.DateOnly),
			ChangeFreq: "daily",
			Priority:   0.8,
		}},
	}

	for _, art := range articles {
		entry := urlEntry{
			Loc:        absoluteURL(site.BaseURL, art.URL),
			ChangeFreq: "weekly",
			Priority:   1.0,
		}
		if mod := lastModified(art); !mod.IsZero() {
			entry.LastMod = mod.Format(time.DateOnly)
		}
		set.URLs = append(set.URLs, entry)
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return "", err
	}
	return xml.Header + string(body), nil
}

func lastModified(art *interfaces.Article) time.Time {
	if !art.Metadata.ModificationDate.IsZero() {
		return art.Metadata.ModificationDate
	}
	return art.Metadata.Date
}
