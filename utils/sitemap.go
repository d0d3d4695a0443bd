package utils

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

type Sitemap struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	Urls    []Url    `xml:"url"`
}

type Url struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// GenerateSitemaps writes <publicDir>/sitemap.xml.
func GenerateSitemaps(publicDir, origin string, languages []string, lastMod string) error {
	xmlOutput, err := GenerateSitemapContent(origin, languages, lastMod)
	if err != nil {
		return err
	}

	path := filepath.Join(publicDir, "sitemap.xml")
	if err := os.WriteFile(path, []byte(xmlOutput), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

// GenerateSitemapContent lists the site root and one page per language.
// lastMod uses the 2006-01-02 layout.
func GenerateSitemapContent(origin string, languages []string, lastMod string) (string, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(origin), "/")
	sitemap := Sitemap{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
	}

	sitemap.Urls = append(sitemap.Urls, Url{
		Loc:        baseURL + "/",
		LastMod:    lastMod,
		ChangeFreq: "weekly",
		Priority:   "1.0",
	})
	for _, lang := range languages {
		sitemap.Urls = append(sitemap.Urls, Url{
			Loc:        baseURL + "/" + lang + "/",
			LastMod:    lastMod,
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}

	xmlOutput, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return "", errors.WithStack(err)
	}

	return xml.Header + string(xmlOutput) + "\n", nil
}
