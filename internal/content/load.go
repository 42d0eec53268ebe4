package content

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

//go:embed data/site.yaml data/articles/*.md
var embedded embed.FS

const publishedLayout = "2006-01-02"

var yamlFrontMatter = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// Load decodes the embedded site data and articles, renders article bodies
// and validates the result.
func Load() (*Site, error) {
	return LoadFS(embedded)
}

// LoadFS loads site data from fsys, which must contain data/site.yaml and
// data/articles/*.md.
func LoadFS(fsys fs.FS) (*Site, error) {
	raw, err := fs.ReadFile(fsys, "data/site.yaml")
	if err != nil {
		return nil, fmt.Errorf("content: read site data: %w", err)
	}
	var site Site
	if err := yaml.Unmarshal(raw, &site); err != nil {
		return nil, fmt.Errorf("content: decode site data: %w", err)
	}

	files, err := fs.Glob(fsys, "data/articles/*.md")
	if err != nil {
		return nil, fmt.Errorf("content: list articles: %w", err)
	}
	sort.Strings(files)
	for _, name := range files {
		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("content: read %s: %w", name, err)
		}
		a, err := ParseArticle(b)
		if err != nil {
			return nil, fmt.Errorf("content: %s: %w", path.Base(name), err)
		}
		site.Articles = append(site.Articles, a)
	}
	if err := prepare(&site); err != nil {
		return nil, err
	}
	return &site, nil
}

// Decode parses a complete site document (articles inline, bodies in
// Markdown), as served by a remote CMS.
func Decode(raw []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(raw, &site); err != nil {
		return nil, fmt.Errorf("content: decode site document: %w", err)
	}
	if err := prepare(&site); err != nil {
		return nil, err
	}
	return &site, nil
}

// ParseArticle splits front matter from the Markdown body.
func ParseArticle(raw []byte) (Article, error) {
	var a Article
	body, err := frontmatter.MustParse(bytes.NewReader(raw), &a, yamlFrontMatter)
	if err != nil {
		return Article{}, fmt.Errorf("front matter: %w", err)
	}
	a.Body = strings.TrimSpace(string(body))
	return a, nil
}

func prepare(site *Site) error {
	for i := range site.Articles {
		a := &site.Articles[i]
		if a.Published != "" {
			t, err := time.Parse(publishedLayout, a.Published)
			if err != nil {
				return fmt.Errorf("%w: article %d: published %q: %v", ErrInvalid, a.ID, a.Published, err)
			}
			a.PublishedAt = t
		}
		rendered, err := RenderMarkdown(a.Body)
		if err != nil {
			return fmt.Errorf("content: article %d: %w", a.ID, err)
		}
		a.BodyHTML = rendered
		if a.ReadMinutes <= 0 {
			a.ReadMinutes = ReadingMinutes(rendered)
		}
	}
	return site.Validate()
}
