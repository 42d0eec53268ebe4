package main

import (
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Abhinavgupta8977/dietitian-website/internal/content"
	"github.com/Abhinavgupta8977/dietitian-website/internal/nav"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render every page to static HTML",
	Long: `Renders each page and article through the router and writes them as
<out>/<path>/index.html, together with sitemap.xml, robots.txt and the
static assets.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := bootstrap(nil)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
		defer viewStore.Close()

		site, err := siteContent.Site(cmd.Context())
		if err != nil {
			return err
		}
		n, err := exportSite(newRouter(), site, exportOut)
		if err != nil {
			return err
		}
		logger.Info("export complete", zap.String("out", exportOut), zap.Int("files", n))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "dist", "output directory")
	rootCmd.AddCommand(exportCmd)
}

// sitePaths lists every indexable path: the top-level pages then articles.
func sitePaths(site *content.Site) []string {
	paths := make([]string, 0, len(nav.Main)+len(site.Articles))
	for _, it := range nav.Main {
		paths = append(paths, it.Path)
	}
	for _, a := range site.Articles {
		paths = append(paths, "/blog/"+a.Slug)
	}
	return paths
}

// exportSite renders the site into out and returns the number of files written.
func exportSite(h http.Handler, site *content.Site, out string) (int, error) {
	files := map[string]string{
		"/sitemap.xml": "sitemap.xml",
		"/robots.txt":  "robots.txt",
	}
	for _, p := range sitePaths(site) {
		files[p] = filepath.Join(strings.TrimPrefix(p, "/"), "index.html")
	}

	written := 0
	for path, name := range files {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			return written, fmt.Errorf("export %s: status %d", path, rec.Code)
		}
		if err := writeFile(filepath.Join(out, name), rec.Body.Bytes()); err != nil {
			return written, err
		}
		written++
	}

	assets := filepath.Join(publicDir, "assets")
	n, err := copyTree(os.DirFS(assets), filepath.Join(out, "assets"))
	return written + n, err
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

func copyTree(src fs.FS, dst string) (int, error) {
	n := 0
	err := fs.WalkDir(src, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		in, err := src.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()
		target := filepath.Join(dst, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		f, err := os.Create(target)
		if err != nil {
			return err
		}
		if _, err := io.Copy(f, in); err != nil {
			f.Close()
			return err
		}
		n++
		return f.Close()
	})
	if err != nil {
		return n, fmt.Errorf("export assets: %w", err)
	}
	return n, nil
}
