package cmd

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ZacxDev/commands-site/content"
	"github.com/ZacxDev/commands-site/handlers"
	"github.com/ZacxDev/commands-site/javascript"
	"github.com/ZacxDev/commands-site/store"
	"github.com/ZacxDev/commands-site/utils"
)

func newBuildCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build a static version of the site",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			defer logger.Sync()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "Building static site...")

			assets, err := javascript.CompileJSTarget(cfg.JavascriptTargets)
			if err != nil {
				return err
			}
			sessions, err := newSessionManager(cfg, logger)
			if err != nil {
				return err
			}
			router, err := handlers.SetupRouter(handlers.Dependencies{
				Config:   cfg,
				Logger:   logger,
				Sessions: sessions,
				Assets:   assets,
			})
			if err != nil {
				return errors.Wrap(err, "setting up router")
			}

			publicDir := cfg.Paths.Public
			if err := os.MkdirAll(publicDir, os.ModePerm); err != nil {
				return errors.Wrap(err, "creating public directory")
			}

			if err := copyStatic(cfg.Paths.Static, filepath.Join(publicDir, "static")); err != nil {
				return errors.Wrap(err, "copying static files")
			}

			server := httptest.NewServer(router)
			defer server.Close()

			data := store.New(cfg.Paths.Data)
			doc := content.ForDisplay(data.Read())

			pages := map[string]string{"/": "index.html"}
			for _, code := range doc.Languages {
				pages["/"+code+"/"] = filepath.Join(code, "index.html")
			}
			for route, file := range pages {
				target := filepath.Join(publicDir, file)
				if err := generateStaticPage(server, route, target, http.StatusOK); err != nil {
					return errors.Wrapf(err, "generating static page for %s", route)
				}
				fmt.Fprintf(out, "Generated %s\n", target)
			}

			notFound := filepath.Join(publicDir, "404.html")
			if err := generateStaticPage(server, "/404.html", notFound, http.StatusNotFound); err != nil {
				logger.Warn("generate 404 page", zap.Error(err))
			}

			if err := utils.GenerateSitemaps(publicDir, cfg.Server.Origin, doc.Languages, data.LastModified(time.DateOnly)); err != nil {
				return errors.Wrap(err, "generating sitemap")
			}

			fmt.Fprintf(out, "Static site generated successfully in the %s directory\n", publicDir)
			return nil
		},
	}
}

// generateStaticPage fetches route from the running site and writes the body
// to filePath when the response has the expected status.
func generateStaticPage(server *httptest.Server, route, filePath string, status int) error {
	resp, err := http.Get(server.URL + route)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != status {
		return errors.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(filePath, body, 0644)
}

func copyStatic(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		destPath := filepath.Join(dst, rel)
		if err := os.MkdirAll(filepath.Dir(destPath), os.ModePerm); err != nil {
			return err
		}
		return copyFile(path, destPath)
	})
}

func copyFile(src, dst string) error {
	input, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	return os.WriteFile(dst, input, 0644)
}
