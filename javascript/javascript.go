package javascript

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/pkg/errors"

	"github.com/ZacxDev/commands-site/config"
)

// CompileJSTarget bundles every target with esbuild and writes hashed
// outputs (name_hash.js plus its source map) into the target's out dir. It
// returns the public path of each target's script, keyed by target name.
func CompileJSTarget(targets map[string]config.JavascriptTarget) (map[string]string, error) {
	emitted := make(map[string]string, len(targets))

	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, targetName := range names {
		target := targets[targetName]
		result := api.Build(api.BuildOptions{
			EntryPoints:       []string{target.Source},
			Bundle:            true,
			MinifyWhitespace:  true,
			MinifyIdentifiers: true,
			MinifySyntax:      true,
			Engines: []api.Engine{
				{Name: api.EngineChrome, Version: "100"},
				{Name: api.EngineFirefox, Version: "100"},
				{Name: api.EngineSafari, Version: "15"},
				{Name: api.EngineEdge, Version: "100"},
			},
			Sourcemap: api.SourceMapExternal,
			Write:     false,
			Outdir:    target.OutDir,
		})

		if len(result.Errors) > 0 {
			messages := api.FormatMessages(result.Errors, api.FormatMessagesOptions{Kind: api.ErrorMessage})
			return nil, errors.Errorf("bundle %s: %s", targetName, strings.Join(messages, "\n"))
		}

		// Scripts first so their hashes are known when the maps are named.
		var regularFiles []api.OutputFile
		var mapFiles []api.OutputFile
		for _, out := range result.OutputFiles {
			if strings.EqualFold(filepath.Ext(out.Path), ".map") {
				mapFiles = append(mapFiles, out)
			} else {
				regularFiles = append(regularFiles, out)
			}
		}
		sortedFiles := append(regularFiles, mapFiles...)

		srcToHash := make(map[string]string)

		for _, out := range sortedFiles {
			dir := filepath.Dir(out.Path)
			base := filepath.Base(out.Path)
			ext := base[strings.Index(base, "."):]
			isMap := ext == ".js.map"
			fileNameWithoutExt := base[:len(base)-len(ext)]

			var hashForFileName string
			if isMap {
				hashForFileName = srcToHash[fileNameWithoutExt]
				if hashForFileName == "" {
					return nil, errors.Errorf("source map %s can not find hash for its source file", fileNameWithoutExt)
				}
			} else {
				safeHash := strings.ReplaceAll(out.Hash, "/", "")
				srcToHash[fileNameWithoutExt] = safeHash
				hashForFileName = safeHash
			}

			name := fmt.Sprintf("%s_%s%s", fileNameWithoutExt, hashForFileName, ext)
			newPath := filepath.Join(dir, name)

			fileContent := out.Contents
			if !isMap {
				fileContent = append(append([]byte(nil), out.Contents...), fmt.Sprintf("//# sourceMappingURL=%s.map", name)...)
			}

			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, errors.Wrapf(err, "create %s", dir)
			}
			if err := os.WriteFile(newPath, fileContent, 0o644); err != nil {
				return nil, errors.Wrapf(err, "write %s", newPath)
			}

			if !isMap {
				emitted[targetName] = path.Join("/", filepath.ToSlash(target.OutDir), name)
			}
		}
	}

	return emitted, nil
}
