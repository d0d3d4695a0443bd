package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZacxDev/commands-site/content"
)

func TestReadMissingFileIsEmptyRecord(t *testing.T) {
	t.Parallel()

	s := New(filepath.Join(t.TempDir(), "missing.json"))
	record := s.Read()

	require.True(t, record.IsObject())
	require.Empty(t, record.Map())
}

func TestReadNonObjectIsEmptyRecord(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{`[1, 2]`, `"text"`, `{"broken": `, ``} {
		path := filepath.Join(t.TempDir(), "data.json")
		require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

		record := New(path).Read()
		require.True(t, record.IsObject(), "input %q", raw)
		require.Empty(t, record.Map(), "input %q", raw)
	}
}

func TestWriteThenReadRoundTrips(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config", "commands-data.json")
	s := New(path)

	doc := content.ForPersistence(content.Parse([]byte(`{
		"languages": ["ro", "en"],
		"translations": {
			"ro": {"meta": {"discordUrl": "https://discord.example/invite"}, "hero": {"title": "Salut <b>"}},
			"en": {"guide": {"steps": [{"commands": "/claim, /trust"}]}}
		}
	}`)))
	require.NoError(t, s.Write(doc))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	require.True(t, strings.HasSuffix(text, "}\n"))
	require.Contains(t, text, `"https://discord.example/invite"`)
	require.Contains(t, text, `"Salut <b>"`)
	require.Contains(t, text, "\n    \"languages\": [")

	require.Equal(t, doc, content.ForPersistence(s.Read()))
}

func TestWriteFailsWhenDirectoryCannotBeCreated(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	blocker := filepath.Join(root, "config")
	require.NoError(t, os.WriteFile(blocker, []byte("previous contents"), 0o644))

	s := New(filepath.Join(blocker, "commands-data.json"))
	require.Error(t, s.Write(map[string]any{"languages": []string{"ro"}}))

	data, err := os.ReadFile(blocker)
	require.NoError(t, err)
	require.Equal(t, "previous contents", string(data))
}

func TestWriteFailureLeavesExistingFileUntouched(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "commands-data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"hero": {"title": "keep"}}`), 0o644))

	s := New(path)
	require.Error(t, s.Write(map[string]any{"bad": make(chan int)}))

	require.Equal(t, "keep", s.Read().Get("hero.title").String())
}

func TestConcurrentWritesNeverTearTheFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "commands-data.json")
	s := New(path)

	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			doc := content.ForPersistence(content.Parse([]byte(fmt.Sprintf(
				`{"translations": {"ro": {"hero": {"title": "writer %d"}, "tips": {"items": [%q]}}}}`,
				i, strings.Repeat("x", 4096),
			))))
			assert.NoError(t, s.Write(doc))
		}(i)
	}
	wg.Wait()

	record := s.Read()
	require.True(t, record.Get("translations.ro").Exists())
	require.True(t, strings.HasPrefix(record.Get("translations.ro.hero.title").String(), "writer "))
}

func TestLastModified(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	missing := New(filepath.Join(dir, "missing.json"))
	require.Equal(t, time.Now().Format("2006-01-02"), missing.LastModified("2006-01-02"))

	path := filepath.Join(dir, "commands-data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))
	stamp := time.Date(2024, time.March, 9, 12, 0, 0, 0, time.Local)
	require.NoError(t, os.Chtimes(path, stamp, stamp))

	require.Equal(t, "09 Mar 2024", New(path).LastModified("02 Jan 2006"))
}
