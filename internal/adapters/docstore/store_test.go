package docstore_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/zpkg/internal/adapters/docstore"
	"go.trai.ch/zpkg/internal/core/domain"
)

func sampleDocument() domain.Document {
	return domain.Document{
		"zosversion":   json.RawMessage(`"2.2"`),
		"name":         json.RawMessage(`"demo"`),
		"dependencies": json.RawMessage(`{"b":"^1.0.0","a":"~2.1.0"}`),
		"custom":       json.RawMessage(`{"x":[1,2]}`),
	}
}

func TestStore_WriteGolden(t *testing.T) {
	tmpDir := t.TempDir()
	store := docstore.NewStore(docstore.NewOSFS())
	path := filepath.Join(tmpDir, "zos.json")

	require.NoError(t, store.Write(path, sampleDocument()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "manifest_write", data)
}

func TestStore_RoundTrip(t *testing.T) {
	filesystems := map[string]func(t *testing.T) (docstore.FileSystem, string){
		"os": func(t *testing.T) (docstore.FileSystem, string) {
			return docstore.NewOSFS(), t.TempDir()
		},
		"memory": func(_ *testing.T) (docstore.FileSystem, string) {
			return docstore.NewMemFS(), "/work"
		},
	}

	for name, setup := range filesystems {
		t.Run(name, func(t *testing.T) {
			fsys, root := setup(t)
			store := docstore.NewStore(fsys)
			path := filepath.Join(root, "zos.json")

			assert.False(t, store.Exists(path))

			got, err := store.LoadIfExists(path)
			require.NoError(t, err)
			assert.Nil(t, got)

			want := sampleDocument()
			require.NoError(t, store.Write(path, want))
			assert.True(t, store.Exists(path))

			got, err = store.LoadIfExists(path)
			require.NoError(t, err)
			require.Len(t, got, len(want))
			for key := range want {
				assert.JSONEq(t, string(want[key]), string(got[key]), "key %s", key)
			}
		})
	}
}

func TestStore_WriteIsIdempotent(t *testing.T) {
	fsys := docstore.NewMemFS()
	store := docstore.NewStore(fsys)

	require.NoError(t, store.Write("zos.json", sampleDocument()))
	first, err := fsys.ReadFile("zos.json")
	require.NoError(t, err)

	require.NoError(t, store.Write("zos.json", sampleDocument()))
	second, err := fsys.ReadFile("zos.json")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestStore_WriteCreatesParentDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	store := docstore.NewStore(docstore.NewOSFS())
	path := filepath.Join(tmpDir, "nested", "deeper", "zos.json")

	require.NoError(t, store.Write(path, sampleDocument()))
	assert.FileExists(t, path)
}

func TestStore_LoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "invalid json", content: "{ invalid json", wantErr: domain.ErrDocumentParse},
		{name: "not an object", content: `["a", "b"]`, wantErr: domain.ErrDocumentParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := docstore.NewMemFS()
			require.NoError(t, fsys.WriteFile("zos.json", []byte(tt.content), domain.FilePerm))

			_, err := docstore.NewStore(fsys).LoadIfExists("zos.json")
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr.Error())
		})
	}

	t.Run("directory in place of file", func(t *testing.T) {
		tmpDir := t.TempDir()
		_, err := docstore.NewStore(docstore.NewOSFS()).LoadIfExists(tmpDir)
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrDocumentRead.Error())
	})
}

func TestStore_WriteError(t *testing.T) {
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("file"), 0o600))

	// A regular file where a parent directory should be.
	err := docstore.NewStore(docstore.NewOSFS()).Write(filepath.Join(blocker, "zos.json"), sampleDocument())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrDocumentWrite.Error())
}

func TestStore_Spans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(t.Context()) })

	fsys := docstore.NewMemFS()
	require.NoError(t, fsys.WriteFile("broken.json", []byte("{"), domain.FilePerm))

	store := docstore.NewStore(fsys).WithTracer(provider.Tracer("test"))

	require.NoError(t, store.Write("zos.json", sampleDocument()))
	_, err := store.LoadIfExists("zos.json")
	require.NoError(t, err)
	store.Exists("zos.json")
	_, err = store.LoadIfExists("broken.json")
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 4)

	names := make([]string, 0, len(spans))
	for _, s := range spans {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"docstore.write", "docstore.load", "docstore.exists", "docstore.load"}, names)

	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[3].Status().Code)

	var path string
	for _, attr := range spans[3].Attributes() {
		if attr.Key == "path" {
			path = attr.Value.AsString()
		}
	}
	assert.Equal(t, "broken.json", path)
}
