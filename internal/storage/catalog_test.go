package storage

import (
	"net/url"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devsrctool/pkg/domain"
)

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "catalog.sqlite3"), "devsrctool_", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func sourceInfo(t *testing.T, rawURL string, spidermonkeyID uint32) domain.SourceInfo {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	content := "var x = 1"
	return domain.SourceInfo{
		URL:              u,
		IntroductionType: "scriptElement",
		Content:          &content,
		SpidermonkeyID:   spidermonkeyID,
	}
}

func TestSaveAndList(t *testing.T) {
	c := openTestCatalog(t)
	pipeline, err := domain.NewPipelineID(1, 2)
	require.NoError(t, err)

	require.NoError(t, c.Save(pipeline, sourceInfo(t, "https://example.com/a.js", 1)))
	require.NoError(t, c.Save(pipeline, sourceInfo(t, "https://example.com/b.js", 2)))

	records, err := c.ListByPipeline(pipeline)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "https://example.com/a.js", records[0].URL)
	assert.Equal(t, "https://example.com/b.js", records[1].URL)
	assert.Equal(t, uint32(1), records[0].SpidermonkeyID)
	require.NotNil(t, records[0].Content)
	assert.Nil(t, records[0].ContentType)
}

func TestSaveUpsertsOnSameScript(t *testing.T) {
	c := openTestCatalog(t)
	pipeline, err := domain.NewPipelineID(1, 2)
	require.NoError(t, err)

	require.NoError(t, c.Save(pipeline, sourceInfo(t, "https://example.com/old.js", 7)))
	require.NoError(t, c.Save(pipeline, sourceInfo(t, "https://example.com/new.js", 7)))

	records, err := c.ListByPipeline(pipeline)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "https://example.com/new.js", records[0].URL)
}

func TestListIsScopedToPipeline(t *testing.T) {
	c := openTestCatalog(t)
	first, err := domain.NewPipelineID(1, 1)
	require.NoError(t, err)
	second, err := domain.NewPipelineID(1, 2)
	require.NoError(t, err)

	require.NoError(t, c.Save(first, sourceInfo(t, "https://example.com/a.js", 1)))
	require.NoError(t, c.Save(second, sourceInfo(t, "https://example.com/b.js", 1)))

	records, err := c.ListByPipeline(first)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "https://example.com/a.js", records[0].URL)
}

func TestWorkerIDPersisted(t *testing.T) {
	c := openTestCatalog(t)
	pipeline, err := domain.NewPipelineID(3, 4)
	require.NoError(t, err)
	worker, err := domain.ParseWorkerID("936da01f-9abd-4d9d-80c7-02af85c822a8")
	require.NoError(t, err)

	info := sourceInfo(t, "https://example.com/worker.js", 5)
	info.WorkerID = &worker
	require.NoError(t, c.Save(pipeline, info))

	records, err := c.ListByPipeline(pipeline)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].WorkerID)
	assert.Equal(t, worker.String(), *records[0].WorkerID)
}
