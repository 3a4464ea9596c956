package recipefinder

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCallLogFilePath(t *testing.T) {
	path := NewCallLogFilePath("https://www.TheMealDB.com:443/api/json/v1/1")
	assert.True(t, strings.HasPrefix(path, "./logs/"))
	assert.True(t, strings.HasSuffix(path, ".www.themealdb.com_443.json"), path)
}

func TestFileCallLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFileCallLogger(&buf)

	require.NoError(t, logger.LogCall(CallLog{Endpoint: "search.php", Timestamp: time.Now(), Results: 25}))
	require.NoError(t, logger.LogCall(CallLog{Endpoint: "lookup.php", Query: "i=52772", Error: "boom"}))
	assert.Empty(t, buf.String(), "nothing is written before Flush")

	require.NoError(t, logger.Flush())

	var doc struct {
		Session struct {
			Calls []CallLog `json:"calls"`
		} `json:"session"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Session.Calls, 2)
	assert.Equal(t, "search.php", doc.Session.Calls[0].Endpoint)
	assert.Equal(t, 25, doc.Session.Calls[0].Results)
	assert.Equal(t, "boom", doc.Session.Calls[1].Error)

	// buffer is cleared after a successful flush
	buf.Reset()
	require.NoError(t, logger.Flush())
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Empty(t, doc.Session.Calls)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestFileCallLoggerFlushError(t *testing.T) {
	logger := NewFileCallLogger(failingWriter{})
	require.NoError(t, logger.LogCall(CallLog{Endpoint: "list.php"}))

	err := logger.Flush()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write call log")
}

func TestNilWriterFlush(t *testing.T) {
	logger := NewFileCallLogger(nil)
	require.NoError(t, logger.LogCall(CallLog{Endpoint: "list.php"}))
	assert.NoError(t, logger.Flush())
}

func TestNoOpCallLogger(t *testing.T) {
	assert.NoError(t, NewNoOpCallLogger().LogCall(CallLog{Endpoint: "search.php"}))
}
