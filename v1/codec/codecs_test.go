package codec

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesCodec(t *testing.T) {
	out, err := BytesCodec{}.Decode([]byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, out)

	raw, err := BytesCodec{}.Encode("abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), raw)

	_, err = BytesCodec{}.Encode(42)
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestTextCodec(t *testing.T) {
	c := NewTextCodec(nil)

	out, err := c.Decode([]byte("héllo"))
	require.NoError(t, err)
	assert.Equal(t, "héllo", out)

	raw, err := c.Encode("héllo")
	require.NoError(t, err)
	assert.Equal(t, []byte("héllo"), raw)

	raw, err = c.Encode(SchemeJSON)
	require.NoError(t, err)
	assert.Equal(t, []byte("json"), raw)

	_, err = c.Encode(3.14)
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestGzipRoundTrip(t *testing.T) {
	payload := []byte(`{"id":1,"name":"order"}`)

	compressed, err := GzipCodec{}.Encode(payload)
	require.NoError(t, err)
	assert.NotEqual(t, payload, compressed)
	assert.Equal(t, []byte{0x1f, 0x8b}, compressed[:2])

	out, err := GzipCodec{}.Decode(compressed)
	require.NoError(t, err)
	assert.Equal(t, payload, out)

	_, err = GzipCodec{}.Decode([]byte("not gzip"))
	assert.Error(t, err)
}

func TestJSONCodec(t *testing.T) {
	out, err := JSONCodec{}.Decode([]byte(`{"id":9007199254740993,"tags":["a"]}`))
	require.NoError(t, err)

	m, ok := out.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, json.Number("9007199254740993"), m["id"])
	assert.Equal(t, []any{"a"}, m["tags"])

	_, err = JSONCodec{}.Decode([]byte(`{"id":`))
	assert.Error(t, err)
}

func TestApacheLogCodec(t *testing.T) {
	line := `203.0.113.9 - alice [10/Oct/2000:13:55:36 -0700] "GET /apache_pb.gif HTTP/1.0" 200 2326 "http://example.com/start.html" "Mozilla/4.08"` + "\n"

	out, err := ApacheLogCodec{}.Decode([]byte(line))
	require.NoError(t, err)

	rec, ok := out.(ApacheLogRecord)
	require.True(t, ok)
	assert.Equal(t, "203.0.113.9", rec.RemoteHost)
	assert.Empty(t, rec.Ident)
	assert.Equal(t, "alice", rec.User)
	assert.Equal(t, "GET", rec.Method)
	assert.Equal(t, "/apache_pb.gif", rec.Path)
	assert.Equal(t, "HTTP/1.0", rec.Protocol)
	assert.Equal(t, 200, rec.Status)
	assert.Equal(t, int64(2326), rec.Bytes)
	assert.Equal(t, "http://example.com/start.html", rec.Referer)
	assert.Equal(t, "Mozilla/4.08", rec.UserAgent)
	assert.True(t, rec.Time.Equal(time.Date(2000, 10, 10, 20, 55, 36, 0, time.UTC)))

	out, err = ApacheLogCodec{}.Decode([]byte(`::1 - - [10/Oct/2000:13:55:36 +0000] "-" 408 -`))
	require.NoError(t, err)
	rec = out.(ApacheLogRecord)
	assert.Equal(t, 408, rec.Status)
	assert.Zero(t, rec.Bytes)
	assert.Empty(t, rec.UserAgent)

	_, err = ApacheLogCodec{}.Decode([]byte("just some text"))
	assert.ErrorIs(t, err, ErrMalformedLogLine)
}

func TestLogRawCodec(t *testing.T) {
	out, err := LogRawCodec{}.Decode([]byte("kernel: eth0 up\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "kernel: eth0 up", out)

	out, err = LogRawCodec{}.Decode([]byte{'o', 'k', 0xff})
	require.NoError(t, err)
	assert.Equal(t, "ok�", out)
}
