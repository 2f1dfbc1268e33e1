package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imagehost/service/internal/config"
	"github.com/imagehost/service/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{
		APIPrefix:      "poc_api",
		AllowedHosts:   []string{"https://app.example"},
		MaxUploadBytes: 1 << 20,
		ObjectACL:      storage.ACLPublicRead,
	}
	bucket := storage.NewMemoryBucket("images", "https://cdn.example", 2)
	store := storage.NewClient(
		storage.Binding{Bucket: bucket, Prefix: "public/"},
		storage.Binding{Bucket: bucket, Prefix: "private/"},
	)
	srv := httptest.NewServer(NewRouter(cfg, store))
	t.Cleanup(srv.Close)
	return srv
}

func upload(t *testing.T, srv *httptest.Server, kind, filename string, data []byte) map[string]any {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(srv.URL+"/upload-image?type="+kind, mw.FormDataContentType(), &body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestFullLifecycle(t *testing.T) {
	srv := newTestServer(t)
	gif := []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\xff\xff\xff\x00\x00\x00!\xf9\x04\x01\x00\x00\x00\x00,")

	priv := upload(t, srv, "private", "cat.gif", gif)
	pub := upload(t, srv, "public", "dog.gif", gif)
	upload(t, srv, "public", "bird.gif", gif)

	privName := priv["public_id"].(string) + "." + priv["format"].(string)
	assert.Equal(t, "/poc_api/image/"+privName, priv["url"])
	assert.Equal(t, float64(len(gif)), priv["bytes"])

	resp, err := http.Get(srv.URL + "/objects/list")
	require.NoError(t, err)
	var listing struct {
		PublicKeys  []string `json:"publicKeys"`
		PrivateKeys []string `json:"privateKeys"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listing))
	resp.Body.Close()
	assert.Len(t, listing.PublicKeys, 2)
	assert.Equal(t, []string{"private/" + privName}, listing.PrivateKeys)

	resp, err = http.Get(srv.URL + "/image/" + privName)
	require.NoError(t, err)
	var got bytes.Buffer
	_, err = got.ReadFrom(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/gif", resp.Header.Get("Content-Type"))
	assert.Equal(t, gif, got.Bytes())

	pubName := pub["public_id"].(string) + ".gif"
	for _, name := range []string{privName, pubName} {
		req, err := http.NewRequest(http.MethodDelete, srv.URL+"/image/"+name, nil)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, name)
	}

	resp, err = http.Get(srv.URL + "/image/" + privName)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCORSAllowedHosts(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/upload-image", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "https://app.example", resp.Header.Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "https://evil.example")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), "imagehost_http_requests_total")
}
