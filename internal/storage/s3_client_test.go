package storage

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresBucket(t *testing.T) {
	_, err := NewClient(context.Background(), S3Config{Region: "us-east-1"})
	assert.Error(t, err)
}

func TestPresignPutUsesEndpointAndHeaders(t *testing.T) {
	c, err := NewClient(context.Background(), S3Config{
		Region:     "us-east-1",
		Bucket:     "attachments",
		AccessKey:  "AKIDEXAMPLE",
		SecretKey:  "secret",
		Endpoint:   "http://localhost:9000",
		PresignTTL: 10 * time.Minute,
	})
	require.NoError(t, err)

	raw, headers, err := c.PresignPut(context.Background(), "requests/abc/photo.jpg", "image/jpeg", 2048)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/attachments/requests/abc/photo.jpg", u.Path)
	assert.Equal(t, "600", u.Query().Get("X-Amz-Expires"))
	assert.Equal(t, "image/jpeg", headers["Content-Type"])
	assert.Equal(t, "2048", headers["Content-Length"])

	_, _, err = c.PresignPut(context.Background(), "", "image/jpeg", 1)
	assert.Error(t, err)
}

func TestFileURL(t *testing.T) {
	c := &Client{cfg: S3Config{Region: "eu-west-1", Bucket: "b", PublicBase: "https://cdn.example.com/"}}
	assert.Equal(t, "https://cdn.example.com/k.png", c.FileURL("k.png"))

	c.cfg.PublicBase = ""
	assert.Equal(t, "https://b.s3.eu-west-1.amazonaws.com/k.png", c.FileURL("k.png"))

	var nilClient *Client
	assert.Equal(t, "", nilClient.FileURL("k.png"))
}
