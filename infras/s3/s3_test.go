package s3_test

import (
	"strings"
	"testing"

	"guesthouse/config"
	"guesthouse/infras/otel/mocks"
	"guesthouse/infras/s3"

	"github.com/stretchr/testify/assert"
)

func TestObjectName(t *testing.T) {
	name := s3.ObjectName("Floor Plan.PNG")

	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.Len(t, name, 36+len(".png"))
	assert.NotEqual(t, name, s3.ObjectName("Floor Plan.PNG"))
	assert.Len(t, s3.ObjectName("noext"), 36)
}

func TestGetObjectNameFromURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.BucketName = "guesthouse"
	cfg.External.S3.PublicDomain = "https://cdn.example.com/"
	cfg.External.S3.APIEndpoint = "http://localhost:9000"

	client := s3.New(cfg, mocks.NewOtel())

	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "public domain", url: "https://cdn.example.com/room/abc.png", want: "room/abc.png"},
		{name: "api endpoint", url: "http://localhost:9000/guesthouse/documents/2025/03/01/x.pdf", want: "documents/2025/03/01/x.pdf"},
		{name: "foreign url", url: "https://elsewhere.org/room/abc.png", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, client.GetObjectNameFromURL("", tt.url))
		})
	}
}

func TestGetObjectNameFromURL_NoPublicDomain(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.BucketName = "guesthouse"
	cfg.External.S3.APIEndpoint = "http://localhost:9000/"

	client := s3.New(cfg, mocks.NewOtel())

	assert.Equal(t, "slider/a.jpg", client.GetObjectNameFromURL("", "http://localhost:9000/guesthouse/slider/a.jpg"))
	assert.Equal(t, "reports/r.pdf", client.GetObjectNameFromURL("archive", "http://localhost:9000/archive/reports/r.pdf"))
	assert.Empty(t, client.GetObjectNameFromURL("", "/slider/a.jpg"))
}
