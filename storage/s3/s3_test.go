package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/kbukum/linguist/storage"
	"github.com/kbukum/linguist/storage/s3/s3test"
)

func newTestStorage(t *testing.T) (*Storage, *s3test.Server) {
	t.Helper()
	srv := s3test.New(t)
	s, err := New(context.Background(), Config{
		Bucket:    s3test.Bucket,
		Endpoint:  srv.URL,
		AccessKey: "test",
		SecretKey: "test",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, srv
}

func TestStorage_RoundTrip(t *testing.T) {
	s, srv := newTestStorage(t)
	ctx := context.Background()

	if err := s.Upload(ctx, "abc/audio", strings.NewReader("hello")); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	ok, err := s.Exists(ctx, "abc/audio")
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v", ok, err)
	}

	rc, err := s.Download(ctx, "abc/audio")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != "hello" {
		t.Errorf("data = %q", data)
	}

	if err := s.Delete(ctx, "abc/audio"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if keys := srv.Keys(); len(keys) != 0 {
		t.Errorf("keys after delete = %v", keys)
	}
}

func TestStorage_Missing(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()

	if _, err := s.Download(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Download err = %v, want ErrNotFound", err)
	}
	ok, err := s.Exists(ctx, "nope")
	if err != nil || ok {
		t.Errorf("Exists = %v, %v", ok, err)
	}
	if err := s.Delete(ctx, "nope"); err != nil {
		t.Errorf("Delete of missing object: %v", err)
	}
}

func TestStorage_List(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()
	for _, p := range []string{"a/entry.json", "a/audio", "b/entry.json"} {
		if err := s.Upload(ctx, p, strings.NewReader(p)); err != nil {
			t.Fatalf("Upload %s: %v", p, err)
		}
	}

	files, err := s.List(ctx, "a/")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(files) != 2 || files[0].Path != "a/audio" || files[1].Path != "a/entry.json" {
		t.Errorf("files = %+v", files)
	}
	if files[1].Size != int64(len("a/entry.json")) {
		t.Errorf("size = %d", files[1].Size)
	}

	files, err = s.List(ctx, "zzz")
	if err != nil || files == nil || len(files) != 0 {
		t.Errorf("empty list = %v, %v", files, err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Bucket: "b"}, false},
		{"missing bucket", Config{}, true},
		{"half credentials", Config{Bucket: "b", AccessKey: "k"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.ApplyDefaults()
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
