package storage

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
)

func TestIsNoSuchKey(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"minio code", minio.ErrorResponse{Code: "NoSuchKey"}, true},
		{"wrapped", fmt.Errorf("remove: %w", minio.ErrorResponse{Code: "NotFound"}), true},
		{"string fallback", errors.New("The specified key does not exist."), true},
		{"other", minio.ErrorResponse{Code: "AccessDenied", Message: "denied"}, false},
		{"missing bucket", minio.ErrorResponse{Code: "NoSuchBucket", StatusCode: http.StatusNotFound}, false},
		{"bare 404", minio.ErrorResponse{StatusCode: http.StatusNotFound}, true},
		{"unrelated text", errors.New("route not found"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsNoSuchKey(tc.err); got != tc.want {
				t.Fatalf("IsNoSuchKey(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestParseBucketLookup(t *testing.T) {
	if v, err := parseBucketLookup(" Path "); err != nil || v != minio.BucketLookupPath {
		t.Fatalf("unexpected lookup %v, %v", v, err)
	}
	if v, err := parseBucketLookup(""); err != nil || v != minio.BucketLookupAuto {
		t.Fatalf("unexpected lookup %v, %v", v, err)
	}
	if _, err := parseBucketLookup("virtual"); err == nil {
		t.Fatal("expected error for unknown lookup")
	}
}

func TestParsePublicEndpoint(t *testing.T) {
	host, secure, err := parsePublicEndpoint("https://cdn.mycv.guru")
	if err != nil || host != "cdn.mycv.guru" || !secure {
		t.Fatalf("unexpected result %q %v %v", host, secure, err)
	}
	if _, _, err := parsePublicEndpoint("localhost:9000"); err == nil {
		t.Fatal("expected error when scheme is missing")
	}
}

func TestContentDisposition(t *testing.T) {
	if got := ContentDisposition("Alex Morgan.pdf"); got != `attachment; filename="Alex Morgan.pdf"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if got := ContentDisposition(" "); got != "attachment; filename=resume.pdf" {
		t.Fatalf("unexpected disposition %q", got)
	}
}

func TestObjectKeys(t *testing.T) {
	first, second := NewPDFKey("user-1"), NewPDFKey("user-1")
	if first == second {
		t.Fatalf("every export must get its own key")
	}
	if !strings.HasPrefix(first, "generated-resumes/user-1/") || !strings.HasSuffix(first, ".pdf") {
		t.Fatalf("unexpected pdf key %q", first)
	}
	if got := PreviewKey(7); got != "thumbnails/resume/7/preview.jpg" {
		t.Fatalf("unexpected preview key %q", got)
	}
	if !strings.HasPrefix(PreviewKey(7), PreviewPrefix(7)) || strings.HasPrefix(PreviewKey(70), PreviewPrefix(7)) {
		t.Fatalf("preview prefix must cover only its own resume")
	}
}
