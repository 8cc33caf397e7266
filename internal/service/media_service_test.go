package service

import (
	"numiviz_backend/internal/util"
	"testing"
)

func TestAllowedMimeTypes(t *testing.T) {
	cases := []struct {
		kind string
		want string
	}{
		{"image", util.MimeImage},
		{"video", util.MimeVideo},
		{"file", util.MimePDF},
	}
	for _, tc := range cases {
		allowed := allowedMimeTypes(tc.kind)
		found := false
		for _, m := range allowed {
			if m == tc.want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("%s: %q absent de %v", tc.kind, tc.want, allowed)
		}
	}

	if got := allowedMimeTypes("autre"); len(got) == 0 {
		t.Fatalf("une catégorie inconnue garde une liste par défaut")
	}
}

func TestAllowedVideoExt(t *testing.T) {
	for _, ext := range []string{".mp4", ".MOV", ".webm"} {
		if !allowedVideoExt(ext) {
			t.Fatalf("%s doit être accepté", ext)
		}
	}
	for _, ext := range []string{".exe", ".pdf", ""} {
		if allowedVideoExt(ext) {
			t.Fatalf("%q doit être refusé", ext)
		}
	}
}
