package textutil

import "testing"

func TestNFCComposesHangul(t *testing.T) {
	decomposed := "\u1112\u1161\u11ab\u1100\u1173\u11af.txt"
	want := "\ud55c\uae00.txt"

	got := NFC(decomposed)
	if got != want {
		t.Fatalf("NFC(%q) = %q, want %q", decomposed, got, want)
	}
	if !NeedsNFC(decomposed) {
		t.Fatal("expected decomposed name to need normalization")
	}
	if NeedsNFC(want) {
		t.Fatal("expected composed name to be left alone")
	}
}

func TestNFCComposesLatin(t *testing.T) {
	if got := NFC("cafe\u0301"); got != "caf\u00e9" {
		t.Fatalf("NFC = %q, want %q", got, "caf\u00e9")
	}
	if NeedsNFC("plain-ascii.txt") {
		t.Fatal("ascii names never need normalization")
	}
}

// A leading dot names the file rather than starting an extension, so
// ".bashrc" collides as ".bashrc (1)" and never as " (1).bashrc".
func TestSplitExtKeepsDotfileWhole(t *testing.T) {
	if stem, ext := SplitExt(".bashrc"); stem != ".bashrc" || ext != "" {
		t.Fatalf("SplitExt(.bashrc) = (%q, %q), want (\".bashrc\", \"\")", stem, ext)
	}
}

func TestSplitExt(t *testing.T) {
	tests := []struct {
		name     string
		wantStem string
		wantExt  string
	}{
		{"report.txt", "report", ".txt"},
		{"archive.tar.gz", "archive.tar", ".gz"},
		{"README", "README", ""},
		{".profile", ".profile", ""},
		{"caf\u00e9.", "caf\u00e9", "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stem, ext := SplitExt(tt.name)
			if stem != tt.wantStem || ext != tt.wantExt {
				t.Errorf("SplitExt(%q) = (%q, %q), want (%q, %q)", tt.name, stem, ext, tt.wantStem, tt.wantExt)
			}
		})
	}
}
