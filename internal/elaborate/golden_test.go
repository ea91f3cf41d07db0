package elaborate

import (
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

// TestGoldenFixtures runs every testdata/*.txtar archive: "in.decl" is
// elaborated fresh, and the sorted set of diagnostic codes produced (or the
// literal "OK" when none fire) must match "want.txt" exactly.
func TestGoldenFixtures(t *testing.T) {
	paths, err := filepath.Glob("testdata/*.txtar")
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no golden fixtures found")
	}

	for _, path := range paths {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			archive, err := txtar.ParseFile(path)
			if err != nil {
				t.Fatalf("parsing archive: %v", err)
			}
			var src, want string
			for _, f := range archive.Files {
				switch f.Name {
				case "in.decl":
					src = string(f.Data)
				case "want.txt":
					want = string(f.Data)
				}
			}
			if src == "" || want == "" {
				t.Fatalf("archive %s missing in.decl or want.txt", path)
			}

			e, _ := newTestElaborator()
			res := e.Elaborate(src)

			var got string
			if len(res.Diagnostics) == 0 {
				got = "OK"
			} else {
				codes := make([]string, len(res.Diagnostics))
				for i, d := range res.Diagnostics {
					codes[i] = string(d.Code)
				}
				sort.Strings(codes)
				got = strings.Join(codes, "\n")
			}

			if strings.TrimSpace(got) != strings.TrimSpace(want) {
				t.Fatalf("want:\n%s\ngot:\n%s", strings.TrimSpace(want), strings.TrimSpace(got))
			}
		})
	}
}
