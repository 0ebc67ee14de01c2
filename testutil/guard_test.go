package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

func TestNarrationImportForbiddenPredicate(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"zoocore/internal/report", true},
		{"golang.org/x/text/message", true},
		{"golang.org/x/text/language", true},
		{"golang.org/x/text/unicode/norm", false},
		{"zoocore/internal/reporting", false},
	}
	for _, c := range cases {
		if got := NarrationImportForbidden(c.in); got != c.want {
			t.Fatalf("NarrationImportForbidden(%q)=%v want %v", c.in, got, c.want)
		}
	}
}

func TestInternalImportForbiddenPredicate(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"example.com/mod/internal/x", true},
		{"example.com/mod/pkg/x", false},
	}
	for _, c := range cases {
		if got := InternalImportForbidden(c.in); got != c.want {
			t.Fatalf("InternalImportForbidden(%q)=%v want %v", c.in, got, c.want)
		}
	}
}

func TestDirectImportViolations(t *testing.T) {
	dir := t.TempDir()
	src := []byte("package tmp\nimport (\n\t\"fmt\"\n\t\"example.com/mod/internal/secret\"\n)\nfunc X(){fmt.Println(secret.V)}")
	if err := os.WriteFile(filepath.Join(dir, "x.go"), src, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "x_test.go"), []byte("package tmp\nimport _ \"example.com/mod/internal/other\"\n"), 0o600); err != nil {
		t.Fatalf("write test file: %v", err)
	}
	viols, err := directImportViolations(dir, InternalImportForbidden)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(viols) != 1 || !strings.Contains(viols[0], "internal/secret") {
		t.Fatalf("expected single violation from non-test file, got %v", viols)
	}
	AssertNoDirectImports(t, dir, func(string) bool { return false }, "none")
}

func TestTransitiveDependencyViolationsWalksGraph(t *testing.T) {
	leaf := &packages.Package{PkgPath: "zoocore/internal/report", Imports: map[string]*packages.Package{}}
	mid := &packages.Package{PkgPath: "zoocore/internal/core", Imports: map[string]*packages.Package{"zoocore/internal/report": leaf}}
	root := &packages.Package{PkgPath: "zoocore/cmd/zoosim", Imports: map[string]*packages.Package{"zoocore/internal/core": mid}}

	restore := loadPackages
	loadPackages = func(string) ([]*packages.Package, error) { return []*packages.Package{root}, nil }
	t.Cleanup(func() { loadPackages = restore })

	viols, err := transitiveDependencyViolations("./...", NarrationImportForbidden)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if len(viols) != 1 || viols[0] != "zoocore/internal/report" {
		t.Fatalf("expected report violation, got %v", viols)
	}

	loadPackages = func(string) ([]*packages.Package, error) { return nil, fmt.Errorf("load failed") }
	if _, err := transitiveDependencyViolations("./...", NarrationImportForbidden); err == nil {
		t.Fatalf("expected load error to propagate")
	}
}

type recordingFatal struct{ msgs []string }

func (r *recordingFatal) Fatalf(format string, args ...any) {
	r.msgs = append(r.msgs, fmt.Sprintf(format, args...))
}

func TestFailHelpers(t *testing.T) {
	rec := &recordingFatal{}
	failIfTransitiveViolations(rec, "reason", nil)
	failIfDirectViolations(rec, "reason", nil)
	if len(rec.msgs) != 0 {
		t.Fatalf("expected no failures for empty violations")
	}
	failIfTransitiveViolations(rec, "rules stay pure", []string{"a"})
	failIfDirectViolations(rec, "rules stay pure", []string{"b"})
	if len(rec.msgs) != 2 || !strings.Contains(rec.msgs[0], "rules stay pure") {
		t.Fatalf("unexpected failure messages %v", rec.msgs)
	}
}
