package format

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/parseltongue/parseltongue/parser"
	"github.com/dhamidi/parseltongue/python/ast"
)

var testcasesDir string
var testFilter string

func init() {
	flag.StringVar(&testcasesDir, "testcases", "testdata", "directory containing .pt test files")
	flag.StringVar(&testFilter, "filter", "", "filter test files by substring match on filename")
}

func TestMain(m *testing.M) {
	flag.Parse()
	os.Exit(m.Run())
}

// TestRoundTrip_Testcases renders every .pt file in the testcases directory
// and checks that parsing the rendered Python yields the same tree.
// Each file becomes a subtest: go test -run TestRoundTrip_Testcases/match
// Use -testcases to point at another corpus and -filter to select files.
func TestRoundTrip_Testcases(t *testing.T) {
	var files []string
	err := filepath.WalkDir(testcasesDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".pt") {
			if testFilter != "" && !strings.Contains(path, testFilter) {
				return nil
			}
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk testcases directory: %v", err)
	}
	if len(files) == 0 {
		t.Skipf("no .pt files found in %s", testcasesDir)
	}

	for _, file := range files {
		relPath, err := filepath.Rel(testcasesDir, file)
		if err != nil {
			relPath = filepath.Base(file)
		}
		testName := strings.ReplaceAll(relPath, string(filepath.Separator), "_")
		testName = strings.TrimSuffix(testName, ".pt")

		t.Run(testName, func(t *testing.T) {
			runRoundTripTest(t, file)
		})
	}
}

func runRoundTripTest(t *testing.T, filename string) {
	source, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}

	orig, err := parser.File(string(source), parser.WithFile(filename))
	if err != nil {
		t.Fatalf("failed to parse original file:\n%v", err)
	}

	formatted, err := Python(orig)
	if err != nil {
		t.Fatalf("formatter error: %v", err)
	}

	again, err := parser.File(formatted, parser.WithFile(filename+".py"))
	if err != nil {
		t.Errorf("formatted output does not parse:\n%v", err)
		t.Logf("\n=== Formatted output ===\n%s", formatted)
		return
	}

	want, got := ast.Dump(orig), ast.Dump(again)
	if want != got {
		t.Errorf("tree changed after round-trip formatting:\n%s", firstDifference(want, got))
		t.Logf("\n=== Formatted output ===\n%s", formatted)
		return
	}

	// Rendering is stable: a second pass produces the same text.
	second, err := Python(again)
	if err != nil {
		t.Fatalf("formatter error on second pass: %v", err)
	}
	if second != formatted {
		t.Errorf("formatting is not idempotent:\n%s", firstDifference(formatted, second))
	}
}

// firstDifference shows both strings around the first byte where they
// disagree.
func firstDifference(a, b string) string {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	from := max(i-60, 0)
	return "original:  ..." + a[from:min(i+60, len(a))] + "\nformatted: ..." + b[from:min(i+60, len(b))]
}
