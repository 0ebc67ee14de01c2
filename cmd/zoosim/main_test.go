package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRunDefaultScenario(t *testing.T) {
	out, _, err := execute(t, "run")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "Giraffe Melman accommodated. Remaining enclosure square: 800\n" +
		"Cannot accommodate Lion Simba: The enclosure has no water\n" +
		"Total food for all animals: 10\n"
	if out != want {
		t.Fatalf("unexpected narration:\n%s\nwant:\n%s", out, want)
	}
}

func TestRunRussianLocale(t *testing.T) {
	out, _, err := execute(t, "run", "--locale", "ru-RU")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, fragment := range []string{"В вольере нет водоёма", "Общее количество еды для животных: 10"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in narration, got:\n%s", fragment, out)
		}
	}
}

func TestRunLocaleFromEnvironment(t *testing.T) {
	t.Setenv("ZOOCORE_LOCALE", "ru")
	out, _, err := execute(t, "run")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "Нельзя подселить Lion Simba") {
		t.Fatalf("expected russian narration, got:\n%s", out)
	}
}

const wetSavanna = `
name: wet-savanna
species:
  - {name: Giraffe, biome: Savanna, square: 200, food: leaves}
  - {name: Zebra, biome: Savanna, square: 150, food: grass}
enclosures:
  - {key: savanna, biome: Savanna, capacity: 1000, has_water: true}
animals:
  - {name: Melman, species: Giraffe, food_amount: 10}
  - {name: Marty, species: Zebra, food_amount: 12.5}
steps:
  - {action: admit, animal: Melman, enclosure: savanna}
  - {action: admit, animal: Marty, enclosure: savanna}
  - {action: report_food}
`

func writeScenario(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(wetSavanna), 0o600); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return path
}

func TestRunScenarioFileWithSumModel(t *testing.T) {
	t.Setenv("ZOOCORE_CAPACITY_MODEL", "sum")
	out, _, err := execute(t, "run", "--scenario", writeScenario(t))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "Giraffe Melman accommodated. Remaining enclosure square: 800\n" +
		"Zebra Marty accommodated. Remaining enclosure square: 650\n" +
		"Total food for all animals: 22.5\n"
	if out != want {
		t.Fatalf("unexpected narration:\n%s\nwant:\n%s", out, want)
	}
}

func TestRunScenarioFromEnvironmentWithDietWarning(t *testing.T) {
	t.Setenv("ZOOCORE_SCENARIO", writeScenario(t))
	_, stderr, err := execute(t, "run")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stderr, "admission warning") || !strings.Contains(stderr, "diet_mismatch_warning") {
		t.Fatalf("expected diet warning logged, got:\n%s", stderr)
	}
}

func TestRunTraceAndMetrics(t *testing.T) {
	t.Setenv("ZOOCORE_METRICS", "prometheus")
	_, stderr, err := execute(t, "run", "--trace", "--print-metrics")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stderr, `"operation":"admit_animal"`) {
		t.Fatalf("expected JSON trace spans, got:\n%s", stderr)
	}
	if !strings.Contains(stderr, `zoo_operations_total[operation="admit_animal" status="success"] 1`) {
		t.Fatalf("expected prometheus counter dump, got:\n%s", stderr)
	}

	t.Setenv("ZOOCORE_METRICS", "expvar")
	_, stderr, err = execute(t, "run", "--print-metrics")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stderr, "durations_ms_total") || !strings.Contains(stderr, "remaining_square") {
		t.Fatalf("expected expvar snapshot, got:\n%s", stderr)
	}
}

func TestRunVerboseLogsDebug(t *testing.T) {
	_, stderr, err := execute(t, "run", "-v")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stderr, "running scenario") || !strings.Contains(stderr, "scenario finished") {
		t.Fatalf("expected debug and info logs, got:\n%s", stderr)
	}
}

func TestCheckCommand(t *testing.T) {
	out, _, err := execute(t, "check", "--animal", "Simba", "--enclosure", "forest")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if out != "Cannot accommodate Lion Simba: Biome mismatch\n" {
		t.Fatalf("unexpected check output %q", out)
	}

	out, _, err = execute(t, "check", "--animal", "Melman", "--enclosure", "savanna")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if out != "Giraffe Melman can be accommodated\n" {
		t.Fatalf("unexpected check output %q", out)
	}
}

func TestCommandErrors(t *testing.T) {
	cases := map[string][]string{
		"unknown animal":    {"check", "--animal", "Dumbo", "--enclosure", "savanna"},
		"unknown enclosure": {"check", "--animal", "Melman", "--enclosure", "arctic"},
		"missing flags":     {"check"},
		"missing scenario":  {"run", "--scenario", filepath.Join(t.TempDir(), "nope.yaml")},
		"extra args":        {"run", "now"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			if _, _, err := execute(t, args...); err == nil {
				t.Fatalf("expected error for %v", args)
			}
		})
	}

	t.Setenv("ZOOCORE_CAPACITY_MODEL", "volume")
	if _, _, err := execute(t, "run"); err == nil || !strings.Contains(err.Error(), "ZOOCORE_CAPACITY_MODEL") {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestMainExitsOnError(t *testing.T) {
	oldArgs, oldExit := os.Args, exitFunc
	t.Cleanup(func() { os.Args, exitFunc = oldArgs, oldExit })

	var code int
	exitFunc = func(c int) { code = c }
	os.Args = []string{"zoosim", "feed"}
	main()
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}
