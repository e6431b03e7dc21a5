package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/nuckage/internal/role"
	"github.com/san-kum/nuckage/internal/storage"
)

// run executes one CLI invocation from a fresh command tree.
func run(t *testing.T, args ...string) {
	t.Helper()
	root := newRootCmd()
	root.SetArgs(args)
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("nuckage %v: %v", args, err)
	}
}

// workspace moves the test into an empty directory and returns the
// absolute path of the bundled mass table.
func workspace(t *testing.T) string {
	t.Helper()
	mass, err := filepath.Abs(filepath.Join("..", "..", "etc", "mass.txt"))
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return mass
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestOutputFlagDefaults(t *testing.T) {
	root := newRootCmd()

	tests := []struct {
		cmd  string
		want string
	}{
		{"write", "sim.role"},
		{"export", "-"},
	}

	for _, tt := range tests {
		sub, _, err := root.Find([]string{tt.cmd})
		if err != nil {
			t.Fatal(err)
		}
		flag := sub.Flags().Lookup("out")
		if flag.DefValue != tt.want || flag.Value.String() != tt.want {
			t.Errorf("%s --out: default %q value %q, want %q", tt.cmd, flag.DefValue, flag.Value.String(), tt.want)
		}
	}

	if roleOut != "sim.role" || jsonOut != "-" {
		t.Errorf("flag variables clobbered: roleOut=%q jsonOut=%q", roleOut, jsonOut)
	}
}

func TestWriteDefaultOutput(t *testing.T) {
	mass := workspace(t)

	run(t, "--mass", mass, "new", "plan.yaml")
	run(t, "--mass", mass, "write", "plan.yaml", "--no-archive")

	if exists("-") {
		t.Error("role written to a file named -")
	}
	f, err := role.ReadFile("sim.role")
	if err != nil {
		t.Fatalf("default role file: %v", err)
	}
	if f.Output != "./test.root" || len(f.Chains) != 1 {
		t.Errorf("unexpected role %+v", f)
	}
}

func TestWriteArchives(t *testing.T) {
	mass := workspace(t)
	data := "archive"

	run(t, "--mass", mass, "new", "plan.yaml")
	run(t, "--mass", mass, "--data", data, "write", "plan.yaml", "-o", "be8.role")

	records, err := storage.New(data, nil).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 archived role, got %d", len(records))
	}
	if records[0].RolePath != "be8.role" || len(records[0].Chains) != 1 {
		t.Errorf("unexpected record %+v", records[0])
	}
}

func TestExportToFile(t *testing.T) {
	mass := workspace(t)

	run(t, "--mass", mass, "new", "plan.yaml")
	run(t, "--mass", mass, "export", "plan.yaml", "-o", "report.json")

	if !exists("report.json") {
		t.Error("report.json not written")
	}
	if exists("sim.role") || exists("-") {
		t.Error("export must not write a role file")
	}
}
