package listflags

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestAddAllFlag(t *testing.T) {
	var all bool
	cmd := &cobra.Command{Use: "list"}
	AddAllFlag(cmd, &all, "")

	flag := cmd.Flags().Lookup("all")
	if flag == nil {
		t.Fatal("expected --all flag")
	}
	if flag.Usage != "Include all statuses" {
		t.Fatalf("unexpected usage %q", flag.Usage)
	}
	if err := cmd.Flags().Parse([]string{"--all"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if !all {
		t.Fatal("expected --all to set target")
	}
}

func TestAddAllFlagWithoutTarget(t *testing.T) {
	cmd := &cobra.Command{Use: "list"}
	AddAllFlag(cmd, nil, "Include archived projects")

	if got := cmd.Flags().Lookup("all").Usage; got != "Include archived projects" {
		t.Fatalf("unexpected usage %q", got)
	}
}

func TestAddJSONFlag(t *testing.T) {
	var asJSON bool
	cmd := &cobra.Command{Use: "list"}
	AddJSONFlag(cmd, &asJSON)
	if err := cmd.Flags().Parse([]string{"--json"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if !asJSON {
		t.Fatal("expected --json to set target")
	}
}
