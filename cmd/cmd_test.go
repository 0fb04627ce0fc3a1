package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/lizet96/consultorio-backend/database"
)

func TestNewRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()
	want := map[string]bool{"serve": false, "migrate": false, "seed": false}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}

	migrate, _, err := root.Find([]string{"migrate", "status"})
	if err != nil || migrate.Name() != "status" {
		t.Errorf("expected migrate status subcommand, got %v (%v)", migrate, err)
	}
}

func TestSeedCmd_Flags(t *testing.T) {
	cmd := seedCmd()
	for _, flag := range []string{"pacientes", "medicos", "citas", "seed"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("missing flag --%s", flag)
		}
	}
	if got := cmd.Flags().Lookup("pacientes").DefValue; got != "20" {
		t.Errorf("pacientes default = %s, want 20", got)
	}
}

func TestPrintStatus(t *testing.T) {
	applied := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	statuses := []database.MigrationStatus{
		{Version: 1, Name: "001_init.sql", Applied: true, AppliedAt: &applied},
		{Version: 2, Name: "002_next.sql"},
	}

	cmd := migrateCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	printStatus(cmd, statuses)

	out := buf.String()
	if !strings.Contains(out, "001_init.sql") || !strings.Contains(out, "2024-05-01 12:00:00") {
		t.Errorf("applied migration not listed: %s", out)
	}
	if !strings.Contains(out, "pending") {
		t.Errorf("pending migration not listed: %s", out)
	}
}
