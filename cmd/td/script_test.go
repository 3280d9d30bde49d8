package main

import (
	"testing"

	"github.com/amonks/todoapp/internal/testsupport"
	"github.com/rogpeppe/go-internal/testscript"
)

func TestScripts(t *testing.T) {
	for _, dir := range []string{"project", "task", "tag", "today", "backup", "config"} {
		t.Run(dir, func(t *testing.T) {
			testscript.Run(t, testscript.Params{
				Dir: "testdata/" + dir,
				Setup: func(env *testscript.Env) error {
					return testsupport.SetupScriptEnv(t, env)
				},
				Cmds: testsupport.Commands(),
			})
		})
	}
}
