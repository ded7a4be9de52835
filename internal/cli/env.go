package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env [program]",
		Short: "Print the environment a spawned installation receives",
		Long: "Print the environment a spawned installation receives. Without an argument " +
			"the currently selected installation is used.",
		Args: cobra.MaximumNArgs(1),
		RunE: runEnv,
	}
}

func runEnv(cmd *cobra.Command, args []string) error {
	app, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	f, err := app.finder(nil)
	if err != nil {
		return err
	}

	program := ""
	if len(args) == 1 {
		program = args[0]
	} else if program, err = f.Find(commandContext(cmd)); err != nil {
		return err
	}

	env := f.Environment(program)
	if outputJSON {
		data, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", k, env[k])
	}
	return nil
}
