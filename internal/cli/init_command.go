package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/projinfo/internal/config"
)

const (
	initUse                = "init"
	initShortDescription   = "write a starter configuration file"
	initLongDescription    = `Write a configuration file with every supported key.
By default the file is created in the working directory; use --global to write it under the home directory.`
	globalFlagName         = "global"
	globalFlagDescription  = "write the global configuration instead of the local one"
	forceFlagName          = "force"
	forceFlagDescription   = "overwrite an existing configuration file"
	initializedFileMessage = "Configuration written to %s\n"
)

// createInitCommand returns the init subcommand.
func createInitCommand(app *application) *cobra.Command {
	var writeGlobal bool
	var overwrite bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{Target: target, Force: overwrite})
			if initError != nil {
				return initError
			}
			fmt.Fprintf(app.stdout, initializedFileMessage, writtenPath)
			return nil
		},
	}
	initCommand.Flags().BoolVar(&writeGlobal, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&overwrite, forceFlagName, false, forceFlagDescription)
	return initCommand
}
