package cli

import (
	"github.com/spf13/cobra"

	"github.com/turtacn/ChemVault/internal/domain/structure"
)

func newPropertiesCommand() *cobra.Command {
	var withValidation bool

	cmd := &cobra.Command{
		Use:   "properties <descriptor>",
		Short: "Compute physicochemical properties for a structural descriptor",
		Long:  "Properties runs only the property calculator, without the identity\nresolution chain. Useful for quick descriptor checks.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := getCLIContext(cmd)
			if err != nil {
				return err
			}

			calc := structure.NewCalculator(cliCtx.Toolkit, cliCtx.Logger)
			if withValidation {
				return printJSON(cmd, calc.Validate(args[0]))
			}
			return printJSON(cmd, calc.Compute(args[0]))
		},
	}

	cmd.Flags().BoolVar(&withValidation, "validate", false, "print a structural validation report instead of properties")
	return cmd
}
