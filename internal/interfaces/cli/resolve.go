package cli

import (
	"github.com/spf13/cobra"

	"github.com/turtacn/ChemVault/pkg/types/chemistry"
)

// resolveOutput is the resolve command's JSON shape: the full result plus
// the quality score callers usually want alongside it.
type resolveOutput struct {
	Result  *chemistry.ResolutionResult `json:"result"`
	Quality chemistry.QualityLevel      `json:"quality"`
}

func newResolveCommand() *cobra.Command {
	var (
		nameHint     string
		registryHint string
	)

	cmd := &cobra.Command{
		Use:   "resolve <descriptor>",
		Short: "Resolve a structural descriptor into a full chemical record",
		Long:  "Resolve parses the descriptor, computes its property set, and runs the\nidentity resolution chain, printing the merged record as JSON.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := getCLIContext(cmd)
			if err != nil {
				return err
			}

			hints := chemistry.ResolutionHints{
				Name:           nameHint,
				RegistryNumber: registryHint,
			}
			result, err := cliCtx.Service.ResolveAndEnrich(cmd.Context(), args[0], hints)
			if err != nil {
				return err
			}

			return printJSON(cmd, resolveOutput{
				Result:  result,
				Quality: cliCtx.Service.QualitySummary(result),
			})
		},
	}

	cmd.Flags().StringVar(&nameHint, "name", "", "name hint from the inventory record")
	cmd.Flags().StringVar(&registryHint, "registry-number", "", "registry number hint from the inventory record")
	return cmd
}
