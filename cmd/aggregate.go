package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/spigell/hr-matcher/internal/aggregate"
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate TECHNICAL CULTURAL BEHAVIORAL",
	Short: "Combine three component scores into an overall match and status",
	Args:  cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		result, err := aggregateArgs(args)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

func init() {
	rootCmd.AddCommand(aggregateCmd)
}

func aggregateArgs(args []string) (aggregate.Result, error) {
	names := []string{"technical", "cultural", "behavioral"}
	scores := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return aggregate.Result{}, fmt.Errorf("parsing %s score %q: %w", names[i], arg, err)
		}
		scores[i] = v
	}

	return aggregate.Aggregate(scores[0], scores[1], scores[2])
}
