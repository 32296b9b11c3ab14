package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*rootCmdConfig
	treeInput string
	dataInput string
	table     string
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a model",
		Long:  `Test the performance of a model against a labeled set of data`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.exit(1, err)
			}
			ctx := config.Context()
			t, err := loadModel(ctx, config.treeInput)
			if err != nil {
				config.exit(3, err)
			}
			testingSet, err := config.loadDataset(ctx, config.dataInput, config.table)
			if err != nil {
				config.exit(2, fmt.Errorf("reading testing set: %v", err))
			}
			config.Logf("Testing tree against testset with %d samples...", testingSet.Count())
			successRate, errorCount, err := t.Test(ctx, testingSet)
			if err != nil {
				config.exit(4, fmt.Errorf("testing tree: %v", err))
			}
			config.Logf("Done")
			fmt.Fprintf(cmd.OutOrStdout(), "%f success rate, failed to make a prediction for %d samples\n", successRate, errorCount)
		},
	}
	cmd.Flags().StringVarP(&(config.dataInput), "data", "d", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with labeled data to test the model against (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringVar(&(config.table), "table", defaultTable, "table or collection holding the data on database inputs")
	cmd.Flags().StringVarP(&(config.treeInput), "model", "m", "", "path to a file from which the model to test will be read (required)")
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if tcc.treeInput == "" {
		return fmt.Errorf("required model flag was not set")
	}
	return nil
}
