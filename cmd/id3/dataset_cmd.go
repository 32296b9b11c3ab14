package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type datasetCmdConfig struct {
	*rootCmdConfig
	dataInput   string
	table       string
	output      string
	outputTable string
}

func datasetCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &datasetCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Copy sets of data",
		Long:  `Copy a set of data between CSV files and SQLite3, PostgreSQL or MongoDB databases`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := config.Context()
			s, err := config.loadDataset(ctx, config.dataInput, config.table)
			if err != nil {
				config.exit(2, fmt.Errorf("reading input set: %v", err))
			}
			err = config.writeDataset(ctx, config.output, config.outputTable, s)
			if err != nil {
				config.exit(3, fmt.Errorf("writing output set: %v", err))
			}
			config.Logf("Done")
		},
	}
	cmd.Flags().StringVarP(&(config.dataInput), "data", "d", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with the set to copy (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringVar(&(config.table), "table", defaultTable, "table or collection holding the set on database inputs")
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL to copy the set to (defaults to STDOUT in CSV)")
	cmd.Flags().StringVar(&(config.outputTable), "output-table", defaultTable, "table or collection to create on database outputs")
	return cmd
}
