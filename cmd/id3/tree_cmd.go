package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type treeCmdConfig struct {
	*rootCmdConfig
	treeInput string
}

func treeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &treeCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show a model",
		Long:  `Show the decision tree in a model`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.exit(1, err)
			}
			t, err := loadModel(config.Context(), config.treeInput)
			if err != nil {
				config.exit(3, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t)
		},
	}
	cmd.Flags().StringVarP(&(config.treeInput), "model", "m", "", "path to a file from which the model to show will be read (required)")
	return cmd
}

func (tcc *treeCmdConfig) Validate() error {
	if tcc.treeInput == "" {
		return fmt.Errorf("required model flag was not set")
	}
	return nil
}
