package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/dataset/inputsample"
	"github.com/pbanos/id3/tree"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*rootCmdConfig
	dataInput    string
	table        string
	treeInput    string
	output       string
	unknownLabel string
	interactive  bool
	undefined    string
}

type writerFeatureValueRequester struct {
	w         io.Writer
	undefined string
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the label of a set of samples",
		Long:  `Use a model to predict the label of every sample of a set, writing the set with the predicted label appended to every row, or in place of the values of the predicted column if the set already has it`,
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
			if config.interactive {
				err = config.predictInteractively(cmd, t)
				if err != nil {
					config.exit(4, err)
				}
				return
			}
			samples, err := config.loadDataset(ctx, config.dataInput, config.table)
			if err != nil {
				config.exit(2, fmt.Errorf("reading samples: %v", err))
			}
			config.Logf("Predicting %s for %d samples...", t.Label, samples.Count())
			result, err := config.predict(cmd, t, samples)
			if err != nil {
				config.exit(4, err)
			}
			err = writeFile(config.output, result.WriteCSV)
			if err != nil {
				config.exit(5, fmt.Errorf("writing predictions: %v", err))
			}
			config.Logf("Done")
		},
	}
	cmd.Flags().StringVarP(&(config.dataInput), "data", "d", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with the samples to classify (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringVar(&(config.table), "table", defaultTable, "table or collection holding the samples on database inputs")
	cmd.Flags().StringVarP(&(config.treeInput), "model", "m", "", "path to a file from which the model will be read (required)")
	cmd.Flags().StringVarP(&(config.output), "result", "r", "", "path to a CSV file to which the samples and their predicted labels will be written (defaults to STDOUT)")
	cmd.Flags().StringVarP(&(config.unknownLabel), "unknown-label", "u", "", "label to write for samples the model cannot classify (by default they make the command fail)")
	cmd.Flags().BoolVarP(&(config.interactive), "interactive", "i", false, "ask for the values of a single sample on STDIN as the model needs them and print its predicted label")
	cmd.Flags().StringVar(&(config.undefined), "undefined-value", "?", "value to enter on interactive mode when the sample has no value for an attribute")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	if pcc.treeInput == "" {
		return fmt.Errorf("required model flag was not set")
	}
	return nil
}

func (pcc *predictCmdConfig) predict(cmd *cobra.Command, t *tree.Tree, samples *dataset.Dataset) (*dataset.Dataset, error) {
	ctx := pcc.Context()
	columns := append([]string(nil), samples.Columns()...)
	target := len(columns)
	for i, c := range columns {
		if c == t.Label {
			target = i
		}
	}
	if target == len(columns) {
		columns = append(columns, t.Label)
	}
	rows := make([][]string, 0, samples.Count())
	for i, s := range samples.Samples() {
		label, err := t.Predict(ctx, s)
		if err != nil {
			if !errors.Is(err, tree.ErrUnresolvedPrediction) || !cmd.Flags().Changed("unknown-label") {
				return nil, fmt.Errorf("predicting row %d: %v", i+2, err)
			}
			pcc.logger().WithField("row", i+2).Debugf("%v", err)
			label = pcc.unknownLabel
		}
		row := append(make([]string, 0, len(columns)), samples.Row(i)...)
		if target == len(row) {
			row = append(row, label)
		} else {
			row[target] = label
		}
		rows = append(rows, row)
	}
	return dataset.New(columns, rows)
}

func (pcc *predictCmdConfig) predictInteractively(cmd *cobra.Command, t *tree.Tree) error {
	ctx := pcc.Context()
	values, err := t.AttributeValues(ctx)
	if err != nil {
		return fmt.Errorf("reading model attributes: %v", err)
	}
	fvr := &writerFeatureValueRequester{cmd.ErrOrStderr(), pcc.undefined}
	label, err := t.Predict(ctx, inputsample.New(cmd.InOrStdin(), values, fvr, pcc.undefined))
	if err != nil {
		if !errors.Is(err, tree.ErrUnresolvedPrediction) || !cmd.Flags().Changed("unknown-label") {
			return fmt.Errorf("predicting sample: %v", err)
		}
		pcc.logger().Debugf("%v", err)
		label = pcc.unknownLabel
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", t.Label, label)
	return nil
}

func (wfvr *writerFeatureValueRequester) RequestValueFor(attribute string, values []string) error {
	_, err := fmt.Fprintf(wfvr.w, "Please provide the sample's %s:\n(valid values are %v or %s if undefined)\n", attribute, values, wfvr.undefined)
	return err
}

func (wfvr *writerFeatureValueRequester) RejectValueFor(attribute string, values []string, value string) error {
	_, err := fmt.Fprintf(wfvr.w, "%s is not a valid value for the sample's %s. Please provide one of %v or %s if undefined.\n", value, attribute, values, wfvr.undefined)
	return err
}
