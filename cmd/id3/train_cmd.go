package main

import (
	"fmt"
	"os"

	"github.com/pbanos/id3"
	"github.com/spf13/cobra"
)

type trainCmdConfig struct {
	*rootCmdConfig
	dataInput string
	table     string
	logOutput string
	output    string
	nodeStore string
	queue     string
}

func trainCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &trainCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a decision tree from a set of data to predict its last column, writing the log of the training and the resulting model.`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := config.Context()
			trainingSet, err := config.loadDataset(ctx, config.dataInput, config.table)
			if err != nil {
				config.exit(2, fmt.Errorf("reading training set: %v", err))
			}
			ns, err := nodeStore(config.nodeStore)
			if err != nil {
				config.exit(3, err)
			}
			defer ns.Close(ctx)
			q, closeQueue, err := taskQueue(config.queue)
			if err != nil {
				config.exit(3, err)
			}
			defer closeQueue()
			g := &id3.Grower{NodeStore: ns, Queue: q, Logger: config.logger()}
			var logFile *os.File
			if config.logOutput != "" {
				logFile, err = os.Create(config.logOutput)
				if err != nil {
					config.exit(4, fmt.Errorf("creating training log: %v", err))
				}
				g.Trace = id3.NewTrace(logFile)
			}
			config.Logf("Growing tree from a set with %d samples and %d attributes to predict %s ...", trainingSet.Count(), len(trainingSet.Columns())-1, trainingSet.Target())
			t, err := g.Grow(ctx, trainingSet)
			if logFile != nil {
				if cerr := logFile.Close(); err == nil && cerr != nil {
					err = fmt.Errorf("closing training log: %v", cerr)
				}
			}
			if err != nil {
				config.exit(5, fmt.Errorf("growing the tree: %v", err))
			}
			config.Logf("Done after %d rounds", g.Rounds())
			config.logger().Debugf("%v", t)
			err = writeModel(ctx, config.output, t)
			if err != nil {
				config.exit(6, fmt.Errorf("writing model: %v", err))
			}
		},
	}
	cmd.Flags().StringVarP(&(config.dataInput), "data", "d", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with data to use to grow the tree (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringVar(&(config.table), "table", defaultTable, "table or collection holding the data on database inputs")
	cmd.Flags().StringVarP(&(config.logOutput), "log", "l", "", "path to a file to which the log of the training will be written")
	cmd.Flags().StringVarP(&(config.output), "model", "m", "", "path to a file to which the model will be written, as JSON (.json), YML (.yml, .yaml) or text for any other extension (defaults to STDOUT as text)")
	cmd.Flags().StringVar(&(config.nodeStore), "node-store", "memory", "where to keep the nodes while growing the tree: memory, leveldb:<path> or a redis:// URL")
	cmd.Flags().StringVar(&(config.queue), "queue", "memory", "where to keep the pending tasks while growing the tree: memory or a redis:// URL")
	return cmd
}
