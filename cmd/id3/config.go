package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

/*
applyConfigFile reads the configuration file at the given path and sets
every flag of the command that was not set on the command line and has a
value on the file. Values are looked up first under a section named after
the command and then at the top level, so a file like

	model: weather.model
	train:
	  log: weather.log

gives the model flag to every command and the log flag only to train.
*/
func applyConfigFile(cmd *cobra.Command, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file %s: %v", path, err)
	}
	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed || f.Name == "config" {
			return
		}
		key := f.Name
		if sectioned := cmd.Name() + "." + f.Name; v.IsSet(sectioned) {
			key = sectioned
		} else if !v.IsSet(key) {
			return
		}
		if serr := cmd.Flags().Set(f.Name, v.GetString(key)); serr != nil {
			err = fmt.Errorf("setting %s from config file %s: %v", f.Name, path, serr)
		}
	})
	return err
}
