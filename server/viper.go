// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// NewViper produces a Viper instance configured with the standard conventions.
// The applicationName is used as the configuration file name, the environment prefix,
// and  to generate the path under /etc and $HOME to look for configuration files.
// Automatic environment mode is turned on.
func NewViper(applicationName string) *viper.Viper {
	v := viper.New()
	v.SetConfigName(applicationName)
	v.AddConfigPath(fmt.Sprintf("/etc/%s", applicationName))
	v.AddConfigPath(fmt.Sprintf("$HOME/.%s", applicationName))
	v.AddConfigPath(".")

	v.SetEnvPrefix(applicationName)
	v.AutomaticEnv()

	return v
}

// ParseAndBind parses the given flag set using the supplied arguments and then binds
// the flag set to the specified Viper instance.  If arguments is nil, os.Args[1:] is used instead.
func ParseAndBind(v *viper.Viper, flagSet *pflag.FlagSet, arguments []string) error {
	if arguments == nil {
		arguments = os.Args[1:]
	}

	if err := flagSet.Parse(arguments); err != nil {
		return err
	}

	return v.BindPFlags(flagSet)
}

// BindConfigFile extracts the path of the configuration file from a flagset.  If the given flag
// is set, its value is passed to v.SetConfigFile and this function returns true.
func BindConfigFile(v *viper.Viper, flagSet *pflag.FlagSet, flag string) bool {
	if f := flagSet.Lookup(flag); f != nil {
		if configFile := f.Value.String(); len(configFile) > 0 {
			v.SetConfigFile(configFile)
			return true
		}
	}

	return false
}

// Configure defines the standard flags, parses the arguments, and reads the configuration.
// A missing configuration file is tolerated when none was named on the command line, in
// which case defaults and the environment are all that configure the console.
func Configure(arguments []string, flagSet *pflag.FlagSet, v *viper.Viper) error {
	if flagSet.Lookup(FileFlag) == nil {
		flagSet.StringP(FileFlag, FileShorthand, "", "the configuration file to use.  Overrides the search path.")
	}

	if flagSet.Lookup(DebugFlag) == nil {
		flagSet.Bool(DebugFlag, false, "forces the console into debug mode")
	}

	if err := ParseAndBind(v, flagSet, arguments); err != nil {
		return err
	}

	explicit := BindConfigFile(v, flagSet, FileFlag)
	err := v.ReadInConfig()

	var notFound viper.ConfigFileNotFoundError
	if err != nil && !explicit && errors.As(err, &notFound) {
		err = nil
	}

	return err
}

// Unmarshal decodes the configuration subtree at key into target.  Field names follow the
// json tags on the target, and durations and comma-separated slices are converted from strings.
// A missing key leaves target untouched.
func Unmarshal(v *viper.Viper, key string, target interface{}) error {
	if !v.IsSet(key) {
		return nil
	}

	return v.UnmarshalKey(key, target, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "json"
		dc.Squash = true
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
}
