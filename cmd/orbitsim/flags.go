package main

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func bindFlags(v *viper.Viper, visit func(func(*pflag.Flag))) {
	v.SetEnvPrefix("ORBITSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	visit(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
	})
}
