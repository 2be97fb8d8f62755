// Package autoload configures the global logger on import. It reads
// LOG_DEBUG and LOG_PRETTY_FORMAT directly from the environment; the
// -env flag machinery must not run inside init.
package autoload

import (
	"github.com/kelseyhightower/envconfig"

	logx "github.com/velourlabs/scentbot/pkg/logger"
)

func init() {
	var conf logx.Config
	if err := envconfig.Process("LOG", &conf); err != nil {
		conf = *logx.DefaultConfig
	}
	logx.Init(conf)
}
