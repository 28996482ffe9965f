// Command keycachectl inspects key configs and the redis keys they resolve to.
//
//	keycachectl --keys cache.xml list
//	keycachectl --keys cache.xml --prefix app: resolve HashDb Users 42 EU
//	KEYCACHE_REDIS_ADDR=redis:6379 keycachectl --keys cache.xml ttl DataDb Profile 7
package main

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

func main() {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := newRootCmd(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
