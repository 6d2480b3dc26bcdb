// main is the entry point for the shieldstats CLI.
package main

import (
	"github.com/shieldstats/shieldstats/cmd"
	"github.com/shieldstats/shieldstats/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Cannot run command", err)
	}
	if err := cmd.StopProfiling(); err != nil {
		contract.LogWarn("Cannot stop profiling", err)
	}
}
