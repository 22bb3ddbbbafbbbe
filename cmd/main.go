package main

import (
	"log"
	"os"
	"runtime/pprof"

	"github.com/soden46/hyperlux-token/cli"
)

func main() {
	// Optional CPU profiling, enabled via HLT_CPUPROFILE=<file>.
	if path := os.Getenv("HLT_CPUPROFILE"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			log.Fatal("cannot create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("cannot start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	cli.RunCLI()
}
