package main

import (
	"flag"
	"log"

	"stagehand/internal/di"
	"stagehand/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "path to the config file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "enable debug logging to stdout")
	flag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		log.Fatal(err)
	}
}
