package main

import (
	"fmt"
	"os"

	"github.com/giovaniif/items-api/cmd/api"
	"github.com/giovaniif/items-api/config"
)

func main() {
	cfg := config.MustLoad()
	if err := api.StartServer(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
