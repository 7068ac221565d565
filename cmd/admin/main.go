package main

import (
	"fmt"
	"os"

	"review-lifecycle-api/app"
	"review-lifecycle-api/internal/cli"
)

func connect() (*cli.Deps, error) {
	backend, err := app.Connect()
	if err != nil {
		return nil, err
	}

	return &cli.Deps{
		Services: backend.Services,
		Tokens:   backend.Tokens,
		Close:    backend.Close,
	}, nil
}

func main() {
	if err := cli.NewRootCmd(connect).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
