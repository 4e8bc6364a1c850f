package main

import (
	"fmt"
	"os"

	"songshelf/internal/actions"
)

func main() {
	app := actions.NewApp()

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
