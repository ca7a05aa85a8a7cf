package main

import (
	"fmt"
	"os"
)

func main() {
	app := newApp(newRunner(os.Stdout, os.Stderr))
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "quizstats: %v\n", err)
		os.Exit(1)
	}
}
