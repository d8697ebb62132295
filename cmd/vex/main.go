package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/kobzarvs/vex/internal/app"
	"github.com/kobzarvs/vex/internal/hexfile"
)

func main() {
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}
	err := app.New(args).Run()
	if err == nil {
		return
	}
	var openErr *hexfile.OpenError
	switch {
	case errors.Is(err, app.ErrUsage):
		fmt.Println("Usage: vex [file]")
		os.Exit(1)
	case errors.As(err, &openErr):
		fmt.Printf("Error: %s\n", openErr.Error())
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, "vex:", err)
		os.Exit(1)
	}
}
