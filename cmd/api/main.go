// Package main is the entry point for the travel recommendation API.
// Its sole responsibility is running the command tree; wiring lives in
// internal/cmd and no business logic belongs here.
package main

import (
	"context"
	"os"

	internalcmd "github.com/guy32807/travel-recommentation/internal/cmd"
)

func main() {
	// Commands print their own errors; only the exit code is left.
	if err := internalcmd.RootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
