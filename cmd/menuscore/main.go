package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/MikeSquared-Agency/Menuscore/internal/nutrition"
)

// Exit codes for different failure modes
const (
	ExitSuccess    = 0 // Ranked, or nothing to rank
	ExitError      = 1 // Configuration or runtime error
	ExitParseError = 2 // CSV is missing required columns
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var pe *nutrition.ParseError
	if errors.As(err, &pe) {
		return ExitParseError
	}
	return ExitError
}
