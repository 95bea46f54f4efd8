package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/agbru/factcalc/internal/app"
	apperrors "github.com/agbru/factcalc/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(0)
		}
		// Flag syntax errors are already reported by the flag package;
		// validation errors from the config layer are not.
		var configErr apperrors.ConfigError
		if errors.As(err, &configErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(apperrors.ExitErrorConfig)
	}

	exitCode := application.Run(context.Background(), os.Stdout)
	os.Exit(exitCode)
}
