package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess     = 0 // Stage completed
	ExitDataQuality = 1 // Stage ran but surfaced data-quality problems
	ExitError       = 2 // Configuration or runtime error
)

// DataQualityError indicates that the stage ran to completion but the data
// needs manual follow-up (e.g. sample rows no rater labeled).
type DataQualityError struct {
	Message string
}

func (e *DataQualityError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var dqErr *DataQualityError
		if errors.As(err, &dqErr) {
			os.Exit(ExitDataQuality)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
