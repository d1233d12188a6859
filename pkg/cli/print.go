package cli

import (
	"context"
	"fmt"

	"github.com/getmockd/phiremock/pkg/cli/internal/output"
)

// printResult outputs a single operation result.
//
// Contract: when --json is active, ONLY the JSON encoding of data is written
// to stdout. Human-readable prose (progress messages, hints) must go to stderr
// or be omitted entirely. textFn is called only in text mode.
func printResult(data any, textFn func()) {
	if jsonOutput {
		_ = output.JSON(data)
		return
	}
	textFn()
}

// printList outputs a collection of items. Same contract as printResult.
func printList(data any, textFn func()) {
	if jsonOutput {
		_ = output.JSON(data)
		return
	}
	textFn()
}

// actionResult is the JSON output of commands without a payload.
type actionResult struct {
	Target string `json:"target"`
	Action string `json:"action"`
}

// runVoid runs a call without a result and reports it.
func runVoid(ctx context.Context, target, action, message string, call func(context.Context) error) error {
	if err := call(ctx); err != nil {
		return err
	}
	printResult(actionResult{Target: target, Action: action}, func() {
		fmt.Println(message)
	})
	return nil
}
