// Package prompt wraps the interactive confirmation used before a sync run
// is allowed to write.
package prompt

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted reports that the operator interrupted the prompt.
var ErrAborted = errors.New("prompt: aborted")

// Confirm asks a yes/no question on the terminal. Interrupts (Ctrl-C) are
// reported as ErrAborted.
func Confirm(ctx context.Context, message string, defaultValue bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var out bool
	question := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(question, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
