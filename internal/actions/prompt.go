package actions

import (
	"context"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// prompter asks the user for input during the interactive menu
type prompter interface {
	Choose(title string, options []huh.Option[string]) (string, error)
	Input(title string, validate func(string) error) (string, error)
	Wait(ctx context.Context, title string, action func(context.Context) error) error
}

// huhPrompter prompts on the terminal
type huhPrompter struct{}

func (huhPrompter) Choose(title string, options []huh.Option[string]) (string, error) {
	var value string
	err := huh.NewSelect[string]().
		Height(12).
		Title(title).
		Options(options...).
		Value(&value).
		Run()
	return value, err
}

func (huhPrompter) Input(title string, validate func(string) error) (string, error) {
	var value string
	input := huh.NewInput().
		Title(title).
		Value(&value)
	if validate != nil {
		input = input.Validate(validate)
	}
	err := input.Run()
	return value, err
}

func (huhPrompter) Wait(ctx context.Context, title string, action func(context.Context) error) error {
	return spinner.New().Title(title).Context(ctx).ActionWithErr(action).Run()
}
