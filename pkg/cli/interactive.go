package cli

import (
	"errors"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// createFormValues holds the answers of the interactive create form.
type createFormValues struct {
	Method  string
	URL     string
	Matcher string
	Status  string
	Body    string
}

// runCreateForm asks for the basic expectation fields and applies them to
// the create flags. Flags given on the command line are used as defaults.
func runCreateForm(cmd *cobra.Command) error {
	v := createFormValues{
		Method:  createConditions.method,
		URL:     createConditions.url,
		Matcher: "url",
		Status:  strconv.Itoa(createStatus),
		Body:    createResponseBody,
	}
	if v.Method == "" {
		v.Method = "GET"
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which HTTP method should match?").
				Options(
					huh.NewOption("GET", "GET"),
					huh.NewOption("POST", "POST"),
					huh.NewOption("PUT", "PUT"),
					huh.NewOption("PATCH", "PATCH"),
					huh.NewOption("DELETE", "DELETE"),
				).
				Value(&v.Method),
			huh.NewInput().
				Title("Which URL should match?").
				Placeholder("/api/v1/users").
				Value(&v.URL).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("url is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("How should the URL be compared?").
				Options(
					huh.NewOption("Equal to", "url"),
					huh.NewOption("Regular expression", "url-matches"),
					huh.NewOption("Contains", "url-contains"),
				).
				Value(&v.Matcher),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("What status code should it return?").
				Value(&v.Status).
				Validate(validateStatus),
			huh.NewText().
				Title("Response body").
				Placeholder(`{"status": "ok"}`).
				Value(&v.Body),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	return applyCreateForm(cmd, v)
}

// applyCreateForm writes the form answers into the create flags.
func applyCreateForm(cmd *cobra.Command, v createFormValues) error {
	if err := validateStatus(v.Status); err != nil {
		return err
	}
	fs := cmd.Flags()
	for _, name := range []string{"url", "url-matches", "url-contains"} {
		if err := fs.Set(name, ""); err != nil {
			return err
		}
	}
	sets := []struct{ name, value string }{
		{"method", v.Method},
		{v.Matcher, v.URL},
		{"status", v.Status},
		{"response-body", v.Body},
	}
	for _, s := range sets {
		if err := fs.Set(s.name, s.value); err != nil {
			return err
		}
	}
	return nil
}

func validateStatus(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 100 || n > 599 {
		return errors.New("status must be a number between 100 and 599")
	}
	return nil
}
