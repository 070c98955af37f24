package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tayloree/fabric-chat/internal/catalog"
	"github.com/tayloree/fabric-chat/internal/chat"
	"github.com/tayloree/fabric-chat/internal/display"
)

// Exit codes are part of the scripting contract.
const (
	ExitSuccess     = 0 // answered, listed or printed
	ExitNotFound    = 1 // no fabric matched the question or filters
	ExitInvalidArgs = 2 // bad flags, arguments or config
	ExitUpstream    = 3 // the dataset could not be loaded
	ExitInternal    = 4 // anything else
)

// cliError is what every failing command resolves to before it is printed.
type cliError struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
	ExitCode    int      `json:"exitCode"`
}

func (e *cliError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func newCLIError(code string, exit int, message string, suggestions ...string) *cliError {
	return &cliError{Code: code, Message: message, Suggestions: suggestions, ExitCode: exit}
}

func invalidArgsError(message string, suggestions ...string) error {
	return newCLIError("INVALID_ARGS", ExitInvalidArgs, message, suggestions...)
}

func notFoundError(message string, suggestions ...string) error {
	return newCLIError("NOT_FOUND", ExitNotFound, message, suggestions...)
}

// datasetError reports a failed load with the wording the chat greets with.
// The underlying cause is kept as the first suggestion.
func datasetError(err *catalog.LoadError) *cliError {
	return newCLIError("UPSTREAM_ERROR", ExitUpstream, chat.LoadFailureText,
		err.Error(),
		"fabricbot --dataset path/to/fabrics.json ask tweed",
	)
}

// classifyCLIError maps err to a cliError. Typed errors from the catalog and
// chat packages are matched first, then cobra's usage messages.
func classifyCLIError(err error) *cliError {
	if err == nil {
		return nil
	}

	var typed *cliError
	if errors.As(err, &typed) {
		return typed
	}

	var loadErr *catalog.LoadError
	switch {
	case errors.As(err, &loadErr):
		return datasetError(loadErr)
	case errors.Is(err, chat.ErrEmptyQuestion):
		return newCLIError("INVALID_ARGS", ExitInvalidArgs,
			"please provide a question",
			`fabricbot ask "What is the Tweed Multi fabric?"`,
			"fabricbot presets",
		)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return newCLIError("INTERNAL_ERROR", ExitInternal, "interrupted: "+err.Error())
	}

	if usage, ok := classifyUsageError(strings.TrimSpace(err.Error())); ok {
		return usage
	}
	return newCLIError("INTERNAL_ERROR", ExitInternal,
		strings.TrimSpace(err.Error()),
		"Run `fabricbot --help` for usage details.",
	)
}

// classifyUsageError recognises cobra and pflag parse failures, which are
// only available as text.
func classifyUsageError(msg string) (*cliError, bool) {
	switch {
	case strings.Contains(msg, "unknown command"):
		suggestions := []string{
			`fabricbot ask "What is the Tweed Multi fabric?"`,
			"fabricbot list --colorway orange",
		}
		if bad := extractUnknownValue(msg, "unknown command"); bad != "" {
			if cmd, ok := closestMatch(strings.ToLower(bad), knownCommands, 2); ok {
				suggestions = append([]string{fmt.Sprintf("Did you mean `%s`?", cmd)}, suggestions...)
			}
		}
		return newCLIError("INVALID_ARGS", ExitInvalidArgs, msg, suggestions...), true

	case strings.Contains(msg, "unknown flag"), strings.Contains(msg, "unknown shorthand flag"):
		suggestions := []string{
			"fabricbot list --manufacturer Acme",
			"fabricbot --dataset fabrics.json ask tweed",
		}
		if bad := extractUnknownValue(msg, "unknown flag"); bad != "" {
			if name, ok := resolveFlagName(strings.TrimLeft(bad, "-")); ok {
				suggestions = append([]string{fmt.Sprintf("Try `--%s`.", name)}, suggestions...)
			}
		}
		return newCLIError("INVALID_ARGS", ExitInvalidArgs, msg, suggestions...), true

	case strings.Contains(msg, "flag needs an argument"),
		strings.Contains(msg, "invalid argument"),
		strings.Contains(msg, "accepts "):
		return newCLIError("INVALID_ARGS", ExitInvalidArgs, msg,
			"fabricbot list --limit 10",
			"fabricbot --dataset fabrics.json ask tweed",
		), true
	}
	return nil, false
}

// writeCLIError prints err as JSON when asJSON is set, otherwise as styled
// text: the headline through display.PrintError, suggestions indented below.
func writeCLIError(w io.Writer, err *cliError, asJSON bool) error {
	if err == nil {
		return nil
	}
	if asJSON {
		return json.NewEncoder(w).Encode(struct {
			Error *cliError `json:"error"`
		}{err})
	}

	headline := fmt.Sprintf("error[%s]: %s", strings.ToLower(err.Code), err.Message)
	for _, line := range strings.Split(headline, "\n") {
		display.PrintError(w, line)
	}
	if len(err.Suggestions) > 0 {
		fmt.Fprintln(w, "suggestions:")
		for _, s := range err.Suggestions {
			fmt.Fprintln(w, "  "+s)
		}
	}
	return nil
}
