package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tayloree/fabric-chat/internal/chat"
	"golang.org/x/term"
)

// textOnlyCommands never switch to JSON on a non-TTY stdout: their output is
// a script, help text or a conversation.
var textOnlyCommands = map[string]bool{
	"completion": true,
	"help":       true,
	"chat":       true,
}

// knownShorthands maps single-character shorthands to whether they take a value.
var knownShorthands = map[byte]bool{
	'd': true, // --dataset
	'm': true, // --manufacturer
	'c': true, // --colorway
	't': true, // --type
	'q': true, // --query
	'n': true, // --limit
}

func isTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// hasFlag reports whether args carry any of the named long or short flags,
// with or without an inline value.
func hasFlag(args []string, names ...string) bool {
	for _, arg := range args {
		name, _ := splitFlag(arg)
		for _, want := range names {
			if name == want {
				return true
			}
		}
	}
	return false
}

func wantsJSON(args []string) bool { return hasFlag(args, "--json") }

// shouldAutoJSON switches data commands to JSON when stdout is piped, so
// agents get machine output without asking for it.
func shouldAutoJSON(args []string, stdoutIsTTY bool) bool {
	if stdoutIsTTY || len(args) == 0 {
		return false
	}
	if hasFlag(args, "--json", "--help", "-h") {
		return false
	}
	return !textOnlyCommands[firstCommand(args)]
}

// flagTakesValue reports whether arg is a known flag whose value is the
// next token.
func flagTakesValue(arg string) bool {
	switch {
	case strings.HasPrefix(arg, "--"):
		name, inline := splitFlag(strings.TrimPrefix(arg, "--"))
		spec, ok := knownFlags[name]
		return ok && spec.requiresValue && inline == ""
	case len(arg) == 2 && arg[0] == '-':
		return knownShorthands[arg[1]]
	default:
		return false
	}
}

// firstCommand returns the first positional token, skipping flag values.
func firstCommand(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return ""
		case !strings.HasPrefix(arg, "-"):
			return arg
		case flagTakesValue(arg):
			i++
		}
	}
	return ""
}

type quickStartJSON struct {
	Name     string   `json:"name"`
	Usage    string   `json:"usage"`
	Examples []string `json:"examples"`
	Presets  []string `json:"presets"`
}

var quickStartFlags = []string{
	"--dataset", "--config", "--json", "--log-level",
	"--manufacturer", "--colorway", "--type", "--query", "--sort", "--limit",
}

func quickStart() quickStartJSON {
	return quickStartJSON{
		Name:  "fabricbot",
		Usage: "fabricbot [ask QUESTION|list|manufacturers|presets|chat] [flags]",
		Examples: []string{
			`fabricbot ask "What is the Tweed Multi fabric?"`,
			"fabricbot list --colorway orange --limit 10",
			"fabricbot chat",
		},
		Presets: chat.Presets(nil),
	}
}

// printQuickStart is the no-argument output: usage, examples and the
// quick questions the chat offers.
func printQuickStart(w io.Writer, asJSON bool) error {
	help := quickStart()
	if asJSON {
		return json.NewEncoder(w).Encode(help)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\nusage: %s\nexamples:\n", help.Name, help.Usage)
	for _, ex := range help.Examples {
		fmt.Fprintf(&b, "  %s\n", ex)
	}
	fmt.Fprintf(&b, "quick questions:\n")
	for i, p := range help.Presets {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, p)
	}
	fmt.Fprintf(&b, "flags: %s\n", strings.Join(quickStartFlags, " "))
	_, err := io.WriteString(w, b.String())
	return err
}
