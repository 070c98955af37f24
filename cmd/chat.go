package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/tayloree/fabric-chat/internal/chat"
	"github.com/tayloree/fabric-chat/internal/display"
	"golang.org/x/term"
)

var flagPlain bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the fabric assistant",
	Long: "Opens the interactive assistant. The dataset loads in the background; questions are\n" +
		"answered with a fabric card or a suggestion to rephrase. Use --plain for a line-mode\n" +
		"session that works over pipes.",
	Example: `  fabricbot chat
  fabricbot chat --dataset https://example.com/fabrics.json
  printf 'tweed multi\nq\n' | fabricbot chat --plain`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().BoolVar(&flagPlain, "plain", false, "Line-mode chat over stdin/stdout (numbers pick quick questions, q quits)")
}

func runChat(cmd *cobra.Command, _ []string) error {
	if !flagPlain && !isInteractiveSession(cmd.InOrStdin(), cmd.OutOrStdout()) {
		return invalidArgsError(
			"`fabricbot chat` requires an interactive terminal",
			"Use `fabricbot chat --plain` or `fabricbot ask QUESTION --json` in pipelines.",
		)
	}

	// The full-screen UI owns the terminal, so logs only go to log.file.
	logSink := cmd.ErrOrStderr()
	if !flagPlain {
		logSink = io.Discard
	}
	env, err := loadAppEnv(logSink)
	if err != nil {
		return err
	}
	defer env.close()

	theme, err := display.ParseTheme(env.cfg.Chat.Theme)
	if err != nil {
		return invalidArgsError(err.Error(), "fabricbot chat")
	}

	sessionOpts := []chat.Option{
		chat.WithThinkingDelay(env.cfg.ThinkingDelay()),
		chat.WithLogger(env.logger),
	}
	presets := chat.Presets(env.cfg.Chat.Presets)

	if flagPlain {
		res := <-newLoader(env.cfg).LoadAsync(cmd.Context(), env.cfg.Dataset.Source)
		session := chat.NewSession(res, sessionOpts...)
		return runPlainChat(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), session, presets)
	}

	model := newChatModel(chatModelConfig{
		ctx:         cmd.Context(),
		loader:      newLoader(env.cfg),
		source:      env.cfg.Dataset.Source,
		presets:     presets,
		theme:       theme,
		sessionOpts: sessionOpts,
	})
	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running chat: %w", err)
	}
	return nil
}

func isInteractiveSession(stdin io.Reader, stdout io.Writer) bool {
	inputFile, ok := stdin.(*os.File)
	if !ok {
		return false
	}
	if !term.IsTerminal(int(inputFile.Fd())) {
		return false
	}
	return isTTY(stdout)
}

// runPlainChat is the line-mode conversation: one question per line, a
// number picks a quick question, q quits.
func runPlainChat(ctx context.Context, in io.Reader, out io.Writer, session *chat.Session, presets []string) error {
	renderer := display.TextRenderer{W: out}
	if err := renderer.Render(chat.BotEntry(session.Greeting())); err != nil {
		return err
	}
	display.PrintPresets(out, presets)

	reader := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !reader.Scan() {
			return reader.Err()
		}
		line := strings.TrimSpace(reader.Text())

		switch strings.ToLower(line) {
		case "":
			continue
		case "q", "quit", "exit":
			return nil
		}
		if idx, err := strconv.Atoi(line); err == nil && idx >= 1 && idx <= len(presets) {
			line = presets[idx-1]
		}

		if err := renderer.Render(chat.UserEntry(line)); err != nil {
			return err
		}
		reply, err := session.Respond(ctx, line)
		if errors.Is(err, chat.ErrEmptyQuestion) {
			continue
		}
		if err != nil {
			return err
		}
		if err := renderer.Render(chat.BotEntry(reply)); err != nil {
			return err
		}
	}
}
