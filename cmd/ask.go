package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/tayloree/fabric-chat/internal/catalog"
	"github.com/tayloree/fabric-chat/internal/chat"
	"github.com/tayloree/fabric-chat/internal/display"
)

var flagThink bool

var askCmd = &cobra.Command{
	Use:   "ask QUESTION...",
	Short: "Answer one question about the fabric catalog",
	Long: "Loads the dataset, resolves the question against pattern names, manufacturers and\n" +
		"colorways, and prints the matching fabric card. Exits 1 when nothing matches.",
	Example: `  fabricbot ask "What is the Tweed Multi fabric?"
  fabricbot ask do you have anything orange
  fabricbot ask --dataset s3://swatches/fabrics.json tweed --json`,
	Args: cobra.ArbitraryArgs,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().BoolVar(&flagThink, "think", false, "Pause for the configured thinking delay before answering")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return invalidArgsError(
			"please provide a question",
			`fabricbot ask "What is the Tweed Multi fabric?"`,
			"fabricbot presets",
		)
	}

	env, err := loadAppEnv(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer env.close()

	cat, err := loadCatalog(cmd, env)
	if err != nil {
		return err
	}

	delay := env.cfg.ThinkingDelay()
	if !flagThink {
		delay = 0
	}
	session := chat.NewSession(
		catalog.Result{Catalog: cat},
		chat.WithThinkingDelay(delay),
		chat.WithLogger(env.logger),
	)

	reply, err := session.Respond(cmd.Context(), question)
	if err != nil {
		return err
	}

	if !reply.Matched() {
		return notFoundError(chat.NoMatchText, "fabricbot list --limit 10", "fabricbot presets")
	}

	if flagJSON {
		return display.PrintReplyJSON(cmd.OutOrStdout(), question, reply)
	}
	display.PrintReply(cmd.OutOrStdout(), reply)
	return nil
}
