package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tayloree/fabric-chat/internal/catalog"
	"github.com/tayloree/fabric-chat/internal/chat"
	"github.com/tayloree/fabric-chat/internal/display"
)

const testDataset = `[
  {"Pattern Name": "Tweed Multi", "Manufacturer": "Acme", "Colorway": "Blue"},
  {"Pattern Name": "Sunset Stripe", "Manufacturer": "Bolt Co", "Colorway": "Orange", "Fabric Type": "Cotton"},
  {"Pattern Name": "Harbor Tweed", "Manufacturer": "Acme", "Colorway": "Grey", "Fabric Type": "Wool"}
]`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fabrics.json")
	require.NoError(t, os.WriteFile(path, []byte(testDataset), 0o644))
	return path
}

func run(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = runCLI(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunCLI_CompletionZsh(t *testing.T) {
	code, stdout, stderr := run("completion", "zsh")

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "#compdef fabricbot")
	assert.Empty(t, stderr)
}

func TestRunCLI_HelpList(t *testing.T) {
	code, stdout, stderr := run("help", "list")

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "fabricbot list [flags]")
	assert.Empty(t, stderr)
}

func TestRunCLI_NoArgsPrintsQuickStartJSON(t *testing.T) {
	code, stdout, _ := run()

	assert.Equal(t, 0, code)
	var payload quickStartJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	assert.Equal(t, "fabricbot", payload.Name)
}

func TestRunCLI_TolerantRewriteWithoutLoading(t *testing.T) {
	code, stdout, stderr := run("list", "-colorway", "orange", "--help")

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "fabricbot list [flags]")
	assert.Contains(t, stderr, "interpreted `-colorway` as `--colorway`")
}

func TestRunCLI_DoubleDashBoundary(t *testing.T) {
	code, _, stderr := run("list", "--", "colour", "red")

	assert.Equal(t, ExitInvalidArgs, code)
	assert.False(t, strings.Contains(stderr, "interpreted `colour`"))
}

func TestRunCLI_HelpFlagDoesNotLeak(t *testing.T) {
	path := writeDataset(t)
	code, _, _ := run("list", "--help")
	require.Equal(t, 0, code)

	code, stdout, _ := run("list", "--dataset", path)

	require.Equal(t, 0, code)
	assert.NotContains(t, stdout, "Usage:")
}

func TestRunCLI_AskMatch(t *testing.T) {
	path := writeDataset(t)

	code, stdout, stderr := run("ask", "--dataset", path, "What is the Tweed Multi fabric?")

	require.Equal(t, 0, code, stderr)
	var reply display.ReplyJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &reply))
	assert.True(t, reply.Matched)
	assert.Equal(t, "contains", reply.Tier)
	require.NotNil(t, reply.Fabric)
	assert.Equal(t, "Tweed Multi", reply.Fabric.Title)
	assert.Equal(t, "Acme", reply.Fabric.Manufacturer)
	assert.Equal(t, "Blue", reply.Fabric.Colorway)
	assert.Equal(t, chat.Placeholder, reply.Fabric.FabricType)
}

func TestRunCLI_AskOrangeIntro(t *testing.T) {
	path := writeDataset(t)

	code, stdout, _ := run("ask", "-d", path, "Do", "you", "have", "anything", "orange?")

	require.Equal(t, 0, code)
	var reply display.ReplyJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &reply))
	assert.Equal(t, "An orange option I like is Sunset Stripe", reply.Intro)
}

func TestRunCLI_AskNoMatch(t *testing.T) {
	path := writeDataset(t)

	code, stdout, stderr := run("ask", "--dataset", path, "zzz")

	assert.Equal(t, ExitNotFound, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "NOT_FOUND")
	assert.Contains(t, stderr, "couldn't find a fabric")
}

func TestRunCLI_AskMissingDataset(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.json")

	code, _, stderr := run("ask", "--dataset", missing, "tweed")

	assert.Equal(t, ExitUpstream, code)
	assert.Contains(t, stderr, "UPSTREAM_ERROR")
	assert.Contains(t, stderr, "couldn't load the fabric dataset")
}

func TestRunCLI_AskBlankQuestion(t *testing.T) {
	code, _, stderr := run("ask", "   ")

	assert.Equal(t, ExitInvalidArgs, code)
	assert.Contains(t, stderr, "please provide a question")
}

func TestRunCLI_InvalidLogLevel(t *testing.T) {
	path := writeDataset(t)

	code, _, stderr := run("ask", "--dataset", path, "--log-level", "loud", "tweed")

	assert.Equal(t, ExitInvalidArgs, code)
	assert.Contains(t, stderr, "invalid log level")
}

func TestRunCLI_ListFiltersAndSorts(t *testing.T) {
	path := writeDataset(t)

	code, stdout, stderr := run("list", "--dataset", path, "--manufacturer", "acme", "--sort", "name")

	require.Equal(t, 0, code, stderr)
	var fabrics []display.FabricJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &fabrics))
	require.Len(t, fabrics, 2)
	assert.Equal(t, "Harbor Tweed", fabrics[0].PatternName)
	assert.Equal(t, "Tweed Multi", fabrics[1].PatternName)
}

func TestRunCLI_ListColourSynonym(t *testing.T) {
	path := writeDataset(t)

	code, stdout, _ := run("list", "-d", path, "colour=gray")

	require.Equal(t, 0, code)
	var fabrics []display.FabricJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &fabrics))
	require.Len(t, fabrics, 1)
	assert.Equal(t, "Harbor Tweed", fabrics[0].PatternName)
}

func TestRunCLI_ListNoMatches(t *testing.T) {
	path := writeDataset(t)

	code, _, stderr := run("list", "--dataset", path, "--query", "velvet")

	assert.Equal(t, ExitNotFound, code)
	assert.Contains(t, stderr, "no fabrics match")
}

func TestRunCLI_ListInvalidSort(t *testing.T) {
	code, _, stderr := run("list", "--sort", "price")

	assert.Equal(t, ExitInvalidArgs, code)
	assert.Contains(t, stderr, "invalid value for --sort")
}

func TestRunCLI_Manufacturers(t *testing.T) {
	path := writeDataset(t)

	code, stdout, _ := run("manufacturers", "--dataset", path)

	require.Equal(t, 0, code)
	var makers map[string]int
	require.NoError(t, json.Unmarshal([]byte(stdout), &makers))
	assert.Equal(t, map[string]int{"Acme": 2, "Bolt Co": 1}, makers)
}

func TestRunCLI_PresetsFromConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "fabricbot.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("chat:\n  presets:\n    - Any plaid?\n"), 0o644))

	code, stdout, _ := run("presets", "--config", cfgPath)

	require.Equal(t, 0, code)
	var presets []string
	require.NoError(t, json.Unmarshal([]byte(stdout), &presets))
	assert.Equal(t, []string{"Any plaid?"}, presets)
}

func TestRunCLI_DatasetFlagOverridesConfigSource(t *testing.T) {
	path := writeDataset(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "fabricbot.yaml"),
		[]byte("dataset:\n  source: s3://bucket/fabrics.json\n"),
		0o644,
	))
	t.Chdir(dir)
	t.Setenv("FABRICBOT_DATASET", "")

	code, stdout, stderr := run("--dataset", path, "ask", "tweed", "multi")

	require.Equal(t, 0, code, stderr)
	var reply display.ReplyJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &reply))
	require.NotNil(t, reply.Fabric)
	assert.Equal(t, "Tweed Multi", reply.Fabric.Title)

	// Without the flag the config's s3 source still needs an endpoint.
	code, _, stderr = run("ask", "tweed", "multi")
	assert.Equal(t, ExitInvalidArgs, code)
	assert.Contains(t, stderr, "s3.endpoint")
}

func TestRunCLI_ChatRequiresTTY(t *testing.T) {
	code, _, stderr := run("chat")

	assert.Equal(t, ExitInvalidArgs, code)
	assert.Contains(t, stderr, "requires an interactive terminal")
}

func TestRunPlainChat(t *testing.T) {
	session := chat.NewSession(catalog.Result{Catalog: testCatalog()}, chat.WithThinkingDelay(0))
	in := strings.NewReader("\n2\nzzz\nq\nnever asked\n")
	var out bytes.Buffer

	err := runPlainChat(context.Background(), in, &out, session, chat.DefaultPresets)

	require.NoError(t, err)
	output := out.String()
	assert.Contains(t, output, "Hi! I'm your fabric assistant.")
	assert.Contains(t, output, "Do you have anything orange?")
	assert.Contains(t, output, "An orange option I like is Sunset Stripe")
	assert.Contains(t, output, "I couldn't find a fabric that matches that.")
	assert.NotContains(t, output, "never asked")
}

func TestRunPlainChat_LoadFailureKeepsGoing(t *testing.T) {
	session := chat.NewSession(catalog.Result{Err: &catalog.LoadError{Source: "x", Err: catalog.ErrEmptyCatalog}})
	var out bytes.Buffer

	err := runPlainChat(context.Background(), strings.NewReader("tweed\n"), &out, session, nil)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "couldn't load the fabric dataset")
	assert.Contains(t, out.String(), "I couldn't find a fabric")
}
