package cmd

import (
	"fmt"
	"os"

	"github.com/jialihong/rectangle/internal/lexer"
	"github.com/jialihong/rectangle/internal/token"
	"github.com/spf13/cobra"
)

var (
	lexEval    string
	lexShowPos bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a source file or expression",
	Long: `Tokenize a .rec document and print the resulting tokens.

Examples:
  rectangle lex box.rec
  rectangle lex -e "drawRect(0, 0, 10, 10);"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline code instead of reading from a file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
}

func runLex(_ *cobra.Command, args []string) error {
	input, _, err := readInput(lexEval, args)
	if err != nil {
		return err
	}

	l := lexer.New(input, 1, 1)
	for {
		tok := l.NextToken()
		printToken(tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

func printToken(tok token.Token) {
	var out string
	if tok.Literal == "" {
		out = fmt.Sprintf("[%-10s]", tok.Kind)
	} else {
		out = fmt.Sprintf("[%-10s] %q", tok.Kind, tok.Literal)
	}
	if lexShowPos {
		out += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	fmt.Println(out)
}

// readInput resolves the CLI's common "either -e or a file argument"
// pattern, returning the source text and a display name for diagnostics.
func readInput(eval string, args []string) (input, name string, err error) {
	if eval != "" {
		return eval, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline code")
}
