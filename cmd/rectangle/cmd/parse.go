package cmd

import (
	"fmt"

	"github.com/jialihong/rectangle/internal/ast"
	"github.com/jialihong/rectangle/internal/parser"
	"github.com/spf13/cobra"
)

var parseEval string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a document and print its AST shape",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParseCmd,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline code instead of reading from a file")
}

func runParseCmd(_ *cobra.Command, args []string) error {
	input, name, err := readInput(parseEval, args)
	if err != nil {
		return err
	}

	doc, err := parser.ParseFile(name, input)
	if err != nil {
		return err
	}

	switch doc.Kind {
	case ast.StructDocument:
		fmt.Printf("struct %s (%d field(s))\n", doc.Struct.Name, len(doc.Struct.Fields))
	case ast.ComponentDefDocument:
		fmt.Printf("def %s: %d propert(y/ies), %d method(s), %d enum(s)\n",
			doc.Comp.Name, len(doc.Comp.Properties), len(doc.Comp.Methods), len(doc.Comp.Enums))
	case ast.ComponentInstanceDocument:
		fmt.Printf("instance %s (id %s), %d child(ren)\n",
			doc.Instance.ComponentName, doc.Instance.InstanceID, len(doc.Instance.Children))
	}
	return nil
}
