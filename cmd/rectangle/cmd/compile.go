package cmd

import (
	"fmt"
	"os"

	"github.com/jialihong/rectangle/internal/asm"
	"github.com/jialihong/rectangle/pkg/rectangle"
	"github.com/spf13/cobra"
)

var (
	compileOutput       string
	compileDumpAsm      bool
	compileDumpBytecode bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file...]",
	Short: "Compile documents to assembly and bytecode",
	Long: `Compile one or more .rec documents (struct/component/instance) into
the textual assembly and the assembled bytecode program.

Examples:
  rectangle compile box.rec scene.rec
  rectangle compile box.rec scene.rec --dump-asm
  rectangle compile box.rec scene.rec -o scene.recc`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "write the assembled bytecode to this file")
	compileCmd.Flags().BoolVar(&compileDumpAsm, "dump-asm", false, "print the generated assembly")
	compileCmd.Flags().BoolVar(&compileDumpBytecode, "dump-bytecode", false, "print the disassembled bytecode")
}

func runCompile(_ *cobra.Command, args []string) error {
	sources, err := readSources(args)
	if err != nil {
		return err
	}

	engine := rectangle.New()
	result, err := engine.Compile(sources)
	if err != nil {
		return err
	}

	if compileDumpAsm {
		fmt.Println(result.Assembly)
	}
	if compileDumpBytecode {
		fmt.Print(asm.Disassemble(result.Program))
	}

	if compileOutput != "" {
		if err := os.WriteFile(compileOutput, result.Program.Code, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", compileOutput, err)
		}
		fmt.Printf("Compiled %d document(s) -> %s\n", len(args), compileOutput)
	}
	return nil
}

// readSources loads every file path in args into a rectangle.Source.
func readSources(args []string) ([]rectangle.Source, error) {
	sources := make([]rectangle.Source, 0, len(args))
	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", path, err)
		}
		sources = append(sources, rectangle.Source{Name: path, Text: string(content)})
	}
	return sources, nil
}
