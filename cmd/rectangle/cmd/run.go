package cmd

import (
	"fmt"
	"os"

	"github.com/jialihong/rectangle/internal/asm"
	"github.com/jialihong/rectangle/internal/diag"
	"github.com/jialihong/rectangle/pkg/rectangle"
	"github.com/spf13/cobra"
)

var (
	runOutput       string
	runDumpAsm      bool
	runDumpBytecode bool
)

var runCmd = &cobra.Command{
	Use:   "run [file...]",
	Short: "Compile and run documents, producing SVG",
	Long: `Compile one or more .rec documents and execute the resulting
bytecode program, writing the rendered SVG to stdout or a file.

Examples:
  rectangle run box.rec scene.rec
  rectangle run box.rec scene.rec -o scene.svg`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "write the rendered SVG to this file instead of stdout")
	runCmd.Flags().BoolVar(&runDumpAsm, "dump-asm", false, "print the generated assembly to stderr before running")
	runCmd.Flags().BoolVar(&runDumpBytecode, "dump-bytecode", false, "print the disassembled bytecode to stderr before running")
}

func runRun(_ *cobra.Command, args []string) error {
	sources, err := readSources(args)
	if err != nil {
		return err
	}

	engine := rectangle.New(rectangle.WithDiag(diag.Config{
		DumpAsm: runDumpAsm,
		Out:     os.Stderr,
	}))

	if runDumpBytecode {
		result, err := engine.Compile(sources)
		if err != nil {
			return err
		}
		fmt.Fprint(os.Stderr, asm.Disassemble(result.Program))
	}

	svg, err := engine.Run(sources, os.Stdout)
	if err != nil {
		return err
	}

	if runOutput != "" {
		if err := os.WriteFile(runOutput, []byte(svg), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", runOutput, err)
		}
		return nil
	}

	fmt.Print(svg)
	return nil
}
