package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"schemagen/internal/api"
	"schemagen/internal/compiler"
	"schemagen/internal/dsl"
	"schemagen/internal/pg"
	"schemagen/internal/reference"
)

var version = "dev"

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

type globalFlags struct {
	dslDir        string
	optionSetsDir string
	output        string
	noLegacyModel bool
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:     "schemagen",
		Short:   "Compile entity DSL into a Prisma schema",
		Version: version,
		Long: `schemagen compiles *.dsl entity definitions into a Prisma schema
and its Postgres DDL projection.

Examples:
  schemagen compile --dsl ./dsl -o schema.prisma
  schemagen ddl --dsl ./dsl
  schemagen lint --dsl ./dsl --option-sets ./reference/optionsets`,
		SilenceUsage: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.PersistentFlags().StringVar(&flags.dslDir, "dsl", "dsl", "Path to DSL directory")
	rootCmd.PersistentFlags().StringVar(&flags.optionSetsDir, "option-sets", "reference/optionsets", "Path to option sets directory")
	rootCmd.PersistentFlags().StringVarP(&flags.output, "output", "o", "", "Output file (default stdout)")
	rootCmd.PersistentFlags().BoolVar(&flags.noLegacyModel, "no-legacy-model", false, "Do not prepend the legacy User model")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "compile",
			Short: "Print schema.prisma",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				entities, err := dsl.LoadAllEntities(flags.dslDir)
				if err != nil {
					return err
				}
				out, err := compiler.New(flags.options()).Compile(entities)
				if err != nil {
					return err
				}
				return flags.write(cmd, out)
			},
		},
		&cobra.Command{
			Use:   "ddl",
			Short: "Print Postgres DDL for the compiled schema",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				entities, err := dsl.LoadAllEntities(flags.dslDir)
				if err != nil {
					return err
				}
				doc, err := compiler.New(flags.options()).Document(entities)
				if err != nil {
					return err
				}
				stmts, err := pg.GenerateDDL(doc)
				if err != nil {
					return err
				}
				return flags.write(cmd, strings.Join(stmts, "\n\n")+"\n")
			},
		},
		&cobra.Command{
			Use:   "lint",
			Short: "Report dangling references and enum name collisions",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				entities, err := dsl.LoadAllEntities(flags.dslDir)
				if err != nil {
					return err
				}
				optionSets, err := reference.LoadOptionSetCatalog(flags.optionSetsDir)
				if err != nil {
					return err
				}
				issues := api.SchemaLint(entities, optionSets, !flags.noLegacyModel)
				var sb strings.Builder
				for _, it := range issues {
					fmt.Fprintf(&sb, "%s.%s: %s: %s\n", it.Entity, it.Field, it.Code, it.Message)
				}
				if err := flags.write(cmd, sb.String()); err != nil {
					return err
				}
				if len(issues) > 0 {
					return fmt.Errorf("%d issue(s) found", len(issues))
				}
				return nil
			},
		},
	)
	return rootCmd
}

func (f *globalFlags) options() compiler.Options {
	opts := compiler.DefaultOptions()
	opts.IncludeLegacySystemModel = !f.noLegacyModel
	return opts
}

func (f *globalFlags) write(cmd *cobra.Command, text string) error {
	if f.output == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), text)
		return err
	}
	return os.WriteFile(f.output, []byte(text), 0o644)
}
