package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/habitd/internal/ledger"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the habit ledger as JSON",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the habit ledger from an exported JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(exportCmd, importCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(eng *ledger.Engine) error {
		doc := eng.Export()
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("encode export: %w", err)
		}
		data = append(data, '\n')

		if flagExportOut == "" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(flagExportOut, data, 0o600); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Exported %d habits to %s\n", len(doc.Habits), flagExportOut)
		return nil
	})
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read import: %w", err)
	}
	var doc ledger.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode import: %w", err)
	}

	return withEngine(cmd, func(eng *ledger.Engine) error {
		if err := eng.Import(cmd.Context(), doc); err != nil {
			return err
		}
		fmt.Printf("Imported %d habits across %d recorded days\n", len(doc.Habits), len(doc.Records))
		return nil
	})
}
