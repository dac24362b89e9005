package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"jewelbox/internal/export"
	"jewelbox/internal/repos"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export-catalog",
	Short: "Write the product catalog to an Excel file",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "products.xlsx", "output file")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	products, err := repos.NewProductRepo(db).All(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}

	f, err := os.Create(exportOut)
	if err != nil {
		return err
	}
	if err := export.WriteCatalog(f, products); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", exportOut, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("[export] wrote %d products to %s", len(products), exportOut)
	return nil
}
