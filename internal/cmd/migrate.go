package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the schema and seed the catalog if it is empty",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		log.Printf("[migrate] done")
		return db.Close()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
