package repos

import (
	"context"
	"fmt"
	"log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// DB is the explicitly constructed persistence handle shared by every repo.
type DB struct {
	*sqlx.DB
	dialect dialect
}

// OpenDB opens the store, applies the schema and seeds the catalog once.
func OpenDB(driver, dsn string) (*DB, error) {
	d, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}
	x, err := sqlx.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.driver, err)
	}
	if d.singleConn {
		// sqlite: one writer, and ":memory:" is per-connection
		x.SetMaxOpenConns(1)
	}
	if err = x.Ping(); err != nil {
		_ = x.Close()
		return nil, fmt.Errorf("ping %s: %w", d.driver, err)
	}

	db := &DB{DB: x, dialect: d}
	if err := db.ensureSchema(); err != nil {
		_ = x.Close()
		return nil, fmt.Errorf("schema: %w", err)
	}
	if err := db.seedIfEmpty(); err != nil {
		_ = x.Close()
		return nil, fmt.Errorf("seed: %w", err)
	}
	return db, nil
}

func (db *DB) Driver() string { return db.dialect.driver }

// HealthCheck pings the underlying store.
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.PingContext(ctx)
}

func (db *DB) ensureSchema() error {
	for _, stmt := range db.dialect.schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

type seedProduct struct {
	Name, Description, Image, Category string
	Price                              string
	Stock                              int
}

var catalogSeed = []seedProduct{
	{"Diamond Engagement Ring", "Beautiful 1 carat diamond engagement ring in 18k white gold",
		"https://placehold.co/400x400?text=Diamond+Engagement+Ring", "rings", "2999.99", 5},
	{"Pearl Necklace", "Classic freshwater pearl necklace with sterling silver clasp",
		"https://placehold.co/400x400?text=Pearl+Necklace", "necklaces", "299.99", 10},
	{"Gold Bracelet", "Delicate 14k gold chain bracelet with heart charm",
		"https://placehold.co/400x400?text=Gold+Bracelet", "bracelets", "599.99", 8},
	{"Sapphire Earrings", "Stunning blue sapphire stud earrings in platinum setting",
		"https://placehold.co/400x400?text=Sapphire+Earrings", "earrings", "1299.99", 6},
	{"Ruby Tennis Bracelet", "Exquisite ruby tennis bracelet with diamonds in 18k gold",
		"https://placehold.co/400x400?text=Ruby+Tennis+Bracelet", "bracelets", "3999.99", 3},
	{"Emerald Pendant", "Vintage-inspired emerald pendant with diamond halo",
		"https://placehold.co/400x400?text=Emerald+Pendant", "necklaces", "1899.99", 4},
}

func (db *DB) seedIfEmpty() error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting sample jewellery catalog")

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, p := range catalogSeed {
		if _, err := tx.Exec(`
			INSERT INTO products(name, description, price, image, category, stock)
			VALUES(?, ?, ?, ?, ?, ?)
		`, p.Name, p.Description, p.Price, p.Image, p.Category, p.Stock); err != nil {
			return err
		}
	}
	return tx.Commit()
}
