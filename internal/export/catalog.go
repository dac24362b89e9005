package export

import (
	"io"

	"github.com/tealeg/xlsx"

	"jewelbox/internal/domain"
)

var catalogHeaders = []string{"ID", "Name", "Description", "Price", "Category", "Stock", "Image", "CreatedAt"}

// WriteCatalog writes the products as a single "Products" sheet.
func WriteCatalog(w io.Writer, products []domain.Product) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return err
	}

	header := sheet.AddRow()
	for _, h := range catalogHeaders {
		header.AddCell().SetValue(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Description)
		price, _ := p.Price.Float64()
		row.AddCell().SetFloatWithFormat(price, "0.00")
		row.AddCell().SetValue(p.Category)
		row.AddCell().SetValue(p.Stock)
		row.AddCell().SetValue(p.Image)
		row.AddCell().SetValue(p.CreatedAt)
	}

	return file.Write(w)
}
