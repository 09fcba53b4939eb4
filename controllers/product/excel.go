package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Column order shared by export and import. List cells are comma separated.
var excelHeaders = []string{
	"ID", "Name", "Description", "Price", "Images", "Sizes", "Colors",
	"CategoryID", "Stock", "DiscountPercent", "Rating", "Popularity",
	"CreatedAt", "UpdatedAt",
}

// minImportCells covers ID through Stock.
const minImportCells = 9

func ExportProductsToExcel(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := store.All(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		file, err := productsWorkbook(products)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", xlsxContentType)
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")
		c.Status(http.StatusOK)

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		}
	}
}

func productsWorkbook(products []models.Product) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, err
	}

	header := sheet.AddRow()
	for _, h := range excelHeaders {
		header.AddCell().SetString(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(p.ID))
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Description)
		row.AddCell().SetString(p.Price.StringFixed(2))
		row.AddCell().SetString(strings.Join(p.Images, ","))
		row.AddCell().SetString(strings.Join(p.Sizes, ","))
		row.AddCell().SetString(strings.Join(p.Colors, ","))
		if p.CategoryID != nil {
			row.AddCell().SetInt(int(*p.CategoryID))
		} else {
			row.AddCell().SetString("")
		}
		row.AddCell().SetInt(p.Stock)
		row.AddCell().SetInt(p.DiscountPercent)
		row.AddCell().SetString(p.Rating.StringFixed(1))
		row.AddCell().SetInt(p.Popularity)
		row.AddCell().SetString(p.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetString(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return file, nil
}

// ImportProductsFromExcel creates or updates products from the first sheet.
// Rows with an existing ID update that product; other rows are created.
func ImportProductsFromExcel(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		header, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}
		f, err := header.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer f.Close()

		xlFile, err := xlsx.OpenReaderAt(f, header.Size)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse Excel file"})
			return
		}
		if len(xlFile.Sheets) == 0 || len(xlFile.Sheets[0].Rows) < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		ctx := c.Request.Context()
		created, updated, skipped := 0, 0, 0
		for _, row := range xlFile.Sheets[0].Rows[1:] {
			id, product, ok := parseProductRow(row)
			if !ok {
				skipped++
				continue
			}

			if id != 0 {
				if existing, err := store.Get(ctx, id); err == nil {
					product.ID = existing.ID
					product.CreatedAt = existing.CreatedAt
					if store.Update(ctx, &product) == nil {
						updated++
					} else {
						skipped++
					}
					continue
				}
			}

			if store.Create(ctx, &product) == nil {
				created++
			} else {
				skipped++
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": created,
			"updated_count": updated,
			"skipped_count": skipped,
		})
	}
}

func parseProductRow(row *xlsx.Row) (uint, models.Product, bool) {
	if row == nil || len(row.Cells) < minImportCells {
		return 0, models.Product{}, false
	}
	get := func(i int) string {
		if i < len(row.Cells) {
			return strings.TrimSpace(row.Cells[i].String())
		}
		return ""
	}

	price, err := decimal.NewFromString(get(3))
	if err != nil {
		return 0, models.Product{}, false
	}
	stock, err := strconv.Atoi(get(8))
	if err != nil {
		return 0, models.Product{}, false
	}

	p := models.Product{
		Name:        get(1),
		Description: get(2),
		Price:       price,
		Images:      splitCell(get(4)),
		Sizes:       splitCell(get(5)),
		Colors:      splitCell(get(6)),
		Stock:       stock,
	}
	if cid, err := strconv.ParseUint(get(7), 10, 64); err == nil && cid > 0 {
		id := uint(cid)
		p.CategoryID = &id
	}
	p.DiscountPercent, _ = strconv.Atoi(get(9))
	if r, err := decimal.NewFromString(get(10)); err == nil {
		p.Rating = r
	}
	p.Popularity, _ = strconv.Atoi(get(11))

	if p.Validate() != nil {
		return 0, models.Product{}, false
	}

	id, _ := strconv.ParseUint(get(0), 10, 64)
	return uint(id), p, true
}

func splitCell(s string) pq.StringArray {
	out := pq.StringArray{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
