//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pgEdge/pgedge-shopstats/internal/logging"
)

// File names of the dataset tables.
const (
	ProductsFile  = "products.csv"
	CustomersFile = "customers.csv"
	SalesFile     = "sales.csv"
)

// BOM is written at the start of every CSV file so spreadsheet tools
// detect UTF-8.
const BOM = "\ufeff"

const dateLayout = time.DateOnly

var (
	productsHeader  = []string{"product_id", "product_name", "category", "subcategory", "cost_price", "selling_price", "supplier"}
	customersHeader = []string{"customer_id", "name", "city", "age_group", "join_date"}
	salesHeader     = []string{"order_id", "order_date", "customer_id", "product_id", "quantity", "unit_price", "city", "total_amount"}
)

// WriteDataset writes the three tables to dir, creating it if needed. It
// returns the paths written.
func WriteDataset(dir string, ds *Dataset) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	tables := []struct {
		file  string
		write func(io.Writer) error
	}{
		{ProductsFile, func(w io.Writer) error { return WriteProducts(w, ds.Products) }},
		{CustomersFile, func(w io.Writer) error { return WriteCustomers(w, ds.Customers) }},
		{SalesFile, func(w io.Writer) error { return WriteSales(w, ds.Sales) }},
	}

	paths := make([]string, 0, len(tables))
	for _, t := range tables {
		path := filepath.Join(dir, t.file)
		if err := writeFile(path, t.write); err != nil {
			return nil, err
		}
		logging.Info().Str("file", path).Msg("Wrote table")
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// WriteProducts writes products as CSV with a header row.
func WriteProducts(w io.Writer, products []Product) error {
	return writeCSV(w, productsHeader, len(products), func(i int) []string {
		p := products[i]
		return []string{
			strconv.Itoa(p.ProductID),
			p.ProductName,
			p.Category,
			p.Subcategory,
			formatMoney(p.CostPrice),
			formatMoney(p.SellingPrice),
			p.Supplier,
		}
	})
}

// WriteCustomers writes customers as CSV with a header row.
func WriteCustomers(w io.Writer, customers []Customer) error {
	return writeCSV(w, customersHeader, len(customers), func(i int) []string {
		c := customers[i]
		return []string{
			strconv.Itoa(c.CustomerID),
			c.Name,
			c.City,
			c.AgeGroup,
			c.JoinDate.Format(dateLayout),
		}
	})
}

// WriteSales writes sales as CSV with a header row.
func WriteSales(w io.Writer, sales []Sale) error {
	return writeCSV(w, salesHeader, len(sales), func(i int) []string {
		s := sales[i]
		return []string{
			strconv.Itoa(s.OrderID),
			s.OrderDate.Format(dateLayout),
			strconv.Itoa(s.CustomerID),
			strconv.Itoa(s.ProductID),
			strconv.Itoa(s.Quantity),
			formatMoney(s.UnitPrice),
			s.City,
			formatMoney(s.TotalAmount),
		}
	})
}

func writeCSV(w io.Writer, header []string, n int, row func(int) []string) error {
	if _, err := io.WriteString(w, BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := cw.Write(row(i)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ReadDataset reads the three tables written by WriteDataset from dir.
// StartDate and EndDate are set to the first and last order date.
func ReadDataset(dir string) (*Dataset, error) {
	ds := &Dataset{}

	if err := readFile(filepath.Join(dir, ProductsFile), func(r io.Reader) (err error) {
		ds.Products, err = ReadProducts(r)
		return err
	}); err != nil {
		return nil, err
	}
	if err := readFile(filepath.Join(dir, CustomersFile), func(r io.Reader) (err error) {
		ds.Customers, err = ReadCustomers(r)
		return err
	}); err != nil {
		return nil, err
	}
	if err := readFile(filepath.Join(dir, SalesFile), func(r io.Reader) (err error) {
		ds.Sales, err = ReadSales(r)
		return err
	}); err != nil {
		return nil, err
	}

	for i, s := range ds.Sales {
		if i == 0 || s.OrderDate.Before(ds.StartDate) {
			ds.StartDate = s.OrderDate
		}
		if i == 0 || s.OrderDate.After(ds.EndDate) {
			ds.EndDate = s.OrderDate
		}
	}
	return ds, nil
}

func readFile(path string, read func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	if err := read(f); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}

// ReadProducts parses products written by WriteProducts.
func ReadProducts(r io.Reader) ([]Product, error) {
	var out []Product
	err := readCSV(r, productsHeader, func(rec record) error {
		p := Product{
			ProductID:    rec.int("product_id"),
			ProductName:  rec.str("product_name"),
			Category:     rec.str("category"),
			Subcategory:  rec.str("subcategory"),
			CostPrice:    rec.float("cost_price"),
			SellingPrice: rec.float("selling_price"),
			Supplier:     rec.str("supplier"),
		}
		out = append(out, p)
		return rec.err
	})
	return out, err
}

// ReadCustomers parses customers written by WriteCustomers.
func ReadCustomers(r io.Reader) ([]Customer, error) {
	var out []Customer
	err := readCSV(r, customersHeader, func(rec record) error {
		c := Customer{
			CustomerID: rec.int("customer_id"),
			Name:       rec.str("name"),
			City:       rec.str("city"),
			AgeGroup:   rec.str("age_group"),
			JoinDate:   rec.date("join_date"),
		}
		out = append(out, c)
		return rec.err
	})
	return out, err
}

// ReadSales parses sales written by WriteSales.
func ReadSales(r io.Reader) ([]Sale, error) {
	var out []Sale
	err := readCSV(r, salesHeader, func(rec record) error {
		s := Sale{
			OrderID:     rec.int("order_id"),
			OrderDate:   rec.date("order_date"),
			CustomerID:  rec.int("customer_id"),
			ProductID:   rec.int("product_id"),
			Quantity:    rec.int("quantity"),
			UnitPrice:   rec.float("unit_price"),
			City:        rec.str("city"),
			TotalAmount: rec.float("total_amount"),
		}
		out = append(out, s)
		return rec.err
	})
	return out, err
}

// readCSV reads a CSV with a header row, calling fn for each data row.
// Columns are looked up by name, so column order may differ from the
// writer's as long as every required column is present.
func readCSV(r io.Reader, required []string, fn func(record) error) error {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(BOM)); err == nil && string(prefix) == BOM {
		_, _ = br.Discard(len(BOM))
	}

	cr := csv.NewReader(br)
	header, err := cr.Read()
	if err != nil {
		return fmt.Errorf("missing header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[h] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return fmt.Errorf("missing column %q", col)
		}
	}

	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line++
		rec := &recordState{index: index, row: row}
		if err := fn(record{recordState: rec}); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if rec.err != nil {
			return fmt.Errorf("line %d: %w", line, rec.err)
		}
	}
}

type recordState struct {
	index map[string]int
	row   []string
	err   error
}

// record gives typed access to a CSV row, keeping the first parse error.
type record struct {
	*recordState
}

func (r record) str(col string) string {
	return r.row[r.index[col]]
}

func (r record) int(col string) int {
	v, err := strconv.Atoi(r.str(col))
	if err != nil && r.recordState.err == nil {
		r.recordState.err = fmt.Errorf("column %s: %w", col, err)
	}
	return v
}

func (r record) float(col string) float64 {
	v, err := strconv.ParseFloat(r.str(col), 64)
	if err != nil && r.recordState.err == nil {
		r.recordState.err = fmt.Errorf("column %s: %w", col, err)
	}
	return v
}

func (r record) date(col string) time.Time {
	v, err := time.Parse(dateLayout, r.str(col))
	if err != nil && r.recordState.err == nil {
		r.recordState.err = fmt.Errorf("column %s: %w", col, err)
	}
	return v
}
