//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package report

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/pgEdge/pgedge-shopstats/internal/datagen"
	"github.com/pgEdge/pgedge-shopstats/internal/rfm"
	"github.com/pgEdge/pgedge-shopstats/internal/store"
)

// WriteMonthlySales writes monthly_sales.csv.
func (r *Report) WriteMonthlySales(rows []store.MonthlySales) error {
	return r.writeCSV(MonthlySalesFile,
		[]string{"month", "sales", "orders", "avg_order_value"},
		len(rows), func(i int) []string {
			m := rows[i]
			return []string{m.Month, money(m.Sales), count(m.Orders), money(m.AvgOrderValue)}
		})
}

// WriteCategoryPerformance writes category_performance.csv.
func (r *Report) WriteCategoryPerformance(rows []store.CategoryPerformance) error {
	return r.writeCSV(CategoryPerformanceFile,
		[]string{"category", "order_count", "total_sales", "avg_sale_value", "total_quantity"},
		len(rows), func(i int) []string {
			c := rows[i]
			return []string{c.Category, count(c.OrderCount), money(c.TotalSales), money(c.AvgSaleValue), count(c.TotalQuantity)}
		})
}

// WriteCityPerformance writes city_performance.csv.
func (r *Report) WriteCityPerformance(rows []store.CityPerformance) error {
	return r.writeCSV(CityPerformanceFile,
		[]string{"city", "order_count", "total_sales", "customer_count", "sales_per_customer"},
		len(rows), func(i int) []string {
			c := rows[i]
			return []string{c.City, count(c.OrderCount), money(c.TotalSales), count(c.CustomerCount), money(c.SalesPerCustomer)}
		})
}

// WriteRFMAnalysis writes rfm_analysis.csv, one row per scored customer.
func (r *Report) WriteRFMAnalysis(rows []rfm.ScoredCustomer) error {
	return r.writeCSV(RFMAnalysisFile,
		[]string{"customer_id", "recency", "frequency", "monetary", "R_Score", "F_Score", "M_Score", "RFM_Score", "segment"},
		len(rows), func(i int) []string {
			c := rows[i]
			return []string{
				strconv.FormatInt(c.CustomerID, 10),
				strconv.Itoa(c.Recency),
				strconv.Itoa(c.Frequency),
				money(c.Monetary),
				strconv.Itoa(c.RScore),
				strconv.Itoa(c.FScore),
				strconv.Itoa(c.MScore),
				c.RFMScore,
				string(c.Segment),
			}
		})
}

// WriteSegmentCounts writes segment_counts.csv.
func (r *Report) WriteSegmentCounts(rows []rfm.SegmentCount) error {
	return r.writeCSV(SegmentCountsFile,
		[]string{"segment", "customers"},
		len(rows), func(i int) []string {
			return []string{string(rows[i].Segment), strconv.Itoa(rows[i].Customers)}
		})
}

func (r *Report) writeCSV(name string, header []string, n int, row func(int) []string) error {
	path := r.path(name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if _, err := bw.WriteString(datagen.BOM); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	cw := csv.NewWriter(bw)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	for i := 0; i < n; i++ {
		if err := cw.Write(row(i)); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	r.record(name, KindCSV, n)
	return nil
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func count(v int64) string {
	return strconv.FormatInt(v, 10)
}
