package generate

import (
	"os"
	"path/filepath"

	"github.com/quickcart/commerce-analytics/internal/dataset"
	pkgerrors "github.com/quickcart/commerce-analytics/pkg/errors"
)

// Write persists the four base tables under dir, creating it if needed.
// Tables are written in insertion order with a header row.
func (d *Dataset) Write(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeIO, err, "creating data directory")
	}
	if err := dataset.WriteFile(filepath.Join(dir, dataset.ProductsFile), d.Products); err != nil {
		return err
	}
	if err := dataset.WriteFile(filepath.Join(dir, dataset.CustomersFile), d.Customers); err != nil {
		return err
	}
	if err := dataset.WriteFile(filepath.Join(dir, dataset.StoresFile), d.Stores); err != nil {
		return err
	}
	if err := dataset.WriteFile(filepath.Join(dir, dataset.OrdersFile), d.Orders); err != nil {
		return err
	}
	return dataset.WriteFile(filepath.Join(dir, dataset.PaymentsFile), d.Payments)
}
