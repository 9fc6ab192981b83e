package dashboarding

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrDataSource indica que o banco não respondeu ou uma consulta falhou
var ErrDataSource = errors.New("dashboard data source error")

// Step identifica a etapa do cálculo do snapshot que falhou
type Step string

const (
	StepRecentSales       Step = "recent_sales"
	StepTotalSales        Step = "total_sales"
	StepSalesTrend        Step = "sales_trend"
	StepInventory         Step = "inventory"
	StepTotalCustomers    Step = "total_customers"
	StepActiveCustomers   Step = "active_customers"
	StepCustomerRetention Step = "customer_retention"
)

// DataSourceError carrega a etapa que falhou e o erro original do repositório
type DataSourceError struct {
	Step Step
	Err  error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("%s (%s): %v", ErrDataSource.Error(), e.Step, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// Is permite errors.Is(err, ErrDataSource) sem perder o erro original no Unwrap
func (e *DataSourceError) Is(target error) bool {
	return target == ErrDataSource
}

func newDataSourceError(step Step, err error) error {
	if err == nil {
		return nil
	}

	return &DataSourceError{Step: step, Err: err}
}
