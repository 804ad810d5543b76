// Package app assembles the services from their shared dependencies.
package app

import (
	"github.com/amirasaad/finance/pkg/config"
	accountsvc "github.com/amirasaad/finance/pkg/service/account"
	authsvc "github.com/amirasaad/finance/pkg/service/auth"
	budgetsvc "github.com/amirasaad/finance/pkg/service/budget"
	dashboardsvc "github.com/amirasaad/finance/pkg/service/dashboard"
	transactionsvc "github.com/amirasaad/finance/pkg/service/transaction"
	transfersvc "github.com/amirasaad/finance/pkg/service/transfer"
	usersvc "github.com/amirasaad/finance/pkg/service/user"
)

// App holds the wired service graph.
type App struct {
	Deps config.Deps

	UserSvc        *usersvc.Service
	AuthSvc        *authsvc.Service
	AccountSvc     *accountsvc.Service
	TransactionSvc *transactionsvc.Service
	TransferSvc    *transfersvc.Service
	BudgetSvc      *budgetsvc.Service
	DashboardSvc   *dashboardsvc.Service
}

// New wires every service from the shared dependencies.
func New(deps config.Deps) *App {
	budgets := budgetsvc.NewService(deps)
	return &App{
		Deps:           deps,
		UserSvc:        usersvc.NewService(deps),
		AuthSvc:        authsvc.NewService(deps),
		AccountSvc:     accountsvc.NewService(deps),
		TransactionSvc: transactionsvc.NewService(deps, budgets),
		TransferSvc:    transfersvc.NewService(deps),
		BudgetSvc:      budgets,
		DashboardSvc:   dashboardsvc.NewService(deps),
	}
}
