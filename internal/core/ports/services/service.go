package services

// ServiceContainer bundles every service facade the handlers need.
type ServiceContainer struct {
	Statement StatementSvcFacade
	Ledger    LedgerSvcFacade
	Reference ReferenceSvcFacade
	Auth      AuthSvcFacade
}
