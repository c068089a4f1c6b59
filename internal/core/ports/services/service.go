package services

// ServiceContainer holds instances of all the application services. It is
// the single entry point handlers receive.
type ServiceContainer struct {
	Tally       TallyClientSvc
	Masters     MasterAnalyzerSvc
	Vouchers    VoucherAssemblerSvc
	Grouping    RowGrouperSvc
	LedgerCache LedgerCacheSvc
	Importer    ImporterSvc
	Logs        ImportLogSvc
}
