package initializers

import (
	"context"

	"candidate-flow-backend/config"
	"candidate-flow-backend/fiberlog"
	assessmenthandler "candidate-flow-backend/lib/assessment"
	overdueworker "candidate-flow-backend/lib/assessment/overdue-worker"
	xlsexport "candidate-flow-backend/lib/export/xls"
	pipelinehandler "candidate-flow-backend/lib/pipeline"
	statuscatalogprovider "candidate-flow-backend/lib/status-catalog"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3(ctx)
	statuscatalogprovider.NewHandler()
	pipelinehandler.NewHandler()
	assessmenthandler.NewHandler()
	xlsexport.NewHandler()

	// workers
	overdueworker.StartWorker(ctx)
}
