package approve_reschedule

import (
	"context"

	approveReschedule "github.com/Mahamundra/Kalbook-sub000/internal/usecase/approve_reschedule"
)

type ApproveRescheduleUseCase interface {
	Execute(ctx context.Context, req *approveReschedule.Request) (*approveReschedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
