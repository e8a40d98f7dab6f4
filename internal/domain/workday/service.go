package workday

import "context"

type WorkDayService interface {
	Save(ctx context.Context, userID string, req SaveWorkDayRequest) (WorkDayResponse, error)
	Get(ctx context.Context, userID, date string) (WorkDayResponse, error)
	List(ctx context.Context, userID string, req ListWorkDaysRequest) ([]WorkDayResponse, error)
	Delete(ctx context.Context, userID, date string) error

	// Preview computes the metrics of req without storing anything.
	Preview(ctx context.Context, req SaveWorkDayRequest) (WorkDayResponse, error)
}
