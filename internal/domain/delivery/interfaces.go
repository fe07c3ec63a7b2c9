package delivery

import "context"

// Repository manages delivery records, common schedules, and title metadata.
// DeliveryRecords persist indefinitely; pruning is an explicit admin action.
type Repository interface {
	GetRecord(ctx context.Context, title, platformID string) (DeliveryRecord, error)
	UpsertRecord(ctx context.Context, rec DeliveryRecord) error
	DeleteRecord(ctx context.Context, title, platformID string) error

	GetCommonSchedule(ctx context.Context, title string) (CommonSchedule, error)
	UpsertCommonSchedule(ctx context.Context, schedule CommonSchedule) error

	GetTitleMeta(ctx context.Context, title string) (TitleMeta, error)
	SetTitleMeta(ctx context.Context, meta TitleMeta) error
	ListTitleMeta(ctx context.Context) ([]TitleMeta, error)
}

// LaunchSource supplies the reconciled launched-platform set per title.
type LaunchSource interface {
	LaunchedPlatformsForTitle(ctx context.Context, title string) ([]string, error)
}

// ProductionSource supplies live titles and their episode counts from the
// production side.
type ProductionSource interface {
	LiveTitles(ctx context.Context) (map[string]int, error) // title -> total episodes
}
