package stats

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// Overview represents moderation dashboard statistics
type Overview struct {
	TotalUsers  int `json:"total_users"`
	BannedUsers int `json:"banned_users"`

	TotalAdmins     int `json:"total_admins"`
	ActiveAdmins    int `json:"active_admins"`
	SuspendedAdmins int `json:"suspended_admins"`

	PendingReports   int `json:"pending_reports"`
	ResolvedReports  int `json:"resolved_reports"`
	DismissedReports int `json:"dismissed_reports"`

	ActionsToday     int `json:"actions_today"`
	ActionsThisWeek  int `json:"actions_this_week"`
	BansLast30Days   int `json:"bans_last_30_days"`
	UnbansLast30Days int `json:"unbans_last_30_days"`
}

// Service aggregates moderation statistics. Individual counts are best
// effort: a failed aggregate stays zero rather than failing the whole
// overview.
type Service struct {
	db *sqlx.DB
}

// NewService creates stats service
func NewService(db *sqlx.DB) *Service {
	return &Service{db: db}
}

// Overview returns the moderation overview
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	stats := &Overview{}
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekAgo := now.AddDate(0, 0, -7)
	thirtyDaysAgo := now.AddDate(0, 0, -30)

	_ = s.db.GetContext(ctx, &stats.TotalUsers,
		`SELECT COUNT(*) FROM users`)

	_ = s.db.GetContext(ctx, &stats.BannedUsers,
		`SELECT COUNT(*) FROM users WHERE is_banned = true`)

	_ = s.db.GetContext(ctx, &stats.TotalAdmins,
		`SELECT COUNT(*) FROM admins`)

	_ = s.db.GetContext(ctx, &stats.ActiveAdmins,
		`SELECT COUNT(*) FROM admins WHERE status = 'active'`)

	_ = s.db.GetContext(ctx, &stats.SuspendedAdmins,
		`SELECT COUNT(*) FROM admins WHERE status = 'suspended'`)

	_ = s.db.GetContext(ctx, &stats.PendingReports,
		`SELECT COUNT(*) FROM reports WHERE status = 'pending'`)

	_ = s.db.GetContext(ctx, &stats.ResolvedReports,
		`SELECT COUNT(*) FROM reports WHERE status = 'resolved'`)

	_ = s.db.GetContext(ctx, &stats.DismissedReports,
		`SELECT COUNT(*) FROM reports WHERE status = 'dismissed'`)

	_ = s.db.GetContext(ctx, &stats.ActionsToday,
		`SELECT COUNT(*) FROM audit_logs WHERE created_at >= $1`, startOfDay)

	_ = s.db.GetContext(ctx, &stats.ActionsThisWeek,
		`SELECT COUNT(*) FROM audit_logs WHERE created_at >= $1`, weekAgo)

	_ = s.db.GetContext(ctx, &stats.BansLast30Days,
		`SELECT COUNT(*) FROM audit_logs WHERE action = 'ban_user' AND created_at >= $1`, thirtyDaysAgo)

	_ = s.db.GetContext(ctx, &stats.UnbansLast30Days,
		`SELECT COUNT(*) FROM audit_logs WHERE action = 'unban_user' AND created_at >= $1`, thirtyDaysAgo)

	return stats, nil
}
