package statcard

import "github.com/wellnest/wellness-api/internal/core/domain"

// FromStat builds card props for a dashboard stat, resolving its icon name
// through the registry.
func FromStat(s domain.Stat) Props {
	icon, _ := LookupIcon(s.Icon)
	return Props{
		Title:    s.Title,
		Value:    s.Value,
		Subtitle: s.Subtitle,
		Icon:     icon,
		Trend:    s.Trend,
	}
}
