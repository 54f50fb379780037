package config

import (
	"sort"

	"github.com/rgehrsitz/healthsim/internal/domain"
)

// ServiceEntry pairs a service identifier with its display name
type ServiceEntry struct {
	DisplayName string `json:"display_name"`
	ServiceID   string `json:"service_id"`
}

// ServiceCatalog lists every service type any plan covers on either network,
// deduplicated and sorted by display name then identifier
func ServiceCatalog(config *domain.Configuration) []ServiceEntry {
	seen := make(map[string]bool)
	var entries []ServiceEntry
	for _, plan := range config.Plans {
		for _, id := range plan.ServiceNames() {
			if seen[id] {
				continue
			}
			seen[id] = true
			entries = append(entries, ServiceEntry{
				DisplayName: config.DisplayName(id),
				ServiceID:   id,
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].DisplayName != entries[j].DisplayName {
			return entries[i].DisplayName < entries[j].DisplayName
		}
		return entries[i].ServiceID < entries[j].ServiceID
	})
	return entries
}
