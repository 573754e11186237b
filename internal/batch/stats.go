package batch

import "github.com/MikeSquared-Agency/triage/internal/domain"

type ClassificationStats struct {
	TotalEmails int `json:"total_emails"`
	Support     int `json:"support"`
	Sales       int `json:"sales"`
	Billing     int `json:"billing"`
	Urgent      int `json:"urgent"`
	FYI         int `json:"fyi"`
}

func NewClassificationStats(categories []domain.Category) ClassificationStats {
	s := ClassificationStats{TotalEmails: len(categories)}
	for _, c := range categories {
		switch c {
		case domain.CategorySupport:
			s.Support++
		case domain.CategorySales:
			s.Sales++
		case domain.CategoryBilling:
			s.Billing++
		case domain.CategoryUrgent:
			s.Urgent++
		case domain.CategoryFYI:
			s.FYI++
		}
	}
	return s
}

type ActionItemStats struct {
	TotalActionItems  int                     `json:"total_action_items"`
	ByPriority        map[domain.Priority]int `json:"by_priority"`
	ByStatus          map[domain.Status]int   `json:"by_status"`
	AverageConfidence float64                 `json:"average_confidence"`
}

// NewActionItemStats counts items by priority and status. Every known
// priority and status appears in the maps, zero when absent.
func NewActionItemStats(items []domain.ActionItem) ActionItemStats {
	s := ActionItemStats{
		TotalActionItems: len(items),
		ByPriority:       make(map[domain.Priority]int, len(domain.Priorities)),
		ByStatus:         make(map[domain.Status]int, len(domain.Statuses)),
	}
	for _, p := range domain.Priorities {
		s.ByPriority[p] = 0
	}
	for _, st := range domain.Statuses {
		s.ByStatus[st] = 0
	}

	var total float64
	for _, it := range items {
		s.ByPriority[it.Priority]++
		s.ByStatus[it.Status]++
		total += it.Confidence
	}
	if len(items) > 0 {
		s.AverageConfidence = total / float64(len(items))
	}
	return s
}

type PriorityStats struct {
	TotalEmails     int     `json:"total_emails"`
	HighCount       int     `json:"high_count"`
	MediumCount     int     `json:"medium_count"`
	LowCount        int     `json:"low_count"`
	HighPercentage  float64 `json:"high_percentage"`
	AvgUrgencyScore float64 `json:"avg_urgency_score"`
}

func NewPriorityStats(results []PriorityResult) PriorityStats {
	s := PriorityStats{TotalEmails: len(results)}
	var urgency int
	for _, r := range results {
		urgency += r.UrgencyScore
		switch r.PriorityLevel {
		case domain.PriorityHigh:
			s.HighCount++
		case domain.PriorityMedium:
			s.MediumCount++
		default:
			s.LowCount++
		}
	}
	if s.TotalEmails > 0 {
		s.HighPercentage = float64(s.HighCount) / float64(s.TotalEmails) * 100
		s.AvgUrgencyScore = float64(urgency) / float64(s.TotalEmails)
	}
	return s
}
