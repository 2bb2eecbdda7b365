package services

import (
	"time"
)

// ScheduledInstallment is one line of a computed installment schedule
type ScheduledInstallment struct {
	Index   int       `json:"index"` // 1-based
	DueDate time.Time `json:"due_date"`
	Value   float64   `json:"value"`
	Paid    bool      `json:"paid"`
}

// ScheduleService computes installment due-date schedules.
// Pure computation, no repository access.
type ScheduleService struct{}

// NewScheduleService creates a new schedule service
func NewScheduleService() *ScheduleService {
	return &ScheduleService{}
}

// Schedule returns the ordered installment sequence for a plan. The first
// installment falls on firstDate, each subsequent one intervalDays later.
// Deterministic for identical inputs.
func (s *ScheduleService) Schedule(firstDate time.Time, count, intervalDays int, value float64, paidIndices []int) []ScheduledInstallment {
	if count <= 0 {
		return []ScheduledInstallment{}
	}

	paid := make(map[int]bool, len(paidIndices))
	for _, idx := range paidIndices {
		paid[idx] = true
	}

	schedule := make([]ScheduledInstallment, 0, count)
	for i := 0; i < count; i++ {
		index := i + 1
		schedule = append(schedule, ScheduledInstallment{
			Index:   index,
			DueDate: firstDate.AddDate(0, 0, i*intervalDays),
			Value:   value,
			Paid:    paid[index],
		})
	}
	return schedule
}

// NextDue returns the first unpaid installment, or nil when the plan is settled
func (s *ScheduleService) NextDue(schedule []ScheduledInstallment) *ScheduledInstallment {
	for i := range schedule {
		if !schedule[i].Paid {
			return &schedule[i]
		}
	}
	return nil
}

// InstallmentValue splits a balance into count equal parts.
// Returns 0 when count <= 1: single-payment orders carry no plan.
func (s *ScheduleService) InstallmentValue(total, entry float64, count int) float64 {
	if count <= 1 {
		return 0
	}
	return (total - entry) / float64(count)
}
