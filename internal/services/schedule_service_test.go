package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSchedule_FirstInstallmentOnFirstDate(t *testing.T) {
	svc := NewScheduleService()

	first := date(2025, time.January, 1)
	schedule := svc.Schedule(first, 2, 30, 450.0, nil)

	assert.Len(t, schedule, 2)
	assert.Equal(t, 1, schedule[0].Index)
	assert.Equal(t, date(2025, time.January, 1), schedule[0].DueDate)
	assert.Equal(t, 2, schedule[1].Index)
	assert.Equal(t, date(2025, time.January, 31), schedule[1].DueDate)
	assert.Equal(t, 450.0, schedule[0].Value)
	assert.Equal(t, 450.0, schedule[1].Value)
	assert.False(t, schedule[0].Paid)
	assert.False(t, schedule[1].Paid)
}

func TestSchedule_Deterministic(t *testing.T) {
	svc := NewScheduleService()

	first := date(2025, time.March, 15)
	a := svc.Schedule(first, 4, 15, 250.0, []int{2})
	b := svc.Schedule(first, 4, 15, 250.0, []int{2})

	assert.Equal(t, a, b)
}

func TestSchedule_PaidFlags(t *testing.T) {
	svc := NewScheduleService()

	schedule := svc.Schedule(date(2025, time.January, 1), 3, 30, 300.0, []int{1, 3})

	assert.True(t, schedule[0].Paid)
	assert.False(t, schedule[1].Paid)
	assert.True(t, schedule[2].Paid)
}

func TestSchedule_EmptyForNonPositiveCount(t *testing.T) {
	svc := NewScheduleService()

	assert.Empty(t, svc.Schedule(date(2025, time.January, 1), 0, 30, 100.0, nil))
	assert.Empty(t, svc.Schedule(date(2025, time.January, 1), -2, 30, 100.0, nil))
}

func TestNextDue(t *testing.T) {
	svc := NewScheduleService()

	schedule := svc.Schedule(date(2025, time.January, 1), 3, 30, 300.0, []int{1})
	next := svc.NextDue(schedule)

	assert.NotNil(t, next)
	assert.Equal(t, 2, next.Index)

	settled := svc.Schedule(date(2025, time.January, 1), 2, 30, 300.0, []int{1, 2})
	assert.Nil(t, svc.NextDue(settled))
}

func TestInstallmentValue(t *testing.T) {
	svc := NewScheduleService()

	assert.Equal(t, 300.0, svc.InstallmentValue(1000, 100, 3))
	assert.InDelta(t, 333.3333, svc.InstallmentValue(1000, 0, 3), 0.001)

	// Single payment orders carry no plan
	assert.Equal(t, 0.0, svc.InstallmentValue(1000, 100, 1))
	assert.Equal(t, 0.0, svc.InstallmentValue(1000, 100, 0))
}
