package services

import (
	"github.com/graficaflow/grafica-api/internal/jobs"
)

// JobService exposes worker pool statistics
type JobService struct {
	worker *jobs.Worker
}

func NewJobService(worker *jobs.Worker) *JobService {
	return &JobService{worker: worker}
}

// Stats returns the current worker statistics
func (s *JobService) Stats() jobs.WorkerStats {
	return s.worker.GetStats()
}
