package jobs

import (
	"fmt"
)

// Job is a scheduled background task.
type Job interface {
	Name() string
	Start() error
	Stop()
}

// JobManager starts and stops the scheduled jobs as one unit.
type JobManager struct {
	jobs []Job
}

// NewJobManager skips nil entries.
func NewJobManager(jobs ...Job) *JobManager {
	jm := &JobManager{}
	for _, j := range jobs {
		if j != nil {
			jm.jobs = append(jm.jobs, j)
		}
	}
	return jm
}

// StartAll starts jobs in order. If one fails, the ones already started are
// stopped again.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.Start(); err != nil {
			for k := i - 1; k >= 0; k-- {
				jm.jobs[k].Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", j.Name(), err)
		}
	}
	return nil
}

// StopAll stops jobs in reverse start order.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].Stop()
	}
}

func (jm *JobManager) Len() int { return len(jm.jobs) }
