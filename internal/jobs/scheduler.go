package jobs

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Job is a periodic background task.
type Job interface {
	Name() string
	Interval() time.Duration
	Run(ctx context.Context) error
}

// Scheduler runs registered jobs on their intervals. It wraps gocron so jobs
// only declare what to do and how often.
type Scheduler struct {
	scheduler gocron.Scheduler
	jobs      []Job
}

// NewScheduler creates a new job scheduler
func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &Scheduler{scheduler: s}, nil
}

// Register adds a job to the scheduler
func (s *Scheduler) Register(job Job) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(job.Interval()),
		gocron.NewTask(func() {
			started := time.Now()
			log.Printf("▶️  [SCHEDULER] Running job: %s", job.Name())
			if err := job.Run(context.Background()); err != nil {
				log.Printf("❌ [SCHEDULER] Job '%s' failed: %v", job.Name(), err)
				return
			}
			log.Printf("✅ [SCHEDULER] Job '%s' completed in %v", job.Name(), time.Since(started))
		}),
	)
	if err != nil {
		return err
	}

	s.jobs = append(s.jobs, job)
	log.Printf("✅ [SCHEDULER] Registered job: %s (every %v)", job.Name(), job.Interval())
	return nil
}

// Start begins running all registered jobs
func (s *Scheduler) Start() {
	log.Printf("🚀 [SCHEDULER] Starting job scheduler with %d jobs", len(s.jobs))
	s.scheduler.Start()
}

// Stop gracefully stops all jobs
func (s *Scheduler) Stop() {
	log.Println("🛑 [SCHEDULER] Stopping job scheduler...")
	if err := s.scheduler.Shutdown(); err != nil {
		log.Printf("⚠️  [SCHEDULER] Shutdown error: %v", err)
	}
	log.Println("✅ [SCHEDULER] Job scheduler stopped")
}
