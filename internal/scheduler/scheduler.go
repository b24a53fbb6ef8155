package scheduler

import (
	"log"

	"github.com/robfig/cron/v3"

	"github.com/lzhang-md/drivetidy/internal/config"
	"github.com/lzhang-md/drivetidy/internal/jobs"
)

// Scheduler enqueues periodic junk cleans for the configured folders
// on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	queue    *jobs.Queue
	schedule string
	folders  []config.CleanFolder
}

// New creates a scheduler for the given cron expression and folders.
// An empty schedule or folder list disables it.
func New(queue *jobs.Queue, schedule string, folders []config.CleanFolder) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		queue:    queue,
		schedule: schedule,
		folders:  folders,
	}
}

// Start registers the clean job and begins the cron loop.
func (s *Scheduler) Start() error {
	if s.schedule == "" || len(s.folders) == 0 {
		log.Println("[scheduler] no clean schedule configured, scheduler idle")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.enqueueCleans); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("[scheduler] scheduled clean started (%q, %d folders)", s.schedule, len(s.folders))
	return nil
}

// Stop halts the cron loop, waiting for a running trigger to return.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("[scheduler] scheduler stopped")
}

func (s *Scheduler) enqueueCleans() {
	for _, f := range s.folders {
		payload := jobs.OrganizePayload{FolderID: f.ID, FolderName: f.Name}
		if _, err := s.queue.EnqueueUnique(jobs.TaskCleanFolder, payload, "clean:"+f.ID); err != nil {
			log.Printf("[scheduler] error enqueueing clean for %q: %v", f.Name, err)
			continue
		}
		log.Printf("[scheduler] clean queued for folder %q", f.Name)
	}
}
