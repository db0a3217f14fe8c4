package pipeline

import (
	"sync"
	"time"

	"github.com/dgallion1/docsplit/internal/splitter"
)

// JobStatus represents the state of a split job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusAnalyzing  JobStatus = "analyzing"
	StatusSplitting  JobStatus = "splitting"
	StatusRebuilding JobStatus = "rebuilding"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Job tracks the state of a single document split.
type Job struct {
	mu sync.Mutex

	ID string `json:"job_id"`

	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	params     splitter.Params
	fileData   []byte
	resultData []byte
	errors     []string
}

// NewJob creates a queued job holding the document bytes and the
// parameters it will be processed with.
func NewJob(filename string, data []byte, params splitter.Params) *Job {
	now := time.Now()
	return &Job{
		ID:        generateULID(),
		Status:    StatusQueued,
		Phase:     "queued",
		Filename:  filename,
		CreatedAt: now,
		UpdatedAt: now,
		params:    params,
		fileData:  data,
	}
}

// Progress tracks what the split found and produced.
type Progress struct {
	Elements int      `json:"elements"`
	Markers  int      `json:"markers"`
	Images   int      `json:"images"`
	Errors   []string `json:"errors"`
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs together with any held document bytes.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetResult stores the rebuilt document with its statistics and drops
// the input bytes.
func (j *Job) SetResult(data []byte, elements, markers, images int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.resultData = data
	j.fileData = nil
	j.Progress.Elements = elements
	j.Progress.Markers = markers
	j.Progress.Images = images
	j.UpdatedAt = time.Now()
}

// FileData returns the raw document bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// ResultData returns the rebuilt document bytes, nil until completion.
func (j *Job) ResultData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.resultData
}

// Params returns the parameters the job was submitted with.
func (j *Job) Params() splitter.Params {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.params
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string    `json:"job_id"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`
	Progress Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:       j.ID,
		Status:   j.Status,
		Phase:    j.Phase,
		Filename: j.Filename,
		Progress: Progress{
			Elements: j.Progress.Elements,
			Markers:  j.Progress.Markers,
			Images:   j.Progress.Images,
			Errors:   errs,
		},
	}
}
