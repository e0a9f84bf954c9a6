package model

import (
	"time"

	"github.com/google/uuid"
)

// PipelineState is the state of a release pipeline run
type PipelineState string

const (
	PipelineIdle      PipelineState = "idle"
	PipelineRunning   PipelineState = "running"
	PipelineSucceeded PipelineState = "succeeded"
	PipelineFailed    PipelineState = "failed"
)

// IsTerminal reports whether no further transition can happen
func (s PipelineState) IsTerminal() bool {
	return s == PipelineSucceeded || s == PipelineFailed
}

// PipelineResult describes a finished pipeline run
type PipelineResult struct {
	RunID      uuid.UUID
	Name       string
	State      PipelineState
	Executed   []string // Step names in execution order, including a failed one
	FailedStep string
	Err        error
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration returns the wall time of the run
func (r *PipelineResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Preset names a fixed sequence of release steps
type Preset string

const (
	PresetVerify        Preset = "verify"
	PresetBranch        Preset = "branch"
	PresetTag           Preset = "tag"
	PresetSetTagVersion Preset = "set-tag-version"
	PresetSetDevVersion Preset = "set-dev-version"
)
