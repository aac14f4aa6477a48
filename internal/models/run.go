package models

import "time"

// Outcome is the terminal state of one pipeline run.
type Outcome string

const (
	OutcomeSuccess             Outcome = "success"
	OutcomeNoPapers            Outcome = "no_papers"
	OutcomeExtractionFailed    Outcome = "extraction_failed"
	OutcomeSummarizationFailed Outcome = "summarization_failed"
	OutcomeRenderFailed        Outcome = "render_failed"
	OutcomeNarrationFailed     Outcome = "narration_failed"
	OutcomeAssemblyFailed      Outcome = "assembly_failed"
)

// Stage names the pipeline step currently executing.
type Stage string

const (
	StageFetch     Stage = "fetch"
	StageExtract   Stage = "extract"
	StageResolve   Stage = "resolve_model"
	StageSummarize Stage = "summarize"
	StageRender    Stage = "render"
	StageNarrate   Stage = "narrate"
	StageAssemble  Stage = "assemble"
	StageReport    Stage = "report"
)

// VideoMode selects how slides and narration are synchronized.
type VideoMode string

const (
	// VideoModeSync shows each slide for the length of its own narration clip.
	VideoModeSync VideoMode = "sync"
	// VideoModeFixed shows every slide for a fixed time under one narration track.
	VideoModeFixed VideoMode = "fixed"
)

// RunResult summarizes one run, successful or not.
type RunResult struct {
	Outcome    Outcome       `json:"outcome"`
	Paper      *PaperRecord  `json:"paper,omitempty"`
	Model      string        `json:"model,omitempty"`
	Digest     *Digest       `json:"digest,omitempty"`
	RunDir     string        `json:"runDir,omitempty"`
	Video      *VideoOutput  `json:"video,omitempty"`
	ReportPath string        `json:"reportPath,omitempty"`
	Elapsed    time.Duration `json:"elapsed"`
}
