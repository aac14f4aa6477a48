package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/paper-flow/internal/models"
	"github.com/nguyentantai21042004/paper-flow/internal/paper"
	"github.com/nguyentantai21042004/paper-flow/internal/summarizer"
)

// Process orchestrates the entire paper-to-video pipeline
func (p *implProcessor) Process(ctx context.Context) (models.RunResult, error) {
	if err := p.enter(ctx); err != nil {
		return models.RunResult{}, err
	}
	defer p.gate.leave()

	start := p.now()
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting paper run")
	p.logger.Info(ctx, "========================================")

	// Step 1: Fetch candidate papers
	p.notify(models.StageFetch, "fetching papers")
	papers := p.deps.Source.Fetch(ctx, p.cfg.Feed.MaxPapers)
	if len(papers) == 0 {
		p.logger.Info(ctx, "No papers found, nothing to do")
		return models.RunResult{Outcome: models.OutcomeNoPapers, Elapsed: p.since(start)}, nil
	}
	chosen := papers[0]
	result := models.RunResult{Paper: &chosen}
	p.logger.Info(ctx, "Processing: %s", chosen.Title)

	// Step 2: Download the document and extract its text
	p.notify(models.StageExtract, chosen.DocumentLocator)
	text, err := p.deps.Loader.Load(ctx, chosen)
	if err != nil {
		return p.fail(ctx, start, result, models.StageExtract, models.OutcomeExtractionFailed, err)
	}

	return p.produce(ctx, start, result, text)
}

// ProcessDocument runs the pipeline from text extraction onward
func (p *implProcessor) ProcessDocument(ctx context.Context, doc models.PaperRecord, data []byte) (models.RunResult, error) {
	if err := p.enter(ctx); err != nil {
		return models.RunResult{}, err
	}
	defer p.gate.leave()

	start := p.now()
	result := models.RunResult{Paper: &doc}
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting document run: %s", doc.Title)
	p.logger.Info(ctx, "========================================")

	p.notify(models.StageExtract, doc.Title)
	text, err := p.deps.Loader.FromBytes(ctx, doc, data)
	if err != nil {
		return p.fail(ctx, start, result, models.StageExtract, models.OutcomeExtractionFailed, err)
	}

	return p.produce(ctx, start, result, text)
}

// produce takes extracted text through summarization, slides, narration and
// assembly.
func (p *implProcessor) produce(ctx context.Context, start time.Time, result models.RunResult, text models.ExtractedText) (models.RunResult, error) {
	title := text.Paper.Title
	p.logger.Info(ctx, "Extracted %d characters", text.Length)

	// Step 3: Pick the model this run commits to
	p.notify(models.StageResolve, p.cfg.Gemini.Model)
	model, err := p.deps.Resolver.Resolve(ctx, p.cfg.Gemini.Model)
	if err != nil {
		return p.fail(ctx, start, result, models.StageResolve, models.OutcomeSummarizationFailed, err)
	}
	result.Model = model.Name

	// Step 4: Summarize into three bullets
	p.notify(models.StageSummarize, model.Name)
	digest, err := p.deps.Summarizer.Summarize(ctx, text.Body, title, model)
	if err != nil {
		return p.fail(ctx, start, result, models.StageSummarize, models.OutcomeSummarizationFailed, err)
	}
	result.Digest = &digest

	// Artifacts only exist once there is something to show
	stamp := p.now()
	runDir := filepath.Join(p.cfg.Paths.Output, stamp.Format("20060102-150405"))
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return p.fail(ctx, start, result, models.StageRender, models.OutcomeRenderFailed, fmt.Errorf("create run dir: %w", err))
	}
	result.RunDir = runDir

	// Step 5: Compose and render slides
	p.notify(models.StageRender, runDir)
	contents := p.deps.Composer.Compose(title, digest)
	images, err := p.deps.Composer.Render(ctx, contents, runDir)
	if err != nil {
		return p.fail(ctx, start, result, models.StageRender, models.OutcomeRenderFailed, err)
	}

	// Step 6: Narrate and assemble
	videoPath := filepath.Join(runDir, "paper_video_"+stamp.Format("20060102")+".mp4")
	var video models.VideoOutput
	switch p.cfg.Video.Mode {
	case models.VideoModeFixed:
		p.notify(models.StageNarrate, "single narration")
		narration, err := p.deps.Narrator.NarrateDigest(ctx, title, digest, runDir)
		if err != nil {
			return p.fail(ctx, start, result, models.StageNarrate, models.OutcomeNarrationFailed, err)
		}
		p.notify(models.StageAssemble, videoPath)
		video, err = p.deps.Assembler.AssembleFixed(ctx, images, narration, videoPath)
		if err != nil {
			return p.fail(ctx, start, result, models.StageAssemble, models.OutcomeAssemblyFailed, err)
		}
	default:
		p.notify(models.StageNarrate, fmt.Sprintf("%d slides", len(contents)))
		clips, err := p.deps.Narrator.NarrateSlides(ctx, contents, runDir)
		if err != nil {
			return p.fail(ctx, start, result, models.StageNarrate, models.OutcomeNarrationFailed, err)
		}
		p.notify(models.StageAssemble, videoPath)
		video, err = p.deps.Assembler.Assemble(ctx, images, clips, videoPath)
		if err != nil {
			return p.fail(ctx, start, result, models.StageAssemble, models.OutcomeAssemblyFailed, err)
		}
	}
	result.Video = &video

	// Step 7: Digest report, best effort
	p.notify(models.StageReport, "writing digest report")
	reportPath := filepath.Join(runDir, paper.SafeFilename(title)+".docx")
	report := summarizer.DigestReport{
		Title:       title,
		Locator:     text.Paper.DocumentLocator,
		Model:       model.Name,
		Digest:      digest,
		GeneratedAt: stamp,
	}
	if err := summarizer.WriteDigestDocx(report, reportPath); err != nil {
		p.logger.Warn(ctx, "Failed to write digest report: %v", err)
	} else {
		result.ReportPath = reportPath
	}

	result.Outcome = models.OutcomeSuccess
	result.Elapsed = p.since(start)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Run completed successfully!")
	p.logger.Info(ctx, "Model: %s", model.Name)
	p.logger.Info(ctx, "Output video: %s (%.1fs)", video.Path, video.TotalDuration)
	p.logger.Info(ctx, "Processing time: %s", result.Elapsed)
	p.logger.Info(ctx, "========================================")
	return result, nil
}

func (p *implProcessor) fail(ctx context.Context, start time.Time, result models.RunResult, stage models.Stage, outcome models.Outcome, err error) (models.RunResult, error) {
	result.Outcome = outcome
	result.Elapsed = p.since(start)

	if errors.Is(err, summarizer.ErrMissingCredential) {
		p.logger.Error(ctx, "GEMINI_API_KEY is not set")
	}
	p.logger.Error(ctx, "Run ended at %s (%s): %v", stage, outcome, err)
	return result, &StageError{Stage: stage, Outcome: outcome, Err: err}
}

func (p *implProcessor) enter(ctx context.Context) error {
	if p.gate.busy() {
		p.logger.Info(ctx, "Another run is in progress, waiting")
	}
	return p.gate.enter(ctx)
}

func (p *implProcessor) notify(stage models.Stage, message string) {
	if p.observer != nil {
		p.observer(stage, message)
	}
}

func (p *implProcessor) since(start time.Time) time.Duration {
	return p.now().Sub(start)
}
