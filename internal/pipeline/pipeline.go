package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resumeforge-utils/internal/config"
	"resumeforge-utils/internal/logging"
	"resumeforge-utils/internal/logging/types"
	"resumeforge-utils/pkg/models"
	"resumeforge-utils/pkg/utils"
)

const pipelineVersion = "1.0.0"

type stageSpec struct {
	name     string
	required bool
	run      func(context.Context, *RenderingContext) error
}

// Pipeline is the stateless render orchestrator. Stages execute strictly in
// order over a fresh RenderingContext per call, each under its own deadline;
// a stage that overruns is cancelled through its context, not abandoned.
type Pipeline struct {
	cfg     *config.Config
	binder  DataBinder
	metrics *Metrics
	log     types.Logger
}

func New(cfg *config.Config, binder DataBinder, metrics *Metrics) *Pipeline {
	if binder == nil {
		binder = NewDefaultBinder()
	}
	if metrics == nil {
		metrics = NewMetrics(cfg.Metrics.Namespace)
	}
	return &Pipeline{
		cfg:     cfg,
		binder:  binder,
		metrics: metrics,
		log:     logging.GetGlobalLogger(),
	}
}

// Metrics exposes the per-stage performance surface.
func (p *Pipeline) Metrics() *Metrics { return p.metrics }

func (p *Pipeline) stages() []stageSpec {
	return []stageSpec{
		{StageValidation, true, p.stageValidation},
		{StageDataBinding, true, p.stageDataBinding},
		{StageContentProcessing, true, p.stageContentProcessing},
		{StageStyling, true, p.stageStyling},
		{StageOptimization, false, p.stageOptimization},
		{StageOutput, true, p.stageOutput},
	}
}

// Render runs the six stages and returns the artifact plus accumulated
// warnings. Optional-stage failures surface as warnings only; a required
// stage failing aborts with a typed error.
func (p *Pipeline) Render(ctx context.Context, template *models.ResumeTemplate,
	resume *models.ResumeData, options models.RenderingOptions) (*models.RenderedTemplate, []models.RenderWarning, error) {

	rc := &RenderingContext{
		Template:  template,
		Resume:    resume,
		Options:   options,
		StartedAt: time.Now(),
	}

	for _, stage := range p.stages() {
		started := time.Now()
		err := p.runStage(ctx, stage, rc)
		p.metrics.ObserveStage(stage.name, time.Since(started), err == nil)

		if err == nil {
			continue
		}
		if stage.required {
			p.metrics.ObserveRender(false)
			p.log.Error("render aborted", map[string]interface{}{
				"stage":       stage.name,
				"template_id": templateID(template),
				"error":       err.Error(),
			})
			return nil, rc.Warnings, utils.AsRenderError(err).
				WithContext(templateID(template), options.UserID).
				WithDetail("stage", stage.name)
		}

		rc.warn(stage.name,
			fmt.Sprintf("%s stage failed but is not critical: %v", stage.name, err),
			"continuing with unoptimized output")
		p.log.Warn("optional stage failed", map[string]interface{}{
			"stage": stage.name,
			"error": err.Error(),
		})
	}

	p.metrics.ObserveRender(true)
	return rc.Result, rc.Warnings, nil
}

// runStage executes one stage against a working copy of the context under a
// per-stage deadline. The copy is committed back only on success, so a
// failed or timed-out stage leaves the context as it stood before.
func (p *Pipeline) runStage(ctx context.Context, stage stageSpec, rc *RenderingContext) error {
	timeout := p.stageTimeout(stage.name, rc.Options)
	stageCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	work := *rc
	done := make(chan error, 1)
	go func() {
		done <- stage.run(stageCtx, &work)
	}()

	select {
	case err := <-done:
		if err == nil {
			*rc = work
			return nil
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("stage timed out after %dms", timeout.Milliseconds())
		}
		return err
	case <-stageCtx.Done():
		// The stage goroutine sees the cancelled context and unwinds; its
		// result is discarded either way.
		if errors.Is(stageCtx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("stage timed out after %dms", timeout.Milliseconds())
		}
		return stageCtx.Err()
	}
}

func (p *Pipeline) stageTimeout(stage string, options models.RenderingOptions) time.Duration {
	if options.Timeout > 0 {
		return options.Timeout
	}
	if timeout := p.cfg.StageTimeout(stage); timeout > 0 {
		return timeout
	}
	return 3 * time.Second
}

func templateID(template *models.ResumeTemplate) string {
	if template == nil {
		return ""
	}
	return template.ID
}

func elapsedSince(start time.Time) time.Duration {
	return time.Since(start)
}
