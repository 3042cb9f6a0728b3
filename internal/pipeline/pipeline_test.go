package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"resumeforge-utils/internal/config"
	"resumeforge-utils/pkg/models"
	"resumeforge-utils/pkg/utils"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

func testTemplate() *models.ResumeTemplate {
	return &models.ResumeTemplate{
		ID:   "tmpl_modern",
		Name: "Modern",
		Sections: []models.SectionDefinition{
			{ID: "contact", Type: "contact", Required: true, Fields: []models.FieldRule{
				{Field: "name", Required: true},
				{Field: "email", Required: true},
			}},
			{ID: "summary", Type: "text"},
			{ID: "experience", Type: "timeline", Required: true},
			{ID: "education", Type: "timeline"},
			{ID: "skills", Type: "groups"},
			{ID: "projects", Type: "cards"},
		},
	}
}

func testResume() *models.ResumeData {
	return &models.ResumeData{
		ID: "resume_1",
		PersonalInfo: models.PersonalInfo{
			Name:  "Ada Lovelace",
			Email: "ada@example.com",
			Phone: "+1 555 0100",
		},
		Summary: "Engineer with a decade of distributed-systems work.",
		Experience: []models.ExperienceItem{
			{Title: "Staff Engineer", Company: "Analytical Engines", StartDate: "2019", Current: true,
				Highlights: []string{"Led the render pipeline rewrite"}},
		},
		Education: []models.EducationItem{
			{Institution: "University of London", Degree: "BSc Mathematics", EndDate: "2012"},
		},
		Skills: []models.SkillGroup{
			{Category: "Languages", Items: []string{"Go", "Python"}},
		},
	}
}

// slowBinder blocks until its delay elapses or the stage context is
// cancelled.
type slowBinder struct {
	delay time.Duration
}

func (b *slowBinder) Bind(ctx context.Context, template *models.ResumeTemplate,
	resume *models.ResumeData, overrides *models.CustomizationSnapshot) (*models.BindingResult, error) {
	select {
	case <-time.After(b.delay):
		return NewDefaultBinder().Bind(ctx, template, resume, overrides)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestRenderEndToEnd(t *testing.T) {
	p := New(testConfig(t), nil, nil)

	result, warnings, err := p.Render(context.Background(), testTemplate(), testResume(), models.RenderingOptions{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if result.TemplateID != "tmpl_modern" || result.ResumeID != "resume_1" {
		t.Errorf("artifact identity wrong: %+v", result)
	}
	if !strings.Contains(result.Rendered.HTML, `data-section="contact"`) {
		t.Error("markup missing the contact section")
	}
	if !strings.Contains(result.Rendered.HTML, "Ada Lovelace") {
		t.Error("markup missing the candidate name")
	}
	if !strings.Contains(result.Rendered.CSS, ":root") {
		t.Error("stylesheet missing color custom properties")
	}
	if result.Metadata.Checksum == "" {
		t.Error("checksum not stamped")
	}
	if result.Metadata.Size.Total != result.Metadata.Size.HTML+result.Metadata.Size.CSS {
		t.Errorf("size total inconsistent: %+v", result.Metadata.Size)
	}

	// The projects section has no data: one skip warning, not an error.
	found := false
	for _, w := range warnings {
		if strings.Contains(w.Message, `"projects"`) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a skip warning for the empty projects section, got %v", warnings)
	}
}

func TestRenderSectionsFollowCustomizationOrder(t *testing.T) {
	p := New(testConfig(t), nil, nil)

	visibility := map[string]models.SectionConfig{
		"contact":    {ID: "contact", Visible: true, Order: 1},
		"summary":    {ID: "summary", Visible: true, Order: 4},
		"experience": {ID: "experience", Visible: true, Order: 2},
		"education":  {ID: "education", Visible: true, Order: 3},
		"skills":     {ID: "skills", Visible: false, Order: 5},
		"projects":   {ID: "projects", Visible: true, Order: 6},
	}
	options := models.RenderingOptions{
		Customizations: &models.CustomizationSnapshot{SectionVisibility: visibility},
	}

	result, _, err := p.Render(context.Background(), testTemplate(), testResume(), options)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	html := result.Rendered.HTML
	if strings.Contains(html, `data-section="skills"`) {
		t.Error("hidden skills section should not be rendered")
	}
	expIdx := strings.Index(html, `data-section="experience"`)
	sumIdx := strings.Index(html, `data-section="summary"`)
	if expIdx < 0 || sumIdx < 0 || expIdx > sumIdx {
		t.Error("sections not emitted in customized order")
	}
}

func TestRenderUnsupportedFormatDowngrades(t *testing.T) {
	p := New(testConfig(t), nil, nil)

	result, warnings, err := p.Render(context.Background(), testTemplate(), testResume(),
		models.RenderingOptions{Format: "xml"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if result == nil {
		t.Fatal("downgraded format should still produce output")
	}

	count := 0
	for _, w := range warnings {
		if strings.Contains(w.Message, "unsupported output format") {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one format warning, got %d", count)
	}
}

func TestRenderRejectsMissingTemplate(t *testing.T) {
	p := New(testConfig(t), nil, nil)

	_, _, err := p.Render(context.Background(), nil, testResume(), models.RenderingOptions{})
	if err == nil {
		t.Fatal("expected error for nil template")
	}
	if !utils.IsKind(err, utils.ErrValidationFailed) {
		t.Errorf("unexpected error kind: %v", err)
	}
}

func TestRenderRejectsMissingRequiredContent(t *testing.T) {
	p := New(testConfig(t), nil, nil)

	resume := testResume()
	resume.Experience = nil

	_, _, err := p.Render(context.Background(), testTemplate(), resume, models.RenderingOptions{})
	if err == nil {
		t.Fatal("expected error when a required section has no content")
	}
	if !strings.Contains(err.Error(), "experience") {
		t.Errorf("error should name the missing section: %v", err)
	}
}

func TestRenderStageTimeout(t *testing.T) {
	p := New(testConfig(t), &slowBinder{delay: 500 * time.Millisecond}, nil)

	_, _, err := p.Render(context.Background(), testTemplate(), testResume(),
		models.RenderingOptions{Timeout: 30 * time.Millisecond})
	if err == nil {
		t.Fatal("expected timeout error from the binding stage")
	}
	if !strings.Contains(err.Error(), "stage timed out after 30ms") {
		t.Errorf("unexpected timeout message: %v", err)
	}
}

func TestOptionalStageFailureDegradesToWarning(t *testing.T) {
	original := optimizeFn
	optimizeFn = func(ctx context.Context, rc *RenderingContext, opts models.OptimizationOptions) error {
		return errors.New("transform exploded")
	}
	defer func() { optimizeFn = original }()

	p := New(testConfig(t), nil, nil)
	result, warnings, err := p.Render(context.Background(), testTemplate(), testResume(),
		models.RenderingOptions{Optimization: models.OptimizationOptions{MinifyHTML: true}})
	if err != nil {
		t.Fatalf("optional failure must not abort: %v", err)
	}
	if result == nil || result.Rendered.HTML == "" {
		t.Fatal("unoptimized artifacts should be kept")
	}

	found := false
	for _, w := range warnings {
		if strings.Contains(w.Message, "stage failed but is not critical") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected the non-critical failure warning, got %v", warnings)
	}
}

func TestOptimizationInlinesAndMinifies(t *testing.T) {
	p := New(testConfig(t), nil, nil)

	options := models.RenderingOptions{
		Optimization: models.OptimizationOptions{MinifyCSS: true, InlineCSS: true},
	}
	result, _, err := p.Render(context.Background(), testTemplate(), testResume(), options)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(result.Rendered.HTML, "<style>") {
		t.Error("stylesheet should be inlined into the markup")
	}
	if strings.Contains(result.Rendered.CSS, "\n  ") {
		t.Error("minified stylesheet should not keep indented lines")
	}
}

func TestMetricsSurface(t *testing.T) {
	p := New(testConfig(t), nil, nil)

	if _, _, err := p.Render(context.Background(), testTemplate(), testResume(), models.RenderingOptions{}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	snapshot := p.Metrics().Snapshot()
	for _, stage := range []string{StageValidation, StageDataBinding, StageOutput} {
		metric, ok := snapshot[stage]
		if !ok {
			t.Errorf("missing metric for %s stage", stage)
			continue
		}
		if metric.Count < 1 {
			t.Errorf("%s count = %d, want >= 1", stage, metric.Count)
		}
	}

	p.Metrics().Reset()
	if len(p.Metrics().Snapshot()) != 0 {
		t.Error("reset should clear the stage map")
	}
}

func TestDefaultBinderCompleteness(t *testing.T) {
	result, err := NewDefaultBinder().Bind(context.Background(), testTemplate(), testResume(), nil)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if !result.Success {
		t.Fatalf("binding should succeed: %+v", result.Errors)
	}
	if result.Metadata.BoundFields != 5 {
		t.Errorf("bound fields = %d, want 5", result.Metadata.BoundFields)
	}
	if result.Metadata.DataCompleteness <= 80 || result.Metadata.DataCompleteness > 100 {
		t.Errorf("completeness = %.1f", result.Metadata.DataCompleteness)
	}
}
