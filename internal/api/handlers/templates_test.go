package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestTemplateListContainsBuiltins(t *testing.T) {
	e := echo.New()

	rec := getRequest(t, e, TemplateListHandler(), "/api/v1/templates", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count < 3 {
		t.Errorf("expected at least 3 templates, got %d", resp.Count)
	}
	if !strings.Contains(rec.Body.String(), "tmpl_modern") {
		t.Error("catalog missing the modern template")
	}
}

func TestTemplateGetUnknownReturnsTaxonomyError(t *testing.T) {
	e := echo.New()

	rec := getRequest(t, e, TemplateGetHandler(), "/api/v1/templates/:templateId",
		map[string]string{"templateId": "tmpl_missing"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "TEMPLATE_NOT_FOUND") {
		t.Errorf("expected taxonomy code in body, got %s", rec.Body.String())
	}
}

func TestCustomizationOptionsListsCatalogs(t *testing.T) {
	e := echo.New()

	rec := getRequest(t, e, CustomizationOptionsHandler(), "/api/v1/templates/options", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Themes           []string `json:"themes"`
		FontCombinations []string `json:"font_combinations"`
		LayoutPresets    []string `json:"layout_presets"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Themes) == 0 || len(resp.FontCombinations) == 0 || len(resp.LayoutPresets) == 0 {
		t.Errorf("options incomplete: %+v", resp)
	}
}
