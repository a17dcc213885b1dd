package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"str-underwriter/internal/api/models"
	"str-underwriter/internal/config"

	"github.com/gin-gonic/gin"
)

// PresetHandler lists financing presets from a directory of YAML files
type PresetHandler struct {
	presetDir string
}

// NewPresetHandler creates a new preset handler. An empty dir falls back to
// PRESET_DIR, then ./examples/presets.
func NewPresetHandler(dir string) *PresetHandler {
	if dir == "" {
		dir = os.Getenv("PRESET_DIR")
	}
	if dir == "" {
		dir = filepath.Join("examples", "presets")
	}
	if absDir, err := filepath.Abs(dir); err == nil {
		dir = absDir
	}
	log.Printf("PresetHandler: Using preset directory: %s", dir)
	return &PresetHandler{presetDir: dir}
}

// ListPresets handles GET /api/v1/presets
func (h *PresetHandler) ListPresets(c *gin.Context) {
	presets := []models.PresetInfo{}

	entries, err := os.ReadDir(h.presetDir)
	if err != nil {
		log.Printf("PresetHandler: Failed to read preset directory %s: %v", h.presetDir, err)
		c.JSON(http.StatusOK, gin.H{"presets": presets})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		path := filepath.Join(h.presetDir, entry.Name())
		info, err := loadPresetInfo(path, entry.Name())
		if err != nil {
			log.Printf("PresetHandler: Failed to load preset file %s: %v", path, err)
			continue // Skip invalid files
		}
		presets = append(presets, *info)
	}
	sort.Slice(presets, func(i, j int) bool { return presets[i].ID < presets[j].ID })

	c.JSON(http.StatusOK, gin.H{"presets": presets})
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

func loadPresetInfo(path, filename string) (*models.PresetInfo, error) {
	fin, err := config.LoadPresetFile(path)
	if err != nil {
		return nil, err
	}

	// "dscr.yaml" -> "dscr"
	id := strings.TrimSuffix(strings.TrimSuffix(filename, ".yaml"), ".yml")
	name := fin.Name
	if name == "" {
		name = id
	}

	specs := models.FinancingSpecs{
		InterestRate: fin.InterestRate,
		TermYears:    fin.TermYears,
	}
	if fin.LoanPct != nil {
		specs.LoanPct = *fin.LoanPct
	}

	return &models.PresetInfo{
		ID:        id,
		Name:      name,
		File:      path,
		Financing: specs,
	}, nil
}
