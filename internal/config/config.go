package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"str-underwriter/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML). Every field is a
// default applied when a request or flag leaves the matching input out.
type Config struct {
	// Optional: load financing terms from a separate YAML (e.g. examples/presets/*.yaml).
	// If both PresetFile and Financing are provided, Financing overrides PresetFile.
	PresetFile string          `yaml:"preset_file"`
	Financing  FinancingConfig `yaml:"financing"`
	Operating  OperatingConfig `yaml:"operating"`
	Tax        TaxConfig       `yaml:"tax"`
}

type FinancingConfig struct {
	Name string `yaml:"name"`
	// LoanPct is a pointer because 0 (all cash) is a real choice.
	LoanPct      *float64 `yaml:"loan_pct"`
	InterestRate float64  `yaml:"interest_rate"`
	TermYears    int      `yaml:"term_years"`
}

type OperatingConfig struct {
	OccupancyRate float64 `yaml:"occupancy_rate"`
	NightlyRate   float64 `yaml:"nightly_rate"`
	ExpenseRatio  float64 `yaml:"expense_ratio"`
	Insurance     float64 `yaml:"insurance"`
}

type TaxConfig struct {
	Rate                 float64 `yaml:"rate"`
	DefaultAssessedValue float64 `yaml:"default_assessed_value"`
	// DefaultAnnual is the yearly tax used when no listing was looked up.
	DefaultAnnual float64 `yaml:"default_annual"`
}

// Default returns the built-in configuration.
func Default() *Config {
	d := model.DefaultInputs()
	loanPct := d.LoanPct
	return &Config{
		Financing: FinancingConfig{
			Name:         "conventional",
			LoanPct:      &loanPct,
			InterestRate: d.InterestRate,
			TermYears:    d.TermYears,
		},
		Operating: OperatingConfig{
			OccupancyRate: d.OccupancyRate,
			NightlyRate:   d.NightlyRate,
			ExpenseRatio:  d.ExpenseRatio,
			Insurance:     d.Insurance,
		},
		Tax: TaxConfig{
			Rate:                 model.DefaultTaxRate,
			DefaultAssessedValue: model.DefaultAssessedValue,
			DefaultAnnual:        d.PropertyTax,
		},
	}
}

// Load reads path, fills unset fields from Default and validates the result.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.PresetFile != "" {
		presetPath := c.PresetFile
		if !filepath.IsAbs(presetPath) {
			// Prefer paths relative to the config file, fall back to cwd.
			cand := filepath.Join(filepath.Dir(path), presetPath)
			if _, err := os.Stat(cand); err == nil {
				presetPath = cand
			}
		}
		loaded, err := LoadPresetFile(presetPath)
		if err != nil {
			return nil, err
		}
		c.Financing = MergeFinancing(loaded, c.Financing)
	}
	return &c, nil
}

// ApplyDefaults fills every zero field from Default.
func (c *Config) ApplyDefaults() {
	d := Default()
	c.Financing = MergeFinancing(d.Financing, c.Financing)
	if c.Operating.OccupancyRate == 0 {
		c.Operating.OccupancyRate = d.Operating.OccupancyRate
	}
	if c.Operating.NightlyRate == 0 {
		c.Operating.NightlyRate = d.Operating.NightlyRate
	}
	if c.Operating.ExpenseRatio == 0 {
		c.Operating.ExpenseRatio = d.Operating.ExpenseRatio
	}
	if c.Operating.Insurance == 0 {
		c.Operating.Insurance = d.Operating.Insurance
	}
	if c.Tax.Rate == 0 {
		c.Tax.Rate = d.Tax.Rate
	}
	if c.Tax.DefaultAssessedValue == 0 {
		c.Tax.DefaultAssessedValue = d.Tax.DefaultAssessedValue
	}
	if c.Tax.DefaultAnnual == 0 {
		c.Tax.DefaultAnnual = d.Tax.DefaultAnnual
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Tax.Rate < 0 {
		return errors.New("tax.rate must be >= 0")
	}
	if c.Tax.DefaultAssessedValue < 0 {
		return errors.New("tax.default_assessed_value must be >= 0")
	}
	if c.Tax.DefaultAnnual < 0 {
		return errors.New("tax.default_annual must be >= 0")
	}
	// Validate everything else by building inputs for a nominal price.
	in := c.BaseInputs(1, 0)
	if err := in.Validate(); err != nil {
		return fmt.Errorf("config invalid: %w", err)
	}
	return nil
}

// ManualInputs builds proforma inputs when no listing was looked up;
// property tax is tax.default_annual.
func (c *Config) ManualInputs() model.Inputs {
	in := c.BaseInputs(0, 0)
	in.PropertyTax = c.Tax.DefaultAnnual
	return in
}

// BaseInputs builds proforma inputs for a listing price. Property tax is
// assessed * tax.rate, using tax.default_assessed_value when assessed <= 0.
func (c *Config) BaseInputs(price, assessed float64) model.Inputs {
	p := model.Property{Price: price, TaxAssessedValue: assessed}
	loanPct := 0.0
	if c.Financing.LoanPct != nil {
		loanPct = *c.Financing.LoanPct
	}
	return model.Inputs{
		PurchasePrice: price,
		LoanPct:       loanPct,
		InterestRate:  c.Financing.InterestRate,
		TermYears:     c.Financing.TermYears,
		OccupancyRate: c.Operating.OccupancyRate,
		NightlyRate:   c.Operating.NightlyRate,
		ExpenseRatio:  c.Operating.ExpenseRatio,
		PropertyTax:   p.AnnualPropertyTax(c.Tax.Rate, c.Tax.DefaultAssessedValue),
		Insurance:     c.Operating.Insurance,
	}
}

type presetFileWrapper struct {
	Financing FinancingConfig `yaml:"financing"`
}

// LoadPresetFile reads a financing preset (a YAML file with a financing: block).
func LoadPresetFile(path string) (FinancingConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return FinancingConfig{}, err
	}
	var w presetFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return FinancingConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return w.Financing, nil
}

// MergeFinancing overlays set fields from override onto base.
func MergeFinancing(base, override FinancingConfig) FinancingConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.LoanPct != nil {
		v := *override.LoanPct
		out.LoanPct = &v
	}
	if override.InterestRate != 0 {
		out.InterestRate = override.InterestRate
	}
	if override.TermYears != 0 {
		out.TermYears = override.TermYears
	}
	return out
}
