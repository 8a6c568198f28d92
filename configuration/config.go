package configuration

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"anpr/pkg/anpr"
)

// Config contains the settings for the server and the recognition pipeline.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Fines    map[string]int `yaml:"fines"` // category -> amount; empty keeps the built-in table
}

// ServerConfig contains the HTTP and filesystem settings.
type ServerConfig struct {
	Address    string `yaml:"address"`    // listen address, e.g. :8081
	UploadBase string `yaml:"uploadBase"` // base directory for stored uploads
	WatchDir   string `yaml:"watchDir"`   // optional inbox directory for the watch worker
}

// PipelineConfig mirrors the pipeline knobs. Zero values fall back to the
// pipeline defaults.
type PipelineConfig struct {
	WeightsPath         string  `yaml:"weightsPath"`         // detector weights file
	MinDetectionScore   float64 `yaml:"minDetectionScore"`   // 0-1, detections below are treated as absent
	FallbackWidthRatio  float64 `yaml:"fallbackWidthRatio"`  // center-crop width fraction
	FallbackHeightRatio float64 `yaml:"fallbackHeightRatio"` // center-crop height fraction
	StripRatio          float64 `yaml:"stripRatio"`          // left badge strip fraction
	UpscaleFactor       float64 `yaml:"upscaleFactor"`       // enlargement before thresholding
	ThresholdWindow     int     `yaml:"thresholdWindow"`     // adaptive threshold neighborhood
	ThresholdBias       int     `yaml:"thresholdBias"`       // offset below the neighborhood mean
	Language            string  `yaml:"language"`            // tesseract language pack
}

// GetConfig reads a yaml config file. A missing file is not an error: the
// defaults apply.
func GetConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// PipelineSettings converts the file settings into a validated pipeline
// config. Unset fields keep the pipeline defaults.
func (c Config) PipelineSettings() anpr.Config {
	out := anpr.DefaultConfig()
	p := c.Pipeline
	if p.WeightsPath != "" {
		out.WeightsPath = p.WeightsPath
	}
	if p.MinDetectionScore > 0 {
		out.MinDetectionScore = p.MinDetectionScore
	}
	if p.FallbackWidthRatio > 0 {
		out.FallbackWidthRatio = p.FallbackWidthRatio
	}
	if p.FallbackHeightRatio > 0 {
		out.FallbackHeightRatio = p.FallbackHeightRatio
	}
	if p.StripRatio > 0 {
		out.StripRatio = p.StripRatio
	}
	if p.UpscaleFactor > 0 {
		out.UpscaleFactor = p.UpscaleFactor
	}
	if p.ThresholdWindow > 0 {
		out.ThresholdWindow = p.ThresholdWindow
	}
	if p.ThresholdBias > 0 {
		out.ThresholdBias = p.ThresholdBias
	}
	if p.Language != "" {
		out.Language = p.Language
	}
	if len(c.Fines) > 0 {
		out.Fines = anpr.FineTable(c.Fines)
	}
	out.Validate()
	return out
}
