package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"brdstudio/internal/apiclient"
	"brdstudio/internal/config"
	"brdstudio/internal/domain"
	"brdstudio/internal/pipeline"
	"brdstudio/pkg/ai"
)

// commandContext lazily resolves configuration and shared clients for the
// CLI commands.
type commandContext struct {
	configFlag *string
	serverFlag *string
	langFlag   *string

	cfg    *config.Config
	api    *apiclient.Client
	client *ai.Client
}

func newCommandContext(configFlag, serverFlag, langFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		serverFlag: serverFlag,
		langFlag:   langFlag,
	}
}

func (c *commandContext) ensureConfig() (config.Config, error) {
	if c.cfg == nil {
		cfg, err := config.Load(*c.configFlag)
		if err != nil {
			return config.Config{}, err
		}
		if *c.serverFlag != "" {
			cfg.ServerURL = *c.serverFlag
		}
		c.cfg = &cfg
	}
	return *c.cfg, nil
}

func (c *commandContext) language() domain.Language {
	return domain.ParseLanguage(*c.langFlag)
}

func (c *commandContext) apiClient() (*apiclient.Client, error) {
	if c.api == nil {
		cfg, err := c.ensureConfig()
		if err != nil {
			return nil, err
		}
		c.api = apiclient.NewClient(cfg.ServerURL)
	}
	return c.api, nil
}

// aiClient builds the Gemini client. A missing API key fails here, at the
// first command that actually needs the model.
func (c *commandContext) aiClient() (*ai.Client, error) {
	if c.client == nil {
		cfg, err := c.ensureConfig()
		if err != nil {
			return nil, err
		}
		client, err := ai.NewClient(cfg.GeminiAPIKey, ai.WithModel(cfg.GenerationModel))
		if err != nil {
			return nil, err
		}
		c.client = client
	}
	return c.client, nil
}

func (c *commandContext) newController() (*pipeline.Controller, error) {
	client, err := c.aiClient()
	if err != nil {
		return nil, err
	}
	api, err := c.apiClient()
	if err != nil {
		return nil, err
	}
	ctrl := pipeline.New(client, api)
	ctrl.SetLanguage(c.language())
	return ctrl, nil
}

func loadMediaFile(path string) (pipeline.MediaFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pipeline.MediaFile{}, fmt.Errorf("read %s: %w", path, err)
	}
	return pipeline.MediaFile{
		Name:     filepath.Base(path),
		MimeType: mediaMimeType(path),
		Data:     data,
	}, nil
}

func loadSampleFile(path string) (pipeline.SampleFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pipeline.SampleFile{}, fmt.Errorf("read %s: %w", path, err)
	}
	return pipeline.SampleFile{
		Name:     filepath.Base(path),
		MimeType: mime.TypeByExtension(filepath.Ext(path)),
		Data:     data,
	}, nil
}

func mediaMimeType(path string) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); t != "" {
		return t
	}
	return "application/octet-stream"
}
