package hcl

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/vk/attrinspect/internal/config"
	"github.com/vk/attrinspect/internal/ctxlog"
)

// merge applies the settings present in root over model.
func (l *Loader) merge(ctx context.Context, model *config.Model, file string, root *fileRoot) {
	logger := ctxlog.FromContext(ctx).With("file", file)
	baseDir := filepath.Dir(file)

	if root.Schema != nil {
		model.SchemaPath = resolvePath(baseDir, *root.Schema)
		logger.Debug("Schema path set.", "path", model.SchemaPath)
	}
	if root.Document != nil {
		model.DocumentPath = resolvePath(baseDir, *root.Document)
		logger.Debug("Document path set.", "path", model.DocumentPath)
	}

	if b := root.Log; b != nil {
		setString(&model.Log.Level, b.Level, strings.ToLower)
		setString(&model.Log.Format, b.Format, strings.ToLower)
	}
	if b := root.Window; b != nil {
		setString(&model.Window.Tab, b.Tab, strings.ToLower)
		if b.Hidden != nil {
			model.Window.Hidden = *b.Hidden
		}
		if b.Watch != nil {
			model.Window.Watch = *b.Watch
		}
	}
	if b := root.Notify; b != nil {
		setString(&model.Notify.URL, b.URL, strings.TrimSpace)
		setString(&model.Notify.Namespace, b.Namespace, strings.TrimSpace)
		if b.InsecureSkipVerify != nil {
			model.Notify.InsecureSkipVerify = *b.InsecureSkipVerify
		}
	}
}

func setString(dst *string, src *string, normalize func(string) string) {
	if src != nil {
		*dst = normalize(*src)
	}
}

// resolvePath makes a relative path relative to the config file directory.
func resolvePath(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
