package main

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/university-registry/internal/service"
	"github.com/noah-isme/university-registry/pkg/config"
	"github.com/noah-isme/university-registry/pkg/storage"
)

//go:embed seed.yaml
var defaultSeed []byte

type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	metrics  *service.MetricsService
	registry *service.UniversitySystem
}

type seedOptions struct {
	enabled bool
	path    string
}

func newApp(cfg *config.Config, logr *zap.Logger, seed seedOptions) (*app, error) {
	metrics := service.NewMetricsService()
	registry := service.NewUniversitySystem(service.RegistryConfig{
		CourseCapacity:     cfg.Registry.CourseCapacity,
		StudentCourseLimit: cfg.Registry.StudentCourseLimit,
		FailingThreshold:   cfg.Registry.FailingThreshold,
	}, metrics, logr)

	a := &app{cfg: cfg, logger: logr, metrics: metrics, registry: registry}
	if seed.enabled {
		if err := a.loadSeed(seed.path); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *app) loadSeed(path string) error {
	var source io.Reader = bytes.NewReader(defaultSeed)
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open seed file: %w", err)
		}
		defer f.Close()
		source = f
	}

	seeds := service.NewSeedService(a.logger)
	seed, err := seeds.Load(source)
	if err != nil {
		return err
	}
	if _, err := seeds.Apply(a.registry, seed); err != nil {
		return err
	}
	return nil
}

func (a *app) reports() map[string]func(io.Writer) {
	return map[string]func(io.Writer){
		"students":    a.registry.ReportAllStudents,
		"courses":     a.registry.ReportAllCourses,
		"grades":      a.registry.ReportGrades,
		"payments":    a.registry.ReportPayments,
		"departments": a.registry.ReportDepartments,
		"stats":       a.registry.ReportGradeStatistics,
	}
}

func (a *app) report(w io.Writer, kind string) error {
	render, ok := a.reports()[kind]
	if !ok {
		return fmt.Errorf("unknown report %q (expected one of %s)", kind, strings.Join(reportKinds(), ", "))
	}
	render(w)
	return nil
}

func (a *app) export(kind, format string) (*service.ExportResult, error) {
	store, err := storage.NewLocalStorage(a.cfg.Export.Dir)
	if err != nil {
		return nil, err
	}
	return service.NewExportService(a.registry, store, a.logger).Generate(kind, format)
}

func (a *app) dumpMetrics(w io.Writer) error {
	return a.metrics.WriteText(w)
}

func reportKinds() []string {
	return []string{"courses", "departments", "grades", "payments", "stats", "students"}
}
