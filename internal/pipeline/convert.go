package pipeline

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/docsplit/internal/analyze"
	"github.com/dgallion1/docsplit/internal/docbuild"
	"github.com/dgallion1/docsplit/internal/splitter"
)

// Result reports one successful document conversion.
type Result struct {
	// Data is the rebuilt document package.
	Data []byte

	Elements int
	Markers  int
	Images   int
}

// Converter runs the whole per-document pipeline: extract, select,
// refine, rebuild. One Converter serves many documents; the boundary
// oracle and its memoization are shared because they are pure.
type Converter struct {
	oracle *analyze.BoundaryOracle
	log    *slog.Logger
}

// NewConverter creates a converter. Segmentation dictionaries load
// lazily on first use.
func NewConverter(log *slog.Logger) *Converter {
	return &Converter{
		oracle: analyze.NewBoundaryOracle(),
		log:    log,
	}
}

// Convert processes one document held in memory and returns the rebuilt
// package with split markers inserted. The pipeline is single-threaded
// and runs to completion or fails; errors are always *DocumentError.
func (c *Converter) Convert(data []byte, params splitter.Params) (*Result, error) {
	return c.ConvertWithProgress(data, params, nil)
}

// ConvertWithProgress is Convert with a phase callback, invoked as the
// pipeline enters each stage. notify may be nil.
func (c *Converter) ConvertWithProgress(data []byte, params splitter.Params, notify func(phase string)) (*Result, error) {
	tell := func(phase string) {
		if notify != nil {
			notify(phase)
		}
	}

	if err := params.Validate(); err != nil {
		return nil, failed(StageExtract, err)
	}

	tell("analyzing")
	src, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, failed(StageOpen, fmt.Errorf("parse document package: %w", err))
	}

	headings, err := analyze.NewHeadingClassifier(params.CustomHeadingRegex)
	if err != nil {
		return nil, failed(StageExtract, err)
	}

	extractor := analyze.NewExtractor(headings, params.TableLengthFactor, params.ImageLengthFactor)
	records := extractor.Extract(src)

	tell("splitting")
	selector := splitter.NewSelector(params, c.oracle)
	refiner := splitter.NewRefiner(params, c.oracle)
	plan := refiner.Refine(records, selector.Select(records))

	tell("rebuilding")
	rebuilder := docbuild.NewReconstructor(params, c.log)
	out, markers := rebuilder.Build(src, plan)

	var buf bytes.Buffer
	if _, err := out.WriteTo(&buf); err != nil {
		return nil, failed(StageRebuild, fmt.Errorf("serialize document package: %w", err))
	}

	images := 0
	for _, rec := range records {
		images += rec.ImageCount()
	}

	return &Result{
		Data:     buf.Bytes(),
		Elements: len(records),
		Markers:  markers,
		Images:   images,
	}, nil
}
