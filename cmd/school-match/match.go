// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/someonegg/stablematch/school"
)

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

func doMatch(stdout io.Writer, dataFile, outFile, format string,
	side school.Side, workers int, verbose bool) error {

	logger, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("init logger failed: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	data, err := school.Load(dataFile)
	if err != nil {
		return fmt.Errorf("load data file failed: %w", err)
	}

	matcher := &school.Matcher{
		Proposing: side,
		Workers:   workers,
		Logger:    logger,
	}

	alloc, err := matcher.Match(data)
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	var buf bytes.Buffer
	if format == "text" {
		buf.WriteString(renderReport(alloc))
	} else if err := school.Encode(&buf, alloc, school.Format(format)); err != nil {
		return fmt.Errorf("encode allocation failed: %w", err)
	}

	if outFile == "" {
		_, err = stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(outFile, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write output file failed: %w", err)
	}
	return nil
}
