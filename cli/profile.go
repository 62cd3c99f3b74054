// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package cli

import (
	"context"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"
)

type (
	// Profiling can be embedded in any kong cli to enable profiling of a
	// command, e.g. formatting a large stream of sizes. The flags are hidden
	// from the help message.
	//
	// The supported modes are:
	//   - "cpu":    CPU profiling.
	//   - "memory": heap memory profiling.
	//   - "block":  block (contention) profiling.
	//   - "mutex":  mutex profiling.
	//   - "trace":  execution tracing.
	//
	// The profile is written in ProfilingPath, the file can be opened with
	// `go tool pprof $file` or `go tool pprof -http localhost:8080 $file`.
	//
	// Usage:
	// ```
	// stopProfiling := cli.Profiling.Start(ctx)
	// defer stopProfiling()
	// ```
	Profiling struct {
		Profiling     string `hidden:"" default:""`
		ProfilingPath string `hidden:"" type:"path" default:"."`
	}
)

var profileModes = map[string]func(*profile.Profile){
	"cpu":    profile.CPUProfile,
	"memory": profile.MemProfile,
	"block":  profile.BlockProfile,
	"mutex":  profile.MutexProfile,
	"trace":  profile.TraceProfile,
}

// Start starts profiling if a mode was selected. It returns a function that
// needs to be called when the profiling should stop.
func (p *Profiling) Start(ctx context.Context) func() {
	mode, ok := profileModes[p.Profiling]
	if !ok {
		return func() {}
	}

	path := p.ProfilingPath
	if path == "" {
		path = "."
	}

	logger := zerolog.Ctx(ctx)
	logger.Info().Str("mode", p.Profiling).Str("path", path).Msg("Profiling enabled")

	// Signals are handled by the command, pkg/profile must not exit on its own.
	stopper := profile.Start(mode, profile.ProfilePath(path), profile.Quiet, profile.NoShutdownHook)
	return func() {
		stopper.Stop()
		logger.Info().Str("mode", p.Profiling).Str("path", path).Msg("Profile written")
	}
}
