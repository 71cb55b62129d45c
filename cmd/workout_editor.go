package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/lowaak/smart-trainer/workout-editor/internal/config"
	"github.com/lowaak/smart-trainer/workout-editor/internal/editor"
	"github.com/lowaak/smart-trainer/workout-editor/internal/logging"
	"github.com/lowaak/smart-trainer/workout-editor/internal/mode"
	"github.com/lowaak/smart-trainer/workout-editor/internal/presets"
	"github.com/lowaak/smart-trainer/workout-editor/internal/server"
	"github.com/lowaak/smart-trainer/workout-editor/internal/textparser"
	"github.com/lowaak/smart-trainer/workout-editor/internal/workout"
	"github.com/lowaak/smart-trainer/workout-editor/internal/zwo"
)

const usage = `usage: workout_editor <command> [flags]

commands:
  convert   convert a text plan or .zwo file to .zwo
  inspect   print the parsed blocks or a summary of a workout
  presets   list built-in workouts or export one
  serve     run the HTTP editor API
`

type app struct {
	cfg    config.Config
	logger *log.Logger
	stdout io.Writer
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "workout_editor:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stdout, usage)
		return errors.New("missing command")
	}
	command, args := args[0], args[1:]

	flags := pflag.NewFlagSet(command, pflag.ContinueOnError)
	config.RegisterFlags(flags)
	in := flags.String("in", "", "input file (.zwo or text), - for stdin")
	out := flags.String("out", "-", "output file, - for stdout")
	name := flags.String("name", "", "workout or preset name")
	format := flags.String("format", "yaml", "inspect output format (yaml|json)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}
	logger, closer := logging.New(cfg.Log, os.Stderr)
	defer closer.Close()
	a := &app{cfg: cfg, logger: logger, stdout: stdout}

	switch command {
	case "convert":
		return a.convert(*in, *out, *name)
	case "inspect":
		return a.inspect(*in, *format)
	case "presets":
		return a.presets(*name, *out)
	case "serve":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return a.serve(ctx)
	}
	fmt.Fprint(stdout, usage)
	return fmt.Errorf("unknown command %q", command)
}

func readInput(path string) (string, error) {
	if path == "" {
		return "", errors.New("--in is required")
	}
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func (a *app) writeOutput(path, content string) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(a.stdout, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	a.logger.Printf("CLI: wrote %s", path)
	return nil
}

func isXML(path, content string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zwo") || strings.HasPrefix(strings.TrimSpace(content), "<")
}

func (a *app) modeFor(w workout.Workout) mode.Mode {
	return mode.ForWorkout(w, a.cfg.BikeMode(), a.cfg.RunMode())
}

// load reads a workout from a .zwo file or a text plan
func (a *app) load(path string) (workout.Workout, []textparser.Block, error) {
	content, err := readInput(path)
	if err != nil {
		return workout.Workout{}, nil, err
	}
	if isXML(path, content) {
		sport, lengthType, err := zwo.PeekTypes(content)
		if err != nil {
			return workout.Workout{}, nil, err
		}
		w, err := zwo.ParseWorkoutXML(content, a.modeFor(workout.CreateEmptyWorkout(sport, lengthType)))
		return w, nil, err
	}

	var blocks []textparser.Block
	if a.cfg.Workout.SportType == workout.SportTypeRun {
		blocks = textparser.ParseRunText(content, a.cfg.Workout.LengthType)
	} else {
		blocks = textparser.ParseBikeText(content, a.cfg.Athlete.FTP, a.cfg.Athlete.Weight)
	}
	w, err := textparser.BlocksToWorkout(blocks, a.cfg.Workout.SportType, a.cfg.Workout.LengthType)
	if err != nil {
		return workout.Workout{}, nil, err
	}
	if path != "-" {
		w.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return w, blocks, nil
}

func (a *app) convert(in, out, name string) error {
	w, _, err := a.load(in)
	if err != nil {
		return err
	}
	if name != "" {
		w.Name = name
	}
	xml, err := zwo.CreateWorkoutXML(w, a.modeFor(w))
	if err != nil {
		return err
	}
	a.logger.Printf("CLI: converted %s (%d intervals)", in, len(w.Intervals))
	return a.writeOutput(out, xml)
}

type summary struct {
	Name         string             `json:"name" yaml:"name"`
	SportType    workout.SportType  `json:"sportType" yaml:"sport_type"`
	LengthType   workout.LengthType `json:"lengthType" yaml:"length_type"`
	Tags         []string           `json:"tags,omitempty" yaml:"tags,omitempty"`
	Intervals    []string           `json:"intervals" yaml:"intervals"`
	Instructions []string           `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	Stats        mode.Stats         `json:"stats" yaml:"stats"`
	Blocks       []textparser.Block `json:"blocks,omitempty" yaml:"blocks,omitempty"`
}

func describe(iv workout.Interval) string {
	switch t := iv.(type) {
	case workout.Steady:
		return fmt.Sprintf("steady %s @ %.0f%%", t.Length, t.Intensity*100)
	case workout.Ramp:
		return fmt.Sprintf("ramp %s %.0f%% -> %.0f%%", t.Length, t.StartIntensity*100, t.EndIntensity*100)
	case workout.Free:
		return fmt.Sprintf("free %s", t.Length)
	case workout.Repetition:
		return fmt.Sprintf("%dx (%s @ %.0f%% / %s @ %.0f%%)", t.Repeat, t.OnLength, t.OnIntensity*100, t.OffLength, t.OffIntensity*100)
	}
	panic(fmt.Sprintf("unhandled interval type %T", iv))
}

func (a *app) inspect(in, format string) error {
	w, blocks, err := a.load(in)
	if err != nil {
		return err
	}
	st, err := mode.ComputeStats(w, a.modeFor(w))
	if err != nil {
		return err
	}
	s := summary{Name: w.Name, SportType: w.SportType, LengthType: w.LengthType, Tags: w.Tags, Stats: st, Blocks: blocks}
	for _, iv := range w.Intervals {
		s.Intervals = append(s.Intervals, describe(iv))
	}
	for _, instr := range w.Instructions {
		s.Instructions = append(s.Instructions, fmt.Sprintf("%s: %s", instr.Offset, instr.Text))
	}

	switch format {
	case "json":
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case "yaml":
		enc := yaml.NewEncoder(a.stdout)
		defer enc.Close()
		return enc.Encode(s)
	}
	return fmt.Errorf("unknown format %q", format)
}

func (a *app) presets(name, out string) error {
	if name == "" {
		for _, p := range presets.All {
			fmt.Fprintf(a.stdout, "%-35s %s\n", p.Name, p.SportType)
		}
		return nil
	}
	p, ok := presets.ByName(name)
	if !ok {
		return fmt.Errorf("unknown preset %q", name)
	}
	w, err := p.Build(a.cfg.BikeMode())
	if err != nil {
		return err
	}
	xml, err := zwo.CreateWorkoutXML(w, a.modeFor(w))
	if err != nil {
		return err
	}
	return a.writeOutput(out, xml)
}

func (a *app) serve(ctx context.Context) error {
	ed := editor.New(a.cfg.BikeMode(), a.cfg.RunMode(), a.cfg.Workout.SportType, a.cfg.Workout.LengthType, a.logger)
	srv := server.New(ed, a.cfg.BikeMode, a.logger)
	defer srv.Close()
	return srv.ListenAndServe(ctx, a.cfg.Server.Addr)
}
