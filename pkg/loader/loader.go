// Package loader decodes TIM programs from disk into a machine.CodeStore.
//
// A program is an object mapping each label to its instruction list. JSON and
// CUE sources are checked against an instruction schema before decoding; YAML
// sources are decoded with unknown keys rejected.
package loader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"tim/pkg/machine"
)

type Format int

const (
	FormatJSON Format = iota
	FormatCUE
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatCUE:
		return "cue"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatOf picks the decoder from a file extension
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".cue":
		return FormatCUE, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("loader: unsupported program file %q (want .json, .cue, .yaml)", path)
	}
}

// Load reads and decodes the program at path
func Load(path string) (machine.CodeStore, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}

	return Decode(format, data, path)
}

// Decode decodes program source in the given format. filename is only used in diagnostics.
func Decode(format Format, data []byte, filename string) (machine.CodeStore, error) {
	var (
		raw map[string][]wireInstruction
		err error
	)

	switch format {
	case FormatJSON, FormatCUE:
		raw, err = decodeCUE(data, filename)
	case FormatYAML:
		raw, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("loader: unknown format %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("loader: parse %s: %w", filename, err)
	}

	code, err := build(raw)
	if err != nil {
		return nil, fmt.Errorf("loader: %s: %w", filename, err)
	}
	return code, nil
}

func decodeCUE(data []byte, filename string) (map[string][]wireInstruction, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(programSchema, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, err
	}

	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, err
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, err
	}

	var raw map[string][]wireInstruction
	if err := unified.Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func decodeYAML(data []byte) (map[string][]wireInstruction, error) {
	var raw map[string][]wireInstruction

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}
