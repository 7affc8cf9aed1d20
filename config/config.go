// Package config reads the ls8 TOML configuration file.
//
//	verbose = false
//	trace = false
//	labelled = false
//	dump = ""
//	assembly = false
//
//	[equates]
//	COUNT = "3"
package config

import (
	"errors"
	"io/fs"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	ErrConfigNotFound = errors.New(f("config not found"))
	ErrConfigSyntax   = errors.New(f("config syntax"))
)

// ErrConfigKey names a key of the file that is not a setting.
type ErrConfigKey string

func (err ErrConfigKey) Error() string {
	return f("config key '%v' unknown", string(err))
}

// Config holds the machine settings.
type Config struct {
	Verbose  bool   `toml:"verbose"`  // Verbose logging.
	Trace    bool   `toml:"trace"`    // Trace every instruction.
	Labelled bool   `toml:"labelled"` // Name the register on printed lines.
	Dump     string `toml:"dump"`     // Path to write a machine dump to when stopped.
	Assembly bool   `toml:"assembly"` // The program is assembler source.

	Equates map[string]string `toml:"equates"` // Assembler predefines.
}

// Load reads the configuration file at path.
func Load(path string) (conf *Config, err error) {
	conf = &Config{}

	md, err := toml.DecodeFile(path, conf)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = errors.Join(ErrConfigNotFound, err)
		} else {
			err = errors.Join(ErrConfigSyntax, err)
		}
		conf = nil
		return
	}

	undecoded := md.Undecoded()
	if len(undecoded) != 0 {
		err = errors.Join(ErrConfigSyntax, ErrConfigKey(undecoded[0].String()))
		conf = nil
		return
	}

	return
}
