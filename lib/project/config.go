package project

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const FileName = "tliconf.yaml"

type Config struct {
	Name    string    `yaml:"name"`
	Version string    `yaml:"version"`
	Main    string    `yaml:"main"`
	Author  string    `yaml:"author"`
	Tli     string    `yaml:"tli,omitempty"`
	Run     RunConfig `yaml:"run"`
}

type RunConfig struct {
	Trace    bool   `yaml:"trace"`
	MaxSteps int    `yaml:"maxSteps"`
	Prompt   string `yaml:"prompt,omitempty"`
}

func (c *Config) CreateDefault(name string) {
	if name == "" || name == "." {
		name = "NewProject"
	}
	c.Name = name
	c.Version = "1.0.0"
	c.Main = "main.tl"
	c.Author = "Anonymous"
}

// Save writes the config to path. An existing file is only replaced when
// overwrite is set or confirm agrees; otherwise Save does nothing and
// reports false.
func (c *Config) Save(path string, overwrite bool, confirm func(string) bool) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		if !overwrite && (confirm == nil || !confirm(path+" already exists. Overwrite?")) {
			return false, nil
		}
	}

	yml, err := yaml.Marshal(c)
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, yml, 0644); err != nil {
		return false, err
	}
	return true, nil
}

// Load reads tliconf.yaml from dir.
func Load(dir string) (Config, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

func LoadFile(path string) (Config, error) {
	var conf Config

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&conf); err != nil {
		return Config{}, err
	}
	return conf, nil
}

// Find loads the config at path, or tliconf.yaml in dir when path is empty.
// A missing tliconf.yaml in dir is not an error; found reports whether a
// config was read.
func Find(dir, path string) (conf Config, found bool, err error) {
	if path != "" {
		conf, err = LoadFile(path)
		return conf, err == nil, err
	}
	conf, err = Load(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, false, nil
	}
	return conf, err == nil, err
}
