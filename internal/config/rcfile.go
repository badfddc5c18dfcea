package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvRCPath names an rc file to use instead of looking one up.
const EnvRCPath = "NPMVERSION_RC"

// RCFileNames are looked up, in order, in the root package directory.
var RCFileNames = []string{
	".npmversionrc",
	".npmversionrc.json",
	".npmversionrc.yml",
	".npmversionrc.yaml",
}

// File is the content of an rc file. Unset keys leave options untouched.
type File struct {
	Increment        *string  `json:"increment" yaml:"increment"`
	Preid            *string  `json:"preid" yaml:"preid"`
	ForcePreid       *bool    `json:"force-preid" yaml:"force-preid"`
	NoGitCommit      *bool    `json:"nogit-commit" yaml:"nogit-commit"`
	NoGitTag         *bool    `json:"nogit-tag" yaml:"nogit-tag"`
	GitPush          *bool    `json:"git-push" yaml:"git-push"`
	GitCreateBranch  *bool    `json:"git-create-branch" yaml:"git-create-branch"`
	GitBranchPrefix  *string  `json:"git-branch-prefix" yaml:"git-branch-prefix"`
	GitRemoteName    *string  `json:"git-remote-name" yaml:"git-remote-name"`
	GitCommitMessage *string  `json:"git-commit-message" yaml:"git-commit-message"`
	GitTagMessage    *string  `json:"git-tag-message" yaml:"git-tag-message"`
	JSONFiles        []string `json:"json-files" yaml:"json-files"`

	// Path is where the file was read from.
	Path string `json:"-" yaml:"-"`
}

// FindRCFile returns the rc file for dir: $NPMVERSION_RC when set (relative
// paths resolved against dir), else the first of RCFileNames present in dir.
// An empty path means there is none.
func FindRCFile(dir string) (string, error) {
	if env := strings.TrimSpace(os.Getenv(EnvRCPath)); env != "" {
		path := env
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%s points to %s: %w", EnvRCPath, path, err)
		}
		return path, nil
	}

	for _, name := range RCFileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("checking %s: %w", path, err)
		}
	}
	return "", nil
}

// LoadRCFile finds and parses the rc file of dir. It returns nil when there
// is none.
func LoadRCFile(dir string) (*File, error) {
	path, err := FindRCFile(dir)
	if err != nil || path == "" {
		return nil, err
	}
	return ReadRCFile(path)
}

// ReadRCFile parses path as YAML when it has a .yml or .yaml extension and
// as JSON with comments otherwise. Unknown keys are rejected.
func ReadRCFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rc file %s: %w", path, err)
	}

	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing rc file %s: %w", path, err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("parsing rc file %s: %w", path, err)
		}
	}

	f.Path = path
	return &f, nil
}

// Apply copies every key set in the rc file onto o.
func (f *File) Apply(o *Options) {
	if f == nil {
		return
	}
	setString(&o.Increment, f.Increment)
	setString(&o.Preid, f.Preid)
	setBool(&o.ForcePreid, f.ForcePreid)
	setBool(&o.NoGitCommit, f.NoGitCommit)
	setBool(&o.NoGitTag, f.NoGitTag)
	setBool(&o.GitPush, f.GitPush)
	setBool(&o.GitCreateBranch, f.GitCreateBranch)
	setString(&o.GitBranchPrefix, f.GitBranchPrefix)
	setString(&o.GitRemoteName, f.GitRemoteName)
	setString(&o.GitCommitMessage, f.GitCommitMessage)
	setString(&o.GitTagMessage, f.GitTagMessage)
	if f.JSONFiles != nil {
		o.JSONFiles = append([]string{}, f.JSONFiles...)
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
