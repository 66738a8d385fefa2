package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"impacted/internal/core/errors"
	"impacted/internal/gitstate"
)

// Validate checks the effective configuration the way a test runner would
// reject bad command-line options: every failure is a usage error with
// enough context to fix the invocation.
func (c *Config) Validate() error {
	if c.Package == "" {
		return errors.New(errors.CodeUsageError, "no package specified, set package in impacted.toml or pass -package")
	}
	if err := c.validatePackage(); err != nil {
		return err
	}

	mode, err := gitstate.ParseMode(c.GitMode)
	if err != nil {
		return err
	}
	if mode == gitstate.ModeBranch {
		if c.BaseBranch == "" {
			return errors.New(errors.CodeUsageError, "no base branch specified, branch mode requires -base-branch")
		}
		if err := gitstate.VerifyRef(c.RootDir, c.BaseBranch); err != nil {
			return errors.AddContext(err, errors.CtxGitRef, c.BaseBranch)
		}
	}

	if c.TestsDir != "" {
		dir := c.TestsDir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(c.RootDir, dir)
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return errors.Newf(errors.CodeUsageError, "tests directory %q does not exist", c.TestsDir)
		}
	}

	return nil
}

func (c *Config) validatePackage() error {
	pkgDir := filepath.Join(c.RootDir, strings.ReplaceAll(c.Package, ".", string(os.PathSeparator)))
	if info, err := os.Stat(pkgDir); err == nil && info.IsDir() {
		return nil
	}

	// Hyphenated names are a recurring mistake: Python packages use
	// underscores. Suggest the fix when the underscored directory exists.
	if strings.Contains(c.Package, "-") {
		suggestion := strings.ReplaceAll(c.Package, "-", "_")
		suggestionDir := filepath.Join(c.RootDir, strings.ReplaceAll(suggestion, ".", string(os.PathSeparator)))
		if info, err := os.Stat(suggestionDir); err == nil && info.IsDir() {
			return errors.Newf(errors.CodeUsageError,
				"package %q not found, python module names use underscores, not hyphens, did you mean %q",
				c.Package, suggestion)
		}
	}

	return errors.Newf(errors.CodeUsageError,
		"package %q not found (no %q directory under the project root), make sure it is a valid python package name and the root directory is correct",
		c.Package, pkgDir)
}

// Summary is the one-line report of effective options logged at startup.
func (c *Config) Summary() string {
	return fmt.Sprintf("package=%s git_mode=%s base_branch=%s tests_package=%s tests_dir=%s",
		c.Package, c.GitMode, c.BaseBranch, c.TestsPackage, c.TestsDir)
}
