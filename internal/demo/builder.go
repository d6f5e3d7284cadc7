// Package demo builds example projects with the external demo build tool
// and copies their output into the book's directory layout.
package demo

import (
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"git.home.luguber.info/inful/bookbinder/internal/errors"
)

// Builder invokes the external build tool for one example project.
type Builder struct {
	// Command is the build invocation, e.g. ["trunk", "build", "--release"].
	Command []string
	// DistDir is the build output directory inside the example project.
	DistDir string
}

// Build runs the build tool inside exampleDir and copies the output tree
// into targetDir, merging over any existing contents so partial prior
// state does not block re-runs.
//
// A non-zero exit from the build tool is fatal for the whole assembly run;
// the returned error carries the subprocess exit code.
func (b *Builder) Build(exampleDir, targetDir string) error {
	if len(b.Command) == 0 {
		return errors.New(errors.CategoryConfig, errors.SeverityError, "demo build command not configured")
	}

	slog.Info("Building demo", "dir", exampleDir, "command", b.Command)

	cmd := exec.Command(b.Command[0], b.Command[1:]...)
	cmd.Dir = exampleDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		code := 1
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		}
		return errors.Wrap(err, errors.CategoryBuild, errors.SeverityFatal, "demo build failed").
			WithExitCode(code).
			WithContext("dir", exampleDir)
	}

	distDir := filepath.Join(exampleDir, b.DistDir)
	slog.Info("Copying demo output", "from", distDir, "to", targetDir)

	if err := CopyDir(distDir, targetDir); err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "copy demo output").
			WithContext("from", distDir).
			WithContext("to", targetDir)
	}

	return nil
}

// CopyDir recursively copies a directory tree into dst, creating missing
// directories and overwriting files that already exist.
func CopyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, srcInfo.Mode()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := CopyDir(srcPath, dstPath); err != nil {
				return err
			}
		} else {
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}

	return nil
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = dstFile.Close()
	}()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	return os.Chmod(dst, srcInfo.Mode())
}
