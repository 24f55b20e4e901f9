package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteOutput writes contents next to the working directory (or into
// directory, if given), naming the file after input with its extension
// replaced by extension.
func WriteOutput(input, directory, extension string, contents []byte) error {
	_, name := filepath.Split(input)
	dir := directory
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("could not get working directory, specify the output directory explicitly: %w", err)
		}
	}
	name = strings.TrimSuffix(name, filepath.Ext(name)) + extension
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("could not create output directory %v: %w", dir, err)
	}
	f := filepath.Join(dir, name)
	if err := os.WriteFile(f, contents, 0644); err != nil {
		return fmt.Errorf("could not write file %v: %w", f, err)
	}
	return nil
}

// ScoreFiles returns the .yml, .yaml and .json files in directory.
func ScoreFiles(directory string) ([]string, error) {
	var ret []string
	for _, ext := range []string{"*.yml", "*.yaml", "*.json"} {
		files, err := filepath.Glob(filepath.Join(directory, ext))
		if err != nil {
			return nil, fmt.Errorf("could not glob the path %v for %v files: %w", directory, ext, err)
		}
		ret = append(ret, files...)
	}
	return ret, nil
}
