package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sompyler/sompyler"
	"github.com/sompyler/sompyler/cmd"
	"github.com/sompyler/sompyler/listing"
	"github.com/sompyler/sompyler/oto"
	"github.com/sompyler/sompyler/render"
	"github.com/sompyler/sompyler/smf"
	"github.com/sompyler/sompyler/version"
)

func main() {
	stdout := flag.Bool("s", false, "Do not write files; write to standard output instead.")
	help := flag.Bool("h", false, "Show help.")
	directory := flag.String("o", "", "Directory where to output all files. The directory and its parents are created if needed. By default, everything is placed in the working directory.")
	play := flag.Bool("p", false, "Play the input scores (default behaviour when no other output is defined).")
	list := flag.String("l", "", "Print the notes of the score using the named template, e.g. notes.txt or notes.csv.")
	templateDir := flag.String("t", "", "Directory of templates used by -l instead of the built-in ones.")
	rawOut := flag.Bool("r", false, "Output the rendered score as .raw file. By default, saves mono float32 buffer to disk.")
	wavOut := flag.Bool("w", false, "Output the rendered score as .wav file. By default, saves mono float32 buffer to disk.")
	midOut := flag.Bool("m", false, "Output the notes of the score as a .mid file.")
	pcm := flag.Bool("c", false, "Convert audio to 16-bit signed PCM when outputting.")
	versionFlag := flag.Bool("v", false, "Print version.")
	instrFlags := cmd.InstrumentFlags(flag.CommandLine)
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.String())
		os.Exit(0)
	}
	if flag.NArg() == 0 || *help {
		flag.Usage()
		os.Exit(0)
	}
	if !*rawOut && !*wavOut && !*midOut && *list == "" {
		*play = true // if the user gives nothing to output, then the default behaviour is just to play the file
	}
	instrument, err := instrFlags.Instrument()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid instrument: %v\n", err)
		os.Exit(1)
	}
	var lister *listing.Lister
	if *list != "" {
		if *templateDir != "" {
			lister, err = listing.NewFromTemplates(*templateDir)
		} else {
			lister, err = listing.New()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not load listing templates: %v\n", err)
			os.Exit(1)
		}
	}
	var audioContext sompyler.AudioContext
	if *play {
		audioContext, err = oto.NewContext()
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not acquire oto AudioContext: %v\n", err)
			os.Exit(1)
		}
	}
	process := func(filename string) error {
		output := func(extension string, contents []byte) error {
			if *stdout {
				os.Stdout.Write(contents)
				return nil
			}
			return cmd.WriteOutput(filename, *directory, extension, contents)
		}
		inputBytes, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("could not read file %v: %w", filename, err)
		}
		score, err := sompyler.LoadScore(inputBytes)
		if err != nil {
			return err
		}
		arrangement, err := score.Arrange()
		if err != nil {
			return fmt.Errorf("could not arrange the score: %w", err)
		}
		if lister != nil {
			var b bytes.Buffer
			if err := lister.Write(&b, *list, arrangement); err != nil {
				return err
			}
			if *directory == "" {
				os.Stdout.Write(b.Bytes())
			} else if err := output(filepath.Ext(*list), b.Bytes()); err != nil {
				return fmt.Errorf("error outputting listing: %w", err)
			}
		}
		if *midOut {
			notes, err := arrangement.Notes()
			if err != nil {
				return err
			}
			var b bytes.Buffer
			if err := smf.Write(&b, arrangement.Title, arrangement.Voices(), notes); err != nil {
				return err
			}
			if err := output(".mid", b.Bytes()); err != nil {
				return fmt.Errorf("error outputting .mid file: %w", err)
			}
		}
		if !*play && !*rawOut && !*wavOut {
			return nil
		}
		buffer, err := render.Render(arrangement, render.Orchestra{Default: instrument})
		if err != nil {
			return fmt.Errorf("render.Render failed: %w", err)
		}
		if *rawOut {
			raw, err := buffer.Raw(*pcm)
			if err != nil {
				return fmt.Errorf("could not generate .raw file: %w", err)
			}
			if err := output(".raw", raw); err != nil {
				return fmt.Errorf("error outputting .raw file: %w", err)
			}
		}
		if *wavOut {
			wav, err := buffer.Wav(*pcm)
			if err != nil {
				return fmt.Errorf("could not generate .wav file: %w", err)
			}
			if err := output(".wav", wav); err != nil {
				return fmt.Errorf("error outputting .wav file: %w", err)
			}
		}
		if *play {
			player, err := audioContext.Play(buffer)
			if err != nil {
				return fmt.Errorf("could not play: %w", err)
			}
			player.Wait()
		}
		return nil
	}
	retval := 0
	for _, param := range flag.Args() {
		files := []string{param}
		if info, err := os.Stat(param); err == nil && info.IsDir() {
			files, err = cmd.ScoreFiles(param)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				retval = 1
				continue
			}
		}
		for _, file := range files {
			if err := process(file); err != nil {
				fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", file, err)
				retval = 1
			}
		}
	}
	os.Exit(retval)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Sompyler command line utility for listing, rendering and playing .yml/.json score files.\nUsage: %s [flags] [path ...]\n", os.Args[0])
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nTemplates for -l: %s\n", strings.Join([]string{"notes.txt", "notes.csv"}, ", "))
}
